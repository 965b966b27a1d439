// Package live connects a rendered page to the server over a WebSocket.
//
// The browser client (ClientScript) says hello, reporting whether it has
// IntersectionObserver. The session then mounts one reveal.Trigger per page
// region, asks the client to observe the regions, and turns trigger
// transitions into style patches. Counters run on their own frame sources
// and stream text patches until they settle. The hero carousel advances on a
// ticker.
//
// Protocol, one JSON object per frame:
//
//	client -> server  {"type":"hello","observer":true}
//	                  {"type":"intersect","region":"r4","ratio":0.35}
//	server -> client  {"type":"observe","regions":[{"id":"r4","threshold":0.1}]}
//	                  {"type":"unobserve","region":"r4"}
//	                  {"type":"patch","patches":[{"op":"style","target":"r4","value":"..."}]}
//	                  {"type":"slide","index":1}
//
// Closing the socket unmounts the page: triggers stop observing, counters
// stop, and nothing further is written.
package live
