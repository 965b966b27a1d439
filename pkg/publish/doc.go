// Package publish renders the page for static hosting and uploads it.
//
// A static build has no live session, so it ships without the live endpoint
// meta tag. The browser client then reveals every region on load, and the
// noscript stylesheet covers browsers without JavaScript.
//
// Objects go through an ObjectPutter: an *s3.Client for buckets, or a
// DirPutter to write the same tree to disk.
//
//	client := publish.NewS3Client(publish.S3Config{Region: "eu-west-1"})
//	p := publish.New(client, publish.Options{Bucket: "kbc-site", PublicDir: "public"})
//	report, err := p.Publish(ctx, content)
package publish
