package live

// ClientPath is where the server publishes ClientScript.
const ClientPath = "/_kbc/live.js"

// EndpointMeta is the meta tag name carrying the socket path. A page without
// it (a static export) reveals everything immediately.
const EndpointMeta = "kbc-live"

// parallaxFactor is how far the hero slides move per pixel scrolled.
const parallaxFactor = "0.2"

// ClientScript is the browser side of a live session. It reports
// intersection ratios for the regions the server asks about and applies the
// patches it receives. Whenever no session can be held (no WebSocket, no
// endpoint, or a dropped connection) it reveals every region at once. It also
// drifts the hero slides with the scroll position, with or without a session.
const ClientScript = `(function () {
  "use strict";
  var meta = document.querySelector('meta[name="` + EndpointMeta + `"]');
  var endpoint = meta && meta.getAttribute("content");
  var observers = {};
  var watched = {};

  function byId(id) { return document.getElementById(id); }

  function send(ws, msg) {
    if (ws.readyState === 1) ws.send(JSON.stringify(msg));
  }

  function revealAll() {
    var els = document.querySelectorAll('[data-reveal="fade"], [data-reveal="stagger"] > *');
    for (var i = 0; i < els.length; i++) {
      els[i].style.opacity = "1";
      els[i].style.transform = "none";
    }
    var counters = document.querySelectorAll('[data-reveal="counter"]');
    for (var j = 0; j < counters.length; j++) {
      var value = counters[j].querySelector("[data-counter-value]");
      var fallback = counters[j].querySelector("noscript");
      if (value && fallback) value.textContent = fallback.textContent;
    }
  }

  function apply(p) {
    var el = byId(p.target);
    if (!el) return;
    if (p.op === "style") el.setAttribute("style", p.value);
    else if (p.op === "text") el.textContent = p.value;
  }

  function setSlide(index) {
    var nodes = document.querySelectorAll("[data-slide], [data-slide-dot]");
    for (var i = 0; i < nodes.length; i++) {
      var n = nodes[i].getAttribute("data-slide");
      if (n === null) n = nodes[i].getAttribute("data-slide-dot");
      nodes[i].setAttribute("data-active", String(Number(n) === index));
    }
  }

  function observe(ws, regions) {
    regions.forEach(function (r) {
      var el = byId(r.id);
      if (!el) {
        send(ws, { type: "intersect", region: r.id, ratio: 1 });
        return;
      }
      var key = String(r.threshold);
      if (!observers[key]) {
        observers[key] = new IntersectionObserver(function (entries) {
          entries.forEach(function (e) {
            send(ws, { type: "intersect", region: e.target.id, ratio: e.intersectionRatio });
          });
        }, { threshold: [0, r.threshold] });
      }
      observers[key].observe(el);
      watched[r.id] = observers[key];
    });
  }

  function unobserve(id) {
    var o = watched[id];
    var el = byId(id);
    if (o && el) o.unobserve(el);
    delete watched[id];
  }

  function parallax() {
    var slides = document.querySelector(".hero-slides");
    if (!slides) return;
    var pending = false;
    window.addEventListener("scroll", function () {
      if (pending) return;
      pending = true;
      window.requestAnimationFrame(function () {
        pending = false;
        slides.style.transform = "translateY(" + window.scrollY * ` + parallaxFactor + ` + "px)";
      });
    }, { passive: true });
  }

  function start() {
    parallax();
    connect();
  }

  function connect() {
    if (!endpoint || !("WebSocket" in window)) {
      revealAll();
      return;
    }
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + endpoint);
    ws.onopen = function () {
      send(ws, { type: "hello", observer: "IntersectionObserver" in window });
    };
    ws.onmessage = function (ev) {
      var msg;
      try { msg = JSON.parse(ev.data); } catch (e) { return; }
      switch (msg.type) {
        case "observe": observe(ws, msg.regions || []); break;
        case "unobserve": unobserve(msg.region); break;
        case "patch": (msg.patches || []).forEach(apply); break;
        case "slide": setSlide(msg.index); break;
      }
    };
    ws.onclose = function () {
      Object.keys(observers).forEach(function (k) { observers[k].disconnect(); });
      observers = {};
      watched = {};
      revealAll();
    };
  }

  if (document.readyState === "loading") {
    document.addEventListener("DOMContentLoaded", start);
  } else {
    start();
  }
})();
`
