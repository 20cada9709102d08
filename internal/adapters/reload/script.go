package reload

import "net/http"

// script reconnects on close, swaps stylesheets in place for CSS rebuilds and
// reloads the page for everything else.
const script = `(function () {
  var url = (location.protocol === "https:" ? "wss://" : "ws://") +
    (document.currentScript ? new URL(document.currentScript.src).host : location.host) +
    "/livereload";
  function swap(file) {
    var links = document.querySelectorAll('link[rel="stylesheet"]');
    var found = false;
    links.forEach(function (link) {
      var href = link.getAttribute("href") || "";
      if (href.split("?")[0].endsWith(file)) {
        link.href = href.split("?")[0] + "?" + Date.now();
        found = true;
      }
    });
    return found;
  }
  function connect() {
    var ws = new WebSocket(url);
    ws.onmessage = function (e) {
      var msg = JSON.parse(e.data);
      if (msg.type === "error") {
        console.error("[squeeze] " + msg.bundle + ": " + msg.error);
      } else if (msg.type !== "css" || !swap(msg.file)) {
        location.reload();
      }
    };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  connect();
})();
`

func handleScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(script))
}
