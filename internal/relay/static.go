package relay

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// indexPage is the built-in client, served when no static dir is
// configured. It is the same poll-and-replace loop the Go clients run:
// fetch peers and messages every tick, swap the whole view, send on Enter.
const indexPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>DisasterNet</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2em auto; }
#messages div { padding: 4px 8px; margin: 2px 0; background: #eef; border-radius: 6px; }
#peers { color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h1>DisasterNet</h1>
<p id="peers">no peers</p>
<div id="messages"></div>
<input id="text" placeholder="Type a message and press Enter" style="width:100%">
<script>
let timer = null;

async function poll() {
  try {
    const res = await fetch('/api/messages');
    const msgs = await res.json();
    const box = document.getElementById('messages');
    box.innerHTML = '';
    if (!Array.isArray(msgs)) {
      box.textContent = 'no messages available';
    } else {
      for (const m of msgs) {
        const d = document.createElement('div');
        d.textContent = m;
        box.appendChild(d);
      }
    }
  } catch (err) {
    console.log('messages poll failed', err);
  }
  try {
    const res = await fetch('/api/peers');
    const peers = await res.json();
    const n = (peers && typeof peers === 'object') ? Object.keys(peers).length : 0;
    document.getElementById('peers').textContent = n + ' peer(s) online';
  } catch (err) {
    console.log('peers poll failed', err);
  }
}

function startPolling(intervalMs) {
  if (timer !== null) return;
  poll();
  timer = setInterval(poll, intervalMs);
}

function stopPolling() {
  if (timer !== null) { clearInterval(timer); timer = null; }
}

document.getElementById('text').addEventListener('keydown', async (e) => {
  if (e.key !== 'Enter' || e.shiftKey) return;
  const input = e.target;
  const text = input.value.trim();
  if (!text) return;
  try {
    await fetch('/api/send', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({type: 'CHAT', text: text})
    });
    input.value = '';
  } catch (err) {
    console.log('send failed', err);
  }
});

window.addEventListener('unload', stopPolling);
startPolling(2500);
</script>
</body>
</html>
`

// staticHandler serves client assets from dir, or the built-in index page
// when no dir is configured. Mounted as the NoRoute handler so the /api
// routes keep priority.
func staticHandler(dir string) gin.HandlerFunc {
	if dir != "" {
		fs := http.FileServer(http.Dir(dir))
		return func(c *gin.Context) {
			fs.ServeHTTP(c.Writer, c.Request)
		}
	}

	return func(c *gin.Context) {
		if c.Request.URL.Path != "/" && c.Request.URL.Path != "/index.html" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
	}
}
