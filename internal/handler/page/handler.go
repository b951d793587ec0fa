package page

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const testPage = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>AI Test</title>
  </head>
  <body style="font-family: sans-serif;">
    <h2>AI Test</h2>
    <input id="prompt" style="width:300px" placeholder="Enter prompt..." />
    <button onclick="send()">Ask</button>
    <pre id="output"></pre>
    <script>
      async function send() {
        const res = await fetch('/api/ai', {
          method: 'POST',
          headers: {'Content-Type': 'application/json'},
          body: JSON.stringify({ prompt: document.getElementById('prompt').value })
        });
        const data = await res.json();
        document.getElementById('output').innerText = data.text || data.error;
      }
    </script>
  </body>
</html>
`

// Handler 测试页面的HTTP处理器
type Handler struct{}

// New 创建测试页面处理器
func New() *Handler {
	return &Handler{}
}

// RegisterRoutes 注册测试页面路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleIndex)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(testPage))
}
