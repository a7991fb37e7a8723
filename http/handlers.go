package http

import (
	"encoding/json"
	"net/http"

	"trendboard/board"
	"trendboard/view"
)

// Handlers 页面与API处理器。依赖显式注入，便于用假数据源做测试。
type Handlers struct {
	board    *board.Board
	renderer *view.Renderer
	hub      *Hub
}

// NewHandlers 创建处理器集合，hub 可为 nil（不提供推送）
func NewHandlers(b *board.Board, r *view.Renderer, hub *Hub) *Handlers {
	return &Handlers{board: b, renderer: r, hub: hub}
}

// Register 注册全部路由
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleBoard)
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/snapshot", h.handleSnapshot)
	mux.HandleFunc("POST /api/refresh", h.handleRefresh)
	if h.hub != nil {
		mux.HandleFunc("GET /ws/updates", h.hub.HandleWebSocket)
	}
}

// handleBoard 渲染排行页面。到达即做保鲜检查（对应页面重新可见的场景）；
// 切换周期Tab只改 period 参数，从内存快照重新渲染，不触发上游拉取。
func (h *Handlers) handleBoard(w http.ResponseWriter, r *http.Request) {
	h.board.EnsureFresh(r.Context())

	period := board.SanitizePeriod(r.URL.Query().Get("period"))
	snap, loadErr := h.board.Current()

	page, err := h.renderer.RenderPage(snap, loadErr, period)
	if err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleSnapshot 返回当前持有的快照原始JSON
func (h *Handlers) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, _ := h.board.Current()
	if snap == nil {
		http.Error(w, `{"error":"no snapshot"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// handleRefresh 手动触发一次重载
func (h *Handlers) handleRefresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.board.Load(r.Context()); err != nil {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"status": "failed"})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
