package handler

import "net/http"

// HealthHandler はヘルスチェックのHTTPハンドラー。
type HealthHandler struct{}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health は稼働状態を返す。
// GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "UP"})
}
