package api

import (
	"net/http"

	"github.com/yingmanwumen/no-internal-kbd/internal/controller"
)

// ルートの設定
func (s *Server) setupRoutes(router *http.ServeMux) {
	router.HandleFunc("GET /api/keyboards", s.handleGetKeyboards)
	router.HandleFunc("GET /api/health", s.handleHealthCheck)
}

// キーボード状態取得ハンドラ
func (s *Server) handleGetKeyboards(w http.ResponseWriter, r *http.Request) {
	snapshot := s.status.Snapshot()
	writeJSON(w, http.StatusOK, struct {
		InternalDisabled bool `json:"internal_disabled"`
		controller.Snapshot
	}{
		InternalDisabled: snapshot.InternalDisabled(),
		Snapshot:         snapshot,
	})
}

// ヘルスチェックハンドラ
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
