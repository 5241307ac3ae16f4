package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/yingmanwumen/no-internal-kbd/internal/controller"
)

// StatusProvider はキーボードの状態を提供する
type StatusProvider interface {
	Snapshot() controller.Snapshot
}

// Server は状態取得APIサーバーを表す構造体
type Server struct {
	server *http.Server
	status StatusProvider
	addr   string
}

// NewServer は新しいAPIサーバーを作成する
// ローカルホストからの接続のみ受け付ける
func NewServer(status StatusProvider, port int) *Server {
	s := &Server{
		status: status,
		addr:   net.JoinHostPort("127.0.0.1", fmt.Sprint(port)),
	}
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler はAPIのルーティングを設定したハンドラを返す
func (s *Server) Handler() http.Handler {
	router := http.NewServeMux()
	s.setupRoutes(router)
	return router
}

// Start はAPIサーバーを開始する
// Stop が呼ばれるまで戻らない
func (s *Server) Start() error {
	log.Infof("APIサーバーを開始します: http://%s", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("APIサーバーの起動に失敗しました: %w", err)
	}
	return nil
}

// Stop はAPIサーバーを停止する
func (s *Server) Stop(ctx context.Context) error {
	log.Info("APIサーバーを停止します...")
	return s.server.Shutdown(ctx)
}

// writeJSON はJSONレスポンスを書き込む
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Warnf("JSONエンコードエラー: %v", err)
		}
	}
}
