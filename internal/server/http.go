// internal/server/http.go
package server

import (
	"encoding/json"
	"net/http"
	_ "net/http/pprof" // профилирование на /debug/pprof

	"glyph-defense/pkg/logger"
)

// Server — HTTP-обвязка раннера: websocket-трансляция, здоровье,
// последний снимок и боевая статистика.
type Server struct {
	Runner *Runner
	Port   string
}

func New(runner *Runner, port string) *Server {
	return &Server{Runner: runner, Port: port}
}

// Run запускает HTTP-сервер. Блокируется до ошибки листенера.
func (s *Server) Run() error {
	mux := http.DefaultServeMux

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/state", enableCORS(s.handleState))
	mux.HandleFunc("/stats", enableCORS(s.handleStats))

	logger.Log.Infof("glyph defense stream on :%s", s.Port)
	return http.ListenAndServe(":"+s.Port, mux)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next(w, r)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("websocket upgrade failed")
		return
	}

	client := NewClient(s.Runner, conn)
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Log.WithError(err).Debug("health write failed")
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snap := s.Runner.LastSnapshot()
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		logger.Log.WithError(err).Debug("state encode failed")
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Runner.statsSnapshot()); err != nil {
		logger.Log.WithError(err).Debug("stats encode failed")
	}
}
