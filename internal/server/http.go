package server

import (
	"encoding/json"
	"net/http"
	_ "net/http/pprof" // Profiling

	"babayaga/internal/engine"
	"babayaga/internal/infrastructure/storage"
	"babayaga/internal/version"
	"babayaga/pkg/logger"
)

type Server struct {
	Host *engine.Host
	Port string
}

func New(host *engine.Host, port string) *Server {
	return &Server{
		Host: host,
		Port: port,
	}
}

// Handler builds the route table: /ws, /health, /version and /debug/*.
func (s *Server) Handler() http.Handler {
	mux := http.DefaultServeMux

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	NewDebugHandler(s.Host).RegisterRoutes(mux)
	return mux
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	logger.For("http").WithField("port", s.Port).Info("observer server listening")
	return http.ListenAndServe(":"+s.Port, s.Handler())
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.Host.Hub == nil {
		http.Error(w, "observers disabled", http.StatusServiceUnavailable)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.For("http").WithError(err).Error("upgrade failed")
		return
	}

	client := NewClient(s.Host, conn)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	info := version.Info()
	info.TickRate = s.Host.Service.Config().TickRate
	info.ReplayFormat = storage.Version1
	_ = json.NewEncoder(w).Encode(info)
}
