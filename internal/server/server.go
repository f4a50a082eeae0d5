// Package server поднимает служебный HTTP: /healthz и /metrics.
// Сам бот работает через long polling, наружу торчит только это.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Pinger — всё, что умеет проверить свою доступность (pgxpool.Pool, RedisSet).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server — служебный HTTP-сервер.
type Server struct {
	http   *http.Server
	checks map[string]Pinger
}

// New создаёт сервер на addr. checks — зависимости для /healthz.
func New(addr string, checks map[string]Pinger) *Server {
	s := &Server{checks: checks}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Router собирает маршруты. Отдельно, чтобы тестировать без сокета.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(
		handlers.LoggingHandler(log.StandardLogger().WriterLevel(log.DebugLevel), r),
	)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	result := make(map[string]string, len(s.checks))
	for name, p := range s.checks {
		if err := p.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			result[name] = err.Error()
			continue
		}
		result[name] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.WithError(err).Warn("Не удалось отдать ответ /healthz")
	}
}

// Start слушает порт до отмены ctx, затем плавно останавливается.
func (s *Server) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("HTTP shutdown")
		}
	}()

	log.WithField("addr", s.http.Addr).Info("HTTP сервер запущен (/healthz, /metrics)")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("HTTP сервер упал")
	}
}
