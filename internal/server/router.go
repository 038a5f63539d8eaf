package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hance08/dealflow/internal/remote"
	"github.com/pterm/pterm"
)

// HealthService reports whether the backing store is usable.
type HealthService interface {
	Ping() error
}

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Health HealthService
	API    *APIHandlers
	Token  string
}

// NewRouter wires the HTTP routes of the transaction store API.
func NewRouter(logger *pterm.Logger, deps RouterDependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		payload := map[string]any{"status": "ok"}

		if deps.Health != nil {
			errCh := make(chan error, 1)
			go func() { errCh <- deps.Health.Ping() }()

			var err error
			select {
			case err = <-errCh:
			case <-ctx.Done():
				err = ctx.Err()
			}
			if err != nil {
				logger.Error("health probe failed", logger.Args("error", err.Error()))
				status = http.StatusServiceUnavailable
				payload["status"] = "degraded"
				payload["detail"] = err.Error()
			}
		}

		respondJSON(w, status, payload)
	})

	if deps.API != nil {
		api := http.Handler(deps.API.routes())
		if deps.Token != "" {
			api = bearerAuth(deps.Token, api)
		}
		mux.Handle("/transactions", api)
		mux.Handle("/transactions/", api)
	}

	return requestIDMiddleware(loggingMiddleware(logger, mux))
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(remote.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(remote.RequestIDHeader, id)
		}
		w.Header().Set(remote.RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(logger *pterm.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request completed",
			logger.Args(
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", r.Header.Get(remote.RequestIDHeader),
			))
	})
}

func bearerAuth(token string, next http.Handler) http.Handler {
	want := "Bearer " + token
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != want {
			respondError(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
