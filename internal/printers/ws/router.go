package ws

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/hilog/internal/printers/view"
)

// Overlay is the view state served on /logs.
type Overlay interface {
	Items() []view.Item
	IsOpen() bool
}

type overlaySnapshot struct {
	Open  bool        `json:"open"`
	Items []view.Item `json:"items"`
}

func NewRouter(wsServer *Server, overlay Overlay) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)

	r.Get("/ws", wsServer.HandleWS)

	if overlay != nil {
		r.Get("/logs", func(w http.ResponseWriter, r *http.Request) {
			snap := overlaySnapshot{Open: overlay.IsOpen(), Items: overlay.Items()}
			w.Header().Set("Content-Type", "application/json")
			if err := jsoniter.NewEncoder(w).Encode(snap); err != nil {
				wsServer.logger.Warnf(r.Context(), "failed to encode overlay snapshot: %v", err)
			}
		})
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
