package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ariefcatur/go-stock-reserve.git/internal/settings"
	"github.com/go-chi/chi/v5"
)

// SettingsHandler is the admin surface for the cart-expiration settings.
// Core packages only read settings; this is the one write path.
type SettingsHandler struct {
	Store *settings.RedisStore
}

func (h *SettingsHandler) Register(r *chi.Mux) {
	r.Get("/admin/stock-reserve/settings", h.getSettings)
	r.Put("/admin/stock-reserve/settings", h.putSettings)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *SettingsHandler) getSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	cfg, err := h.Store.Load(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *SettingsHandler) putSettings(w http.ResponseWriter, r *http.Request) {
	var cfg settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if cfg.Interval.Number < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "interval number must be >= 1"})
		return
	}
	if !settings.ValidUnit(cfg.Interval.Unit) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid interval unit"})
		return
	}
	if cfg.MessageText == "" {
		cfg.MessageText = settings.DefaultMessageText
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Store.Save(ctx, cfg); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}
