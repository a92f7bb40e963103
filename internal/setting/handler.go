package setting

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/session"
)

// Handler contains dependencies for handling setting endpoints.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

// NewHandler constructs a new Handler.
func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Get returns the settings of the authenticated account.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	accountID := session.AccountID(r.Context())
	view, err := h.svc.Get(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "settings not found"})
			return
		}
		h.logger.Errorw("load settings failed", "account_id", accountID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "load settings failed"})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
