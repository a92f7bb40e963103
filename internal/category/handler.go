package category

import (
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/category/entity"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/category/repo"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/session"
)

// Handler serves the category listing of the authenticated account.
type Handler struct {
	repo   *repo.CategoryRepo
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{repo: repo.NewCategoryRepo(db), logger: logger}
}

// List returns the account's categories, optionally filtered by ?kind=expense|income.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	kind := entity.Kind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "validation failed",
			"details": map[string]string{"kind": "must be expense or income"},
		})
		return
	}
	accountID := session.AccountID(r.Context())
	cats, err := h.repo.ListByAccount(r.Context(), accountID, kind)
	if err != nil {
		h.logger.Errorw("list categories failed", "account_id", accountID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list categories failed"})
		return
	}
	if cats == nil {
		cats = []*entity.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
