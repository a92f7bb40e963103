package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/account/entity"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/session"
)

const maxBodyBytes = 1 << 16

// Handler exposes HTTP endpoints for registration, login and the current account.
type Handler struct {
	provisioner *Provisioner
	svc         *Service
	sessions    *session.Manager
	logger      *zap.SugaredLogger
	outcomes    *prometheus.CounterVec
}

// NewHandler builds a handler and registers its provisioning counter on reg.
func NewHandler(provisioner *Provisioner, svc *Service, sessions *session.Manager, logger *zap.SugaredLogger, reg prometheus.Registerer) *Handler {
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "account_provisioning_total",
		Help: "Registration attempts by outcome.",
	}, []string{"outcome"})
	if reg != nil {
		reg.MustRegister(outcomes)
	}
	return &Handler{provisioner: provisioner, svc: svc, sessions: sessions, logger: logger, outcomes: outcomes}
}

// RegisterResponse is the success body of the register endpoint.
type RegisterResponse struct {
	Success bool               `json:"success"`
	User    *ProvisionedAccount `json:"user"`
}

// ErrorResponse is the single error body every endpoint returns on failure.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegistrationRequest
	if err := decode(w, r, &req); err != nil {
		h.logger.Debugw("invalid register payload", "err", err)
		h.outcomes.WithLabelValues("invalid_payload").Inc()
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
		return
	}

	user, err := h.provisioner.Provision(r.Context(), req)
	var verr *ValidationError
	switch {
	case err == nil:
		h.outcomes.WithLabelValues("success").Inc()
		writeJSON(w, http.StatusCreated, RegisterResponse{Success: true, User: user})
	case errors.As(err, &verr):
		h.outcomes.WithLabelValues("validation_failed").Inc()
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: verr.Fields})
	case errors.Is(err, ErrDuplicateAccount):
		h.outcomes.WithLabelValues("duplicate").Inc()
		h.logger.Infow("registration rejected: duplicate email", "email", NormalizeEmail(req.Email))
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "an account with this email already exists"})
	default:
		h.outcomes.WithLabelValues("failed").Inc()
		h.logger.Errorw("provisioning failed", "email", NormalizeEmail(req.Email), "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "registration failed"})
	}
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      entity.PublicView `json:"user"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(w, r, &req); err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
		return
	}
	acc, err := h.svc.Authenticate(r.Context(), req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: verr.Fields})
		case errors.Is(err, ErrBadCredentials):
			h.logger.Debugw("login failed", "email", NormalizeEmail(req.Email))
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		default:
			h.logger.Errorw("login failed", "err", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "login failed"})
		}
		return
	}
	token, exp, err := h.sessions.Issue(acc.ID, acc.Email)
	if err != nil {
		h.logger.Errorw("issue session token failed", "account_id", acc.ID, "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "login failed"})
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresAt: exp, User: acc.Public()})
}

// MeResponse is the authenticated account as seen by itself.
type MeResponse struct {
	entity.PublicView
	Verified        bool    `json:"verified"`
	SharedProfileID *string `json:"sharedProfileId,omitempty"`
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	accountID := session.AccountID(r.Context())
	acc, err := h.svc.Get(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "account not found"})
			return
		}
		h.logger.Errorw("load account failed", "account_id", accountID, "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "load account failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": MeResponse{
		PublicView:      acc.Public(),
		Verified:        acc.Verified(),
		SharedProfileID: acc.SharedProfileID,
	}})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
