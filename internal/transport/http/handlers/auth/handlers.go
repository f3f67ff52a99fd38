package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DrOksusu/email-automation/internal/domain/audit"
	"github.com/DrOksusu/email-automation/internal/domain/auth"
	"github.com/DrOksusu/email-automation/internal/requestctx"
	"github.com/DrOksusu/email-automation/internal/transport/http/api"
	"github.com/DrOksusu/email-automation/internal/transport/http/middleware"
	"github.com/DrOksusu/email-automation/internal/transport/http/shared"
)

type Authenticator interface {
	Login(email, password, mfaCode string) (auth.Session, error)
}

type Handler struct {
	Auth  Authenticator
	Audit shared.Auditor
}

func NewHandler(authn Authenticator, auditor shared.Auditor) *Handler {
	return &Handler{Auth: authn, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
	r.With(middleware.RequireOperator).Get("/auth/me", h.HandleMe)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	validator := shared.NewValidator()
	validator.Required("email", payload.Email, "is required")
	validator.Required("password", payload.Password, "is required")
	if validator.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	session, err := h.Auth.Login(payload.Email, payload.Password, payload.MFACode)
	switch {
	case errors.Is(err, auth.ErrMFARequired):
		api.Fail(w, http.StatusUnauthorized, "mfa_required", "mfa code required", requestctx.GetRequestID(r.Context()))
		return
	case errors.Is(err, auth.ErrMFAInvalid):
		api.Fail(w, http.StatusUnauthorized, "mfa_invalid", "invalid mfa code", requestctx.GetRequestID(r.Context()))
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}

	shared.Audit(r, h.Audit, payload.Email, audit.ActionLogin, "operator", payload.Email, nil, nil)
	api.Success(w, session, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	api.Success(w, map[string]string{"email": user.Email, "role": user.Role}, requestctx.GetRequestID(r.Context()))
}
