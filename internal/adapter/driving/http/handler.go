package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/ssokit/svcregistry/internal/application"
	"github.com/ssokit/svcregistry/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	issuer   *application.IssuerService
	registry *application.RegistryService
	codec    *application.Codec
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	issuer *application.IssuerService,
	registry *application.RegistryService,
	codec *application.Codec,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		issuer:   issuer,
		registry: registry,
		codec:    codec,
		logger:   logger,
	}
}

// GenerateClient issues a new credential pair for the given email. The
// plaintext app secret appears in this response and in fetch_client, nowhere
// else.
func (h *Handler) GenerateClient(w http.ResponseWriter, r *http.Request) {
	var req GenerateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email, err := normalizeEmail(req.ClientEmail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	client, err := h.issuer.IssueCredential(r.Context(), email)
	if err != nil {
		h.logger.Error("failed to issue credential", "email", email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toGenerateClientResponse(*client))
}

// GetServiceList returns the services visible to the requesting user:
// their own for CL-USER, all of them for ADMIN-USER.
func (h *Handler) GetServiceList(w http.ResponseWriter, r *http.Request) {
	var req ServiceListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email, err := normalizeEmail(req.ClientEmail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	listings, err := h.registry.ListServices(r.Context(), email)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not registered")
		return
	case errors.Is(err, application.ErrServiceNotFound):
		writeError(w, http.StatusNotFound, "no services found")
		return
	case errors.Is(err, application.ErrUnauthorizedRole):
		writeError(w, http.StatusForbidden, "role not authorized")
		return
	case err != nil:
		h.logger.Error("failed to list services", "email", email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]ServiceListingResponse, 0, len(listings))
	for _, listing := range listings {
		resp = append(resp, toServiceListingResponse(listing))
	}

	writeJSON(w, http.StatusOK, resp)
}

// AddService registers service metadata on an issued credential and sends
// the record back through approval.
func (h *Handler) AddService(w http.ResponseWriter, r *http.Request) {
	var req AddServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email, err := normalizeEmail(req.ClientEmail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.AppKey == "" {
		writeError(w, http.StatusBadRequest, "app_key is required")
		return
	}
	if req.ServiceName == "" {
		writeError(w, http.StatusBadRequest, "service_name is required")
		return
	}
	if req.ServiceDomain == "" {
		writeError(w, http.StatusBadRequest, "service_domain is required")
		return
	}
	if req.ServiceURI == "" {
		writeError(w, http.StatusBadRequest, "service_uri is required")
		return
	}

	err = h.registry.RegisterService(r.Context(), email, req.AppKey, req.ServiceName, req.ServiceDomain, req.ServiceURI)
	switch {
	case errors.Is(err, driven.ErrClientNotFound):
		writeError(w, http.StatusNotFound, "client credential not found")
		return
	case err != nil:
		h.logger.Error("failed to register service", "email", email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Message: "service registered"})
}

// ApproveService marks a registered service as approved. ClientID carries
// the plaintext app key.
func (h *Handler) ApproveService(w http.ResponseWriter, r *http.Request) {
	var req ApproveServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email, err := normalizeEmail(req.ClientEmail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ClientID == "" {
		writeError(w, http.StatusBadRequest, "client_id is required")
		return
	}

	err = h.registry.ApproveService(r.Context(), email, req.ClientID)
	switch {
	case errors.Is(err, driven.ErrClientNotFound):
		writeError(w, http.StatusNotFound, "client credential not found")
		return
	case errors.Is(err, driven.ErrAlreadyApproved):
		writeError(w, http.StatusConflict, "service already approved")
		return
	case err != nil:
		h.logger.Error("failed to approve service", "email", email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Message: "service approved"})
}

// FetchClient resolves a wrapped identifier to the full stored credential,
// including the app secret. ClientID carries the wrapped app key.
func (h *Handler) FetchClient(w http.ResponseWriter, r *http.Request) {
	var req FetchClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ClientID == "" {
		writeError(w, http.StatusBadRequest, "client_id is required")
		return
	}

	client, err := h.registry.FetchClient(r.Context(), req.ClientID)
	switch {
	case errors.Is(err, application.ErrInvalidToken):
		writeError(w, http.StatusBadRequest, "invalid client token")
		return
	case errors.Is(err, driven.ErrClientNotFound):
		writeError(w, http.StatusNotFound, "client credential not found")
		return
	case err != nil:
		h.logger.Error("failed to fetch client", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toClientDetailResponse(*client))
}

// EncryptClientID wraps a plaintext app key into an opaque token.
func (h *Handler) EncryptClientID(w http.ResponseWriter, r *http.Request) {
	var req EncryptClientIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.AppKey == "" {
		writeError(w, http.StatusBadRequest, "app_key is required")
		return
	}

	encKey, err := h.codec.Wrap(req.AppKey)
	if err != nil {
		h.logger.Error("failed to wrap app key", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, EncryptClientIDResponse{EncAppKey: encKey})
}

// DecryptClientID unwraps an opaque token back to the plaintext app key.
func (h *Handler) DecryptClientID(w http.ResponseWriter, r *http.Request) {
	var req DecryptClientIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.EncAppKey == "" {
		writeError(w, http.StatusBadRequest, "enc_app_key is required")
		return
	}

	appKey, err := h.codec.Unwrap(req.EncAppKey)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client token")
		return
	}

	writeJSON(w, http.StatusOK, DecryptClientIDResponse{AppKey: appKey})
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// normalizeEmail lowercases and trims an email address and rejects anything
// that is not a plain address (display names, groups, empty input).
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", errors.New("client_email is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errors.New("client_email is not a valid email address")
	}

	return email, nil
}
