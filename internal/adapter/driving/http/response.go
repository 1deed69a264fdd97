package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ssokit/svcregistry/internal/application"
	"github.com/ssokit/svcregistry/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// GenerateClientRequest is the JSON body for the credential issuance endpoint.
type GenerateClientRequest struct {
	ClientEmail string `json:"client_email"`
}

// GenerateClientResponse carries a freshly issued credential pair.
type GenerateClientResponse struct {
	AppKey    string `json:"app_key"`
	AppSecret string `json:"app_secret"`
	CreatedAt string `json:"created_at"`
}

// ServiceListRequest is the JSON body for the service listing endpoint.
type ServiceListRequest struct {
	ClientEmail string `json:"client_email"`
}

// ServiceListingResponse is one row of the service list. It never carries
// the app secret; enc_app_key is the wrapped identifier.
type ServiceListingResponse struct {
	ServiceName   string `json:"service_name"`
	ServiceDomain string `json:"service_domain"`
	ServiceURI    string `json:"service_uri"`
	AppKey        string `json:"app_key"`
	EncAppKey     string `json:"enc_app_key"`
	IsApproved    bool   `json:"is_approved"`
	CreatedAt     string `json:"created_at"`
}

// AddServiceRequest is the JSON body for the service registration endpoint.
type AddServiceRequest struct {
	ClientEmail   string `json:"client_email"`
	AppKey        string `json:"app_key"`
	ServiceName   string `json:"service_name"`
	ServiceDomain string `json:"service_domain"`
	ServiceURI    string `json:"service_uri"`
}

// ApproveServiceRequest is the JSON body for the approval endpoint.
// ClientID carries the plaintext app key.
type ApproveServiceRequest struct {
	ClientEmail string `json:"client_email"`
	ClientID    string `json:"client_id"`
}

// FetchClientRequest is the JSON body for the client detail endpoint.
// ClientID carries the wrapped app key.
type FetchClientRequest struct {
	ClientID string `json:"client_id"`
}

// ClientDetailResponse is the full stored credential, secret included.
type ClientDetailResponse struct {
	ClientEmail   string `json:"client_email"`
	AppKey        string `json:"app_key"`
	AppSecret     string `json:"app_secret"`
	ServiceName   string `json:"service_name"`
	ServiceDomain string `json:"service_domain"`
	ServiceURI    string `json:"service_uri"`
	IsApproved    bool   `json:"is_approved"`
	CreatedAt     string `json:"created_at"`
}

// EncryptClientIDRequest is the JSON body for the wrap endpoint.
type EncryptClientIDRequest struct {
	AppKey string `json:"app_key"`
}

// EncryptClientIDResponse carries the wrapped identifier.
type EncryptClientIDResponse struct {
	EncAppKey string `json:"enc_app_key"`
}

// DecryptClientIDRequest is the JSON body for the unwrap endpoint.
type DecryptClientIDRequest struct {
	EncAppKey string `json:"enc_app_key"`
}

// DecryptClientIDResponse carries the unwrapped plaintext identifier.
type DecryptClientIDResponse struct {
	AppKey string `json:"app_key"`
}

// StatusResponse is a simple confirmation body.
type StatusResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toGenerateClientResponse converts an issued credential to its JSON
// response representation.
func toGenerateClientResponse(client model.Client) GenerateClientResponse {
	return GenerateClientResponse{
		AppKey:    client.AppKey,
		AppSecret: client.AppSecret,
		CreatedAt: client.CreatedAt.Format(model.CreatedAtLayout),
	}
}

// toServiceListingResponse converts an application ServiceListing to its
// JSON response representation.
func toServiceListingResponse(listing application.ServiceListing) ServiceListingResponse {
	return ServiceListingResponse{
		ServiceName:   listing.ServiceName,
		ServiceDomain: listing.ServiceDomain,
		ServiceURI:    listing.ServiceURI,
		AppKey:        listing.AppKey,
		EncAppKey:     listing.EncAppKey,
		IsApproved:    listing.Approved,
		CreatedAt:     listing.CreatedAt.Format(model.CreatedAtLayout),
	}
}

// toClientDetailResponse converts a domain Client to its JSON response
// representation.
func toClientDetailResponse(client model.Client) ClientDetailResponse {
	return ClientDetailResponse{
		ClientEmail:   client.ClientEmail,
		AppKey:        client.AppKey,
		AppSecret:     client.AppSecret,
		ServiceName:   client.ServiceName,
		ServiceDomain: client.ServiceDomain,
		ServiceURI:    client.ServiceURI,
		IsApproved:    client.Approved,
		CreatedAt:     client.CreatedAt.Format(model.CreatedAtLayout),
	}
}
