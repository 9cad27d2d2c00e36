package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/reputation-manager/internal/domain"
	"github.com/heartmarshall/reputation-manager/internal/service/connection"
	"github.com/heartmarshall/reputation-manager/internal/service/oauthflow"
)

type errorResponse struct {
	Error    string               `json:"error"`
	Fields   []fieldErrorResponse `json:"fields,omitempty"`
	Guidance string               `json:"guidance,omitempty"`
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(v)
}

// handleError maps a service error to an HTTP response.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		validation *domain.ValidationError
		mismatch   *oauthflow.RedirectURIMismatchError
	)

	switch {
	case errors.As(err, &validation):
		resp := errorResponse{Error: "validation failed"}
		for _, fe := range validation.Errors {
			resp.Fields = append(resp.Fields, fieldErrorResponse{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation failed")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.As(err, &mismatch):
		writeJSON(w, http.StatusPreconditionFailed, errorResponse{
			Error:    "redirect URI mismatch",
			Guidance: mismatch.Guidance(),
		})
	case errors.Is(err, oauthflow.ErrMissingClientID):
		writeJSON(w, http.StatusPreconditionFailed, errorResponse{
			Error:    "Google client ID is not configured",
			Guidance: "Set GOOGLE_CLIENT_ID to the OAuth client id from the Google Cloud Console.",
		})
	case errors.Is(err, oauthflow.ErrMissingClientSecret):
		writeJSON(w, http.StatusPreconditionFailed, errorResponse{
			Error:    "Google client secret is not configured",
			Guidance: "Authorization codes can only be exchanged by a server holding the client secret. Set GOOGLE_CLIENT_SECRET.",
		})
	case errors.Is(err, domain.ErrNotConfigured):
		writeError(w, http.StatusPreconditionFailed, "not configured")
	case errors.Is(err, oauthflow.ErrPopupClosed):
		writeError(w, http.StatusConflict, "Popup closed by user")
	case errors.Is(err, oauthflow.ErrStateMismatch):
		writeError(w, http.StatusConflict, "State mismatch. Possible CSRF attack.")
	case errors.Is(err, oauthflow.ErrAccessDenied):
		writeError(w, http.StatusConflict, "Access was denied on the Google consent screen")
	case errors.Is(err, connection.ErrNotConnected):
		writeError(w, http.StatusConflict, "Google account is not connected")
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	case errors.Is(err, oauthflow.ErrTimeout):
		writeError(w, http.StatusRequestTimeout, "Google sign-in timed out")
	case errors.Is(err, oauthflow.ErrCancelled):
		log.DebugContext(r.Context(), "request cancelled", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
