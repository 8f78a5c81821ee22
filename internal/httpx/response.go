package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/apperr"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteErrorMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

// WriteError renders err using its apperr kind. Unclassified errors are logged
// and reported with fallback.
func WriteError(w http.ResponseWriter, logger *zap.SugaredLogger, err error, fallback string) {
	status := apperr.HTTPStatus(err)
	if apperr.KindOf(err) == apperr.KindInternal || status >= http.StatusInternalServerError {
		logger.Errorw("request failed", "err", err, "kind", apperr.KindOf(err))
	} else {
		logger.Debugw("request rejected", "err", err, "kind", apperr.KindOf(err))
	}
	WriteErrorMessage(w, status, apperr.PublicMessage(err, fallback))
}

// DecodeJSON reads a single JSON document from the request body.
func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.InvalidInput("request body is empty")
		}
		return apperr.Wrap(apperr.KindInvalidInput, "invalid payload", fmt.Errorf("decode json: %w", err))
	}
	return nil
}
