package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cleared-dev/household/internal/model"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// badRequest marks malformed input that never reached a service.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

// writeError maps domain errors onto status codes. Unknown errors are logged
// and hidden behind a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr model.ValidationError
		nf   model.NotFoundError
		cerr model.ConflictError
		bad  badRequest
	)
	switch {
	case errors.As(err, &verr):
		s.metrics.Rejected("validation")
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Description, Field: verr.Field})
	case errors.As(err, &nf):
		s.metrics.Rejected("not_found")
		writeJSON(w, http.StatusNotFound, errorBody{Error: nf.Error()})
	case errors.As(err, &cerr):
		s.metrics.Rejected("conflict")
		writeJSON(w, http.StatusConflict, errorBody{Error: cerr.Description})
	case errors.As(err, &bad):
		s.metrics.Rejected("bad_request")
		writeJSON(w, http.StatusBadRequest, errorBody{Error: bad.msg})
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestID(r.Context()),
			"error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest{msg: fmt.Sprintf("malformed JSON body: %v", err)}
	}
	return nil
}

// pathID parses the {id} wildcard. Non-numeric ids cannot name an entity.
func pathID(r *http.Request, entity string) (int, error) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, badRequest{msg: fmt.Sprintf("invalid %s id %q", entity, raw)}
	}
	return id, nil
}
