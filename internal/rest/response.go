package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"cloud.google.com/go/civil"
	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/utils"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, status int, message, details string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Details: details})
}

// QueryBool parses an optional boolean query parameter.
func QueryBool(r *http.Request, name string) (value bool, present bool, err error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, false, nil
	}
	value, err = strconv.ParseBool(raw)
	return value, true, err
}

// QueryInt parses an optional integer query parameter, returning def when it is absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// QueryDate parses an optional YYYY-MM-DD query parameter.
func QueryDate(r *http.Request, name string) (civil.Date, bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return civil.Date{}, false, nil
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		return civil.Date{}, false, fmt.Errorf("%s must be formatted as YYYY-MM-DD: %w", name, err)
	}
	return d, true, nil
}

// QueryDateRange reads the optional from/to parameters, which must be given together.
func QueryDateRange(r *http.Request) (civil.Date, civil.Date, bool, error) {
	start, hasFrom, err := QueryDate(r, "from")
	if err != nil {
		return civil.Date{}, civil.Date{}, false, err
	}
	end, hasTo, err := QueryDate(r, "to")
	if err != nil {
		return civil.Date{}, civil.Date{}, false, err
	}
	if hasFrom != hasTo {
		return civil.Date{}, civil.Date{}, false, fmt.Errorf("from and to must be given together")
	}
	return start, end, hasFrom, nil
}
