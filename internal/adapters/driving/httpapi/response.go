package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/logger"
)

type errorResponse struct {
	Error               string   `json:"error"`
	AvailableCategories []string `json:"available_categories,omitempty"`
}

type pageResponse struct {
	Data  []domain.Item `json:"data"`
	Total int           `json:"total"`
}

type comboResponse struct {
	Data  []domain.Item `json:"data"`
	Total int           `json:"total"`
	Time  float64       `json:"time"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, body errorResponse) {
	writeJSON(w, status, body)
}

// writeOutcome writes a single-provider outcome.
func writeOutcome(w http.ResponseWriter, out domain.Outcome) {
	if out.OK() {
		writeJSON(w, http.StatusOK, pageResponse{Data: items(out.Items), Total: out.Total})
		return
	}
	status, body := failure(out)
	writeError(w, status, body)
}

// writeAggregate writes a merged multi-provider result.
func writeAggregate(w http.ResponseWriter, res domain.AggregateResult) {
	if !res.OK() {
		writeError(w, http.StatusNotFound, errorResponse{Error: domain.MsgEmpty})
		return
	}
	writeJSON(w, http.StatusOK, comboResponse{
		Data:  items(res.Items),
		Total: res.Total,
		Time:  res.Elapsed.Seconds(),
	})
}

// failure maps a non-success outcome to a status code and body.
func failure(out domain.Outcome) (int, errorResponse) {
	body := errorResponse{Error: out.Message()}
	switch out.Kind {
	case domain.OutcomeCategoryInvalid:
		body.AvailableCategories = available(out.Available)
		return http.StatusNotFound, body
	case domain.OutcomeProviderUnknown, domain.OutcomeOperationUnsupported,
		domain.OutcomeCategoryUnsupported, domain.OutcomeEmpty:
		return http.StatusNotFound, body
	default:
		// Blocked and provider faults look the same to the caller.
		return http.StatusForbidden, body
	}
}

func items(in []domain.Item) []domain.Item {
	if in == nil {
		return []domain.Item{}
	}
	return in
}

func available(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func uptimeSeconds(d time.Duration) int {
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}
