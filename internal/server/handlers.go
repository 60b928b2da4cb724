package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huangsam/dealsense/core"
	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/internal/inputs"
	"github.com/huangsam/dealsense/schema"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// apiHandler holds common dependencies for the HTTP handlers.
type apiHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// decisionResponse wraps the results of one pipeline call.
// Results holds whatever succeeded even when Error is set.
type decisionResponse[T any] struct {
	RequestID string `json:"request_id"`
	Results   []T    `json:"results"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
}

type outcomeResponse struct {
	RequestID string                 `json:"request_id"`
	Outcome   schema.ReversalOutcome `json:"outcome"`
}

type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
	Code      string `json:"code"`
}

func (h *apiHandler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *apiHandler) classifyDormantLeads(w http.ResponseWriter, r *http.Request) {
	handleDecisions(w, r, h, inputs.DecodeDormantLeads, core.GetDormancyResults)
}

func (h *apiHandler) scoreLeads(w http.ResponseWriter, r *http.Request) {
	handleDecisions(w, r, h, inputs.DecodeInboundLeads, core.GetScoreResults)
}

func (h *apiHandler) analyzeLostDeals(w http.ResponseWriter, r *http.Request) {
	handleDecisions(w, r, h, inputs.DecodeLostDeals, core.GetReversalResults)
}

// handleDecisions decodes a single entity or a list, runs the pipeline and writes the results.
func handleDecisions[In, Out any](
	w http.ResponseWriter,
	r *http.Request,
	h *apiHandler,
	decode func([]byte) ([]In, error),
	run func(context.Context, *contract.Config, contract.StoreManager, []In) ([]Out, error),
) {
	reqID := requestIDFrom(r.Context())
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}
	entities, err := decode(body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_INPUT", err)
		return
	}
	if len(entities) == 0 {
		writeError(w, r, http.StatusBadRequest, "INVALID_INPUT", eris.New("no entities in request"))
		return
	}

	results, err := run(r.Context(), h.baseCfg.Clone(), h.mgr, entities)
	if results == nil {
		results = []Out{}
	}
	resp := decisionResponse[Out]{RequestID: reqID, Results: results}
	status := http.StatusOK
	if err != nil {
		status, resp.Code = statusFor(err)
		resp.Error = err.Error()
		logFailure(r, status, err)
	}
	writeJSON(w, status, resp)
}

func (h *apiHandler) recordOutcome(w http.ResponseWriter, r *http.Request) {
	dealID := chi.URLParam(r, "dealID")
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	var outcome schema.ReversalOutcome
	if err := json.Unmarshal(body, &outcome); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_INPUT", eris.Wrap(err, "invalid outcome"))
		return
	}
	if outcome.DealID != "" && outcome.DealID != dealID {
		writeError(w, r, http.StatusBadRequest, "INVALID_INPUT",
			eris.Errorf("outcome deal_id %q does not match path %q", outcome.DealID, dealID))
		return
	}
	outcome.DealID = dealID

	recorded, err := core.RecordOutcome(r.Context(), h.baseCfg.Clone(), h.mgr, outcome)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, r, status, code, err)
		return
	}
	writeJSON(w, http.StatusCreated, outcomeResponse{RequestID: requestIDFrom(r.Context()), Outcome: recorded})
}

// statusFor maps invalid input to 400 and everything else to 500.
func statusFor(err error) (int, string) {
	if errors.Is(err, schema.ErrInvalidInput) {
		return http.StatusBadRequest, "INVALID_INPUT"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer func() { _ = r.Body.Close() }()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "failed to read request body")
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contract.LogWarn("Failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	logFailure(r, status, err)
	writeJSON(w, status, errorResponse{
		RequestID: requestIDFrom(r.Context()),
		Error:     err.Error(),
		Code:      code,
	})
}

func logFailure(r *http.Request, status int, err error) {
	log := zap.L().With(
		zap.String("request_id", requestIDFrom(r.Context())),
		zap.String("path", r.URL.Path))
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
		return
	}
	log.Debug("request rejected", zap.Error(err))
}
