package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/me/seekplan/internal/scheduler"
	"github.com/me/seekplan/pkg/model"
)

type policyInfo struct {
	Name        model.Policy `json:"name"`
	Description string       `json:"description"`
}

type compareResponse struct {
	Direction   model.Direction    `json:"direction"`
	Comparisons []model.Comparison `json:"comparisons"`
}

func (s *Server) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	out := make([]policyInfo, 0, len(model.Policies))
	for _, p := range model.Policies {
		out = append(out, policyInfo{Name: p, Description: model.PolicyDescriptions[p]})
	}
	respondOK(w, reqID, out)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	req, ok := s.decodeScheduleRequest(w, r)
	if !ok {
		return
	}

	policy, err := model.ParsePolicy(req.Policy)
	if err != nil {
		respondErr(w, reqID, err)
		return
	}
	if req.Persist && s.store == nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("run history is not enabled on this server",
				model.FieldError{Field: "persist", Message: "must be false"}))
		return
	}

	dir, err := resolveDirection(req)
	if err != nil {
		respondErr(w, reqID, err)
		return
	}

	res, err := s.engine.RunDirection(policy, req.Requests, req.Head, dir, req.DiskSize)
	s.metrics.ObserveRun(policy, len(req.Requests), res, err)
	if err != nil {
		respondErr(w, reqID, err)
		return
	}

	run := &model.Run{
		ID:        "run_" + uuid.New().String(),
		Label:     req.Label,
		Policy:    policy,
		Requests:  req.Requests,
		Head:      req.Head,
		Previous:  req.Previous,
		DiskSize:  req.DiskSize,
		Direction: dir,
		Result:    res,
		CreatedAt: time.Now().UTC(),
	}

	if !req.Persist {
		respondOK(w, reqID, run)
		return
	}
	if err := s.store.CreateRun(r.Context(), run); err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	s.logger.Info("run stored", "id", run.ID, "policy", policy, "movement", res.TotalMovement)
	respondCreated(w, reqID, run)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	req, ok := s.decodeScheduleRequest(w, r)
	if !ok {
		return
	}

	dir, err := resolveDirection(req)
	if err != nil {
		respondErr(w, reqID, err)
		return
	}

	comparisons, err := s.engine.Compare(req.Requests, req.Head, req.Previous, dir, req.DiskSize)
	if err != nil {
		respondErr(w, reqID, err)
		return
	}
	for _, c := range comparisons {
		s.metrics.ObserveRun(c.Policy, len(req.Requests), c.Result, nil)
	}
	respondOK(w, reqID, compareResponse{Direction: dir, Comparisons: comparisons})
}

// decodeScheduleRequest parses the body and enforces the request-set size
// limit. It writes the error response itself and reports false on failure.
func (s *Server) decodeScheduleRequest(w http.ResponseWriter, r *http.Request) (model.ScheduleRequest, bool) {
	reqID := RequestIDFromContext(r.Context())

	var req model.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return req, false
	}
	if req.Requests == nil {
		req.Requests = []int{}
	}
	if len(req.Requests) > s.config.MaxRequests {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("too many requests",
				model.FieldError{
					Field:   "requests",
					Message: fmt.Sprintf("at most %d requests per call, got %d", s.config.MaxRequests, len(req.Requests)),
				}))
		return req, false
	}
	return req, true
}

// resolveDirection validates the positional inputs and returns the explicit
// direction if given, otherwise the one inferred from previous.
func resolveDirection(req model.ScheduleRequest) (model.Direction, error) {
	if err := scheduler.Validate(req.Requests, req.Head, req.Previous, req.DiskSize); err != nil {
		return "", err
	}
	if req.Direction != "" {
		return model.ParseDirection(req.Direction)
	}
	return model.InferDirection(req.Previous, req.Head), nil
}
