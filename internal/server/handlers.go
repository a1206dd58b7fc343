package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GetFractional/Job-Hunter-sub002/internal/ingestion"
	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// AnalyzeRequest is the payload for POST /analyze. Text carries the
// posting body; set HTML when it is a raw HTML document. Profile is
// optional and enables fit scoring.
type AnalyzeRequest struct {
	Text    string             `json:"text" validate:"required"`
	HTML    bool               `json:"html,omitempty"`
	Profile *types.UserProfile `json:"profile,omitempty"`
}

// CandidateListResponse is the payload for GET /candidates.
type CandidateListResponse struct {
	Candidates []types.Candidate `json:"candidates"`
	Count      int               `json:"count"`
}

// CandidateGroupsResponse is the payload for GET /candidates?group=type.
type CandidateGroupsResponse struct {
	Groups map[types.ItemType][]types.Candidate `json:"groups"`
	Count  int                                  `json:"count"`
}

// ClearCandidatesResponse is the payload for DELETE /candidates.
type ClearCandidatesResponse struct {
	Removed int64 `json:"removed"`
}

// handleAnalyze runs the analysis pipeline on a posting supplied in the
// request body and returns the full result.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	text := req.Text
	if req.HTML {
		extracted, err := ingestion.FromHTML(text)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Failed to parse HTML document")
			return
		}
		text = extracted
	}

	result, err := s.analyzer.Analyze(r.Context(), text, req.Profile)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			s.log.Error("analysis failed", zap.Error(err))
			s.errorResponse(w, status, "Analysis failed")
			return
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleListCandidates returns review candidates. Supported query
// parameters: pending=true, sort=priority|frequency, group=type.
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	if s.manager == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Candidate store is not configured")
		return
	}

	ctx := r.Context()
	query := r.URL.Query()

	if group := query.Get("group"); group != "" {
		if group != "type" {
			s.errorResponse(w, http.StatusBadRequest, "Unknown group parameter, expected 'type'")
			return
		}
		groups, err := s.manager.GroupByInferredType(ctx)
		if err != nil {
			s.log.Error("failed to list candidates", zap.Error(err))
			s.errorResponse(w, http.StatusInternalServerError, "Failed to list candidates")
			return
		}
		count := 0
		for _, g := range groups {
			count += len(g)
		}
		s.jsonResponse(w, http.StatusOK, CandidateGroupsResponse{Groups: groups, Count: count})
		return
	}

	var (
		list []types.Candidate
		err  error
	)
	switch sortBy := query.Get("sort"); sortBy {
	case "":
		if query.Get("pending") == "true" {
			list, err = s.manager.Pending(ctx)
		} else {
			list, err = s.manager.List(ctx)
		}
	case "priority":
		list, err = s.manager.ByReviewPriority(ctx)
	case "frequency":
		list, err = s.manager.ByFrequency(ctx)
	default:
		s.errorResponse(w, http.StatusBadRequest, "Unknown sort parameter, expected 'priority' or 'frequency'")
		return
	}
	if err != nil {
		s.log.Error("failed to list candidates", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list candidates")
		return
	}

	if list == nil {
		list = []types.Candidate{}
	}
	s.jsonResponse(w, http.StatusOK, CandidateListResponse{Candidates: list, Count: len(list)})
}

// handleExportCandidates serves the full candidate list as a JSON
// download.
func (s *Server) handleExportCandidates(w http.ResponseWriter, r *http.Request) {
	if s.manager == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Candidate store is not configured")
		return
	}

	// Buffer the export so a store failure still yields a clean error
	// status instead of a truncated body.
	var buf bytes.Buffer
	if err := s.manager.Export(r.Context(), &buf); err != nil {
		s.log.Error("failed to export candidates", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to export candidates")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="candidates.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Error("failed to write export", zap.Error(err))
	}
}

// handleCandidateFeedback applies a reviewer decision to one candidate.
func (s *Server) handleCandidateFeedback(w http.ResponseWriter, r *http.Request) {
	if s.manager == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Candidate store is not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return
	}

	var feedback types.CandidateFeedback
	if err := json.NewDecoder(r.Body).Decode(&feedback); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := s.validator.Struct(feedback); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	candidate, err := s.manager.ApplyFeedback(r.Context(), id, feedback)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			s.log.Error("failed to apply feedback", zap.Error(err))
			s.errorResponse(w, status, "Failed to apply feedback")
			return
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, candidate)
}

// handleClearCandidates wipes the candidate store and reports how many
// entries were removed.
func (s *Server) handleClearCandidates(w http.ResponseWriter, r *http.Request) {
	if s.manager == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Candidate store is not configured")
		return
	}

	removed, err := s.manager.Clear(r.Context())
	if err != nil {
		s.log.Error("failed to clear candidates", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to clear candidates")
		return
	}

	s.jsonResponse(w, http.StatusOK, ClearCandidatesResponse{Removed: removed})
}

// extractValidationErrors renders the first field error from a
// validator error in a stable, user-facing form.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return fmt.Sprintf("validation error: %s - %s", fieldError.Field(), fieldError.Tag())
		}
	}
	return "validation failed"
}
