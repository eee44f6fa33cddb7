package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// AuditRequest is the body of POST /api/seo-audit.
type AuditRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	var req AuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		s.errorResponse(w, http.StatusBadRequest, "URL is required")
		return
	}

	clientID := s.clientID(r)
	if !s.limiter.Allow(clientID, s.cfg.RateLimitRequests, s.cfg.RateLimitWindow) {
		s.metrics.AuditsTotal.WithLabelValues("rate_limited").Inc()
		s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
		return
	}

	start := time.Now()
	report, err := s.auditor.Run(r.Context(), req.URL)
	if err != nil {
		status, message, outcome := auditError(err)
		s.metrics.AuditsTotal.WithLabelValues(outcome).Inc()
		s.log.WithError(err).WithFields(map[string]any{
			"url":        req.URL,
			"client":     clientID,
			"request_id": requestID(r.Context()),
		}).Warn("audit failed")
		s.errorResponse(w, status, message)
		return
	}

	s.metrics.AuditsTotal.WithLabelValues("success").Inc()
	s.metrics.AuditDuration.Observe(time.Since(start).Seconds())
	s.metrics.AuditScore.Observe(float64(report.OverallScore))

	if s.store != nil {
		if _, err := s.store.SaveReport(r.Context(), report); err != nil {
			// History is best effort; the caller still gets the report.
			s.log.WithError(err).Warn("failed to persist audit report")
		}
	}

	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Audit history is not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be an integer between 1 and 100")
			return
		}
		limit = parsed
	}

	summaries, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		s.log.WithError(err).Error("failed to load audit history")
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load audit history")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"audits": summaries})
}
