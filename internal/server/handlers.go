package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sw33tLie/pwcheck/internal/utils"
	"github.com/sw33tLie/pwcheck/pkg/generator"
	"github.com/sw33tLie/pwcheck/pkg/history"
	"github.com/sw33tLie/pwcheck/pkg/scorer"
)

const (
	defaultGenerateLength = 12
	defaultHistoryLimit   = 50
	maxBodyBytes          = 64 << 10
)

type EvaluateRequest struct {
	Password   string   `json:"password"`
	UserInputs []string `json:"user_inputs,omitempty"`
}

type EvaluateResponse struct {
	Report       scorer.Report       `json:"report"`
	Feedback     []string            `json:"feedback"`
	Guessability scorer.Guessability `json:"guessability"`
}

type GenerateRequest struct {
	Length int `json:"length"`
	generator.Options
}

type GenerateResponse struct {
	Password string        `json:"password"`
	Report   scorer.Report `json:"report"`
	Feedback []string      `json:"feedback"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Log.Debugf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// evaluate scores password and records the outcome. Recording failures are
// logged and do not fail the request.
func (s *Server) evaluate(r *http.Request, password string) scorer.Report {
	report := s.Scorer.Evaluate(password)
	s.metrics.observe(report)
	if err := s.History.Record(r.Context(), history.NewEntry(password, report)); err != nil {
		utils.Log.Warnf("Could not record evaluation: %v", err)
	}
	return report
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	report := s.evaluate(r, req.Password)
	writeJSON(w, http.StatusOK, EvaluateResponse{
		Report:       report,
		Feedback:     s.Scorer.Feedback(report),
		Guessability: scorer.EstimateGuessability(req.Password, req.UserInputs...),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Length == 0 {
		req.Length = defaultGenerateLength
	}

	pw, err := s.Generator.Generate(req.Length, req.Options)
	if err != nil {
		var ve *generator.ValidationError
		if errors.As(err, &ve) {
			s.metrics.generations.WithLabelValues("invalid").Inc()
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		s.metrics.generations.WithLabelValues("error").Inc()
		utils.Log.Errorf("Password generation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "password generation failed")
		return
	}
	s.metrics.generations.WithLabelValues("ok").Inc()

	report := s.evaluate(r, pw)
	writeJSON(w, http.StatusOK, GenerateResponse{
		Password: pw,
		Report:   report,
		Feedback: s.Scorer.Feedback(report),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.History.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := s.History.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.History.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
