package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/san-kum/orbitals/internal/cloud"
	"github.com/san-kum/orbitals/internal/export"
	"github.com/san-kum/orbitals/internal/quantum"
)

const (
	defaultPoints   = 3000
	errInvalidState = "invalid quantum state"
)

type stateInfo struct {
	quantum.State
	Orbital  string `json:"orbital"`
	Shape    string `json:"shape"`
	Magnetic string `json:"magnetic"`
}

func describe(st quantum.State) stateInfo {
	return stateInfo{
		State:    st,
		Orbital:  st.Orbital(),
		Shape:    quantum.ShapeDescription(st.L),
		Magnetic: quantum.MagneticDescription(st.L, st.M),
	}
}

type cloudResponse struct {
	*export.Document
	Generated int           `json:"generated"`
	Attempts  int           `json:"attempts"`
	Accepted  int           `json:"accepted"`
	Padded    int           `json:"padded"`
	Summary   cloud.Summary `json:"summary"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "orbitals",
		"states":  len(quantum.All()),
	})
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	states := quantum.All()
	out := make([]stateInfo, len(states))
	for i, st := range states {
		out[i] = describe(st)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st := quantum.ByLabel(chi.URLParam(r, "label"))
	if st == nil {
		s.writeError(w, http.StatusNotFound, errInvalidState)
		return
	}
	s.writeJSON(w, http.StatusOK, describe(*st))
}

func (s *Server) handleCloud(w http.ResponseWriter, r *http.Request) {
	q, ok := s.parseQuery(w, r)
	if !ok {
		return
	}
	rep, ok := s.generate(w, r, q)
	if !ok {
		return
	}

	visible := cloud.ApplyCutoff(rep.Points, q.req.Cutoff)
	s.writeJSON(w, http.StatusOK, cloudResponse{
		Document:  export.NewDocument(q.state, visible, q.req.Cutoff, q.seed, time.Now()),
		Generated: len(rep.Points),
		Attempts:  rep.Attempts,
		Accepted:  rep.Accepted,
		Padded:    rep.Padded,
		Summary:   cloud.Summarize(visible),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := export.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		var err error
		if format, err = export.ParseFormat(f); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	q, ok := s.parseQuery(w, r)
	if !ok {
		return
	}
	q.req.NumPoints = min(q.req.NumPoints, export.MaxPoints)
	rep, ok := s.generate(w, r, q)
	if !ok {
		return
	}

	now := time.Now()
	doc := export.NewDocument(q.state, rep.Points, q.req.Cutoff, q.seed, now)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(q.state, format, now)))
	if err := export.Write(w, format, doc); err != nil {
		s.log.Error().Err(err).Str("format", string(format)).Msg("Failed to write export")
	}
}

type cloudQuery struct {
	state quantum.State
	req   cloud.Request
	seed  uint64
}

// parseQuery reads either state=<label> or n, l, m plus points, cutoff and
// seed. It writes the error response itself.
func (s *Server) parseQuery(w http.ResponseWriter, r *http.Request) (cloudQuery, bool) {
	v := r.URL.Query()
	var q cloudQuery

	var st *quantum.State
	if label := v.Get("state"); label != "" {
		st = quantum.ByLabel(label)
	} else {
		n, err1 := strconv.Atoi(v.Get("n"))
		l, err2 := strconv.Atoi(v.Get("l"))
		m, err3 := strconv.Atoi(v.Get("m"))
		if err := errors.Join(err1, err2, err3); err != nil {
			s.writeError(w, http.StatusBadRequest, "n, l and m must be integers, or pass state")
			return q, false
		}
		st = quantum.Get(n, l, m)
	}
	if st == nil {
		s.writeError(w, http.StatusNotFound, errInvalidState)
		return q, false
	}

	points := defaultPoints
	if p := v.Get("points"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > s.cfg.MaxPoints {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("points must be an integer in [1, %d]", s.cfg.MaxPoints))
			return q, false
		}
		points = n
	}

	cutoff := 0.0
	if c := v.Get("cutoff"); c != "" {
		f, err := strconv.ParseFloat(c, 64)
		if err != nil || math.IsNaN(f) || f < 0 || f > 1 {
			s.writeError(w, http.StatusBadRequest, "cutoff must be a number in [0, 1]")
			return q, false
		}
		cutoff = f
	}

	q.seed = s.nextSeed()
	if sd := v.Get("seed"); sd != "" {
		seed, err := strconv.ParseUint(sd, 10, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "seed must be an unsigned integer")
			return q, false
		}
		q.seed = seed
	}

	q.state = *st
	q.req = cloud.RequestFor(*st, points, cutoff)
	return q, true
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, q cloudQuery) (cloud.Report, bool) {
	start := time.Now()
	rep, err := cloud.NewSeeded(q.seed, s.cfg.Sampler).GenerateReport(r.Context(), q.req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, cloud.ErrCanceled):
			status = http.StatusServiceUnavailable
		case errors.Is(err, cloud.ErrInvalidRequest):
			status = http.StatusBadRequest
		}
		s.log.Warn().Err(err).Str("state", q.state.Label).Msg("Cloud generation failed")
		s.writeError(w, status, err.Error())
		return rep, false
	}
	s.log.Debug().
		Str("state", q.state.Label).
		Int("points", len(rep.Points)).
		Int("attempts", rep.Attempts).
		Int("accepted", rep.Accepted).
		Dur("took", time.Since(start)).
		Msg("Cloud generated")
	return rep, true
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
