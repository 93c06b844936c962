package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/policyposse/legisnet/internal/render"
	"github.com/policyposse/legisnet/internal/subgraph"
	"github.com/policyposse/legisnet/internal/view"
)

// handleNetworkData serves the latest snapshot document verbatim. No
// snapshot yields a 404 with a JSON error payload.
func (s *Server) handleNetworkData(w http.ResponseWriter, r *http.Request) {
	raw, _, err := s.snapshot()
	if err != nil {
		if isNoData(err) {
			writeError(w, http.StatusNotFound, "No data available")
			return
		}
		log.Printf("error loading snapshot: %v", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

// handleSubgraph filters the dataset by the query parameters and returns
// the bounded subgraph. All filtering runs against the in-memory dataset.
func (s *Server) handleSubgraph(w http.ResponseWriter, r *http.Request) {
	_, ds, err := s.snapshot()
	if err != nil {
		if isNoData(err) {
			writeError(w, http.StatusNotFound, "No data available")
			return
		}
		log.Printf("error loading snapshot: %v", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	opts, err := s.filterOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, subgraph.Filter(ds, opts))
}

// handleIndex renders the visualization page for the requested view:
// min/policy/strategy select the subgraph, state/node select the focus,
// q searches legislator names.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	_, ds, err := s.snapshot()
	if err != nil {
		if isNoData(err) {
			writeError(w, http.StatusNotFound, "No data available")
			return
		}
		log.Printf("error loading snapshot: %v", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	opts, err := s.filterOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sg := subgraph.Filter(ds, opts)

	st := view.Overview()
	q := r.URL.Query()
	if nodeID := q.Get("node"); nodeID != "" {
		if leg, ok := ds.Legislator(nodeID); ok {
			st = view.NodeFocus(leg.ID, leg.State)
		}
	} else if state := q.Get("state"); state != "" {
		st = view.StateFocus(state)
	}

	page, err := render.HTML(render.Compose(ds, sg, st, q.Get("q")))
	if err != nil {
		log.Printf("error rendering page: %v", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

// filterOptions builds subgraph filter options from query parameters. The
// threshold is clamped to the valid 1-20 range; an unknown sampling
// strategy is an error.
func (s *Server) filterOptions(r *http.Request) (subgraph.Options, error) {
	q := r.URL.Query()

	min := s.cfg.DefaultThreshold
	if raw := q.Get("min"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			min = n
		}
	}
	min = subgraph.ClampThreshold(min)

	policy := q.Get("policy")
	if policy == "" {
		policy = subgraph.PolicyAll
	}

	strategy := s.cfg.SamplingStrategy
	if raw := q.Get("strategy"); raw != "" {
		parsed, err := subgraph.ParseStrategy(raw)
		if err != nil {
			return subgraph.Options{}, err
		}
		strategy = parsed
	}

	return subgraph.Options{
		MinCollaborations: min,
		PolicyID:          policy,
		Strategy:          strategy,
	}, nil
}
