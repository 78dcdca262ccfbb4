package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"

	"github.com/matzehuels/assetgraph/pkg/buildinfo"
	"github.com/matzehuels/assetgraph/pkg/discovery"
	"github.com/matzehuels/assetgraph/pkg/errors"
	assetio "github.com/matzehuels/assetgraph/pkg/io"
	"github.com/matzehuels/assetgraph/pkg/network"
)

type healthResponse struct {
	Status  string         `json:"status"`
	Version buildinfo.Info `json:"version"`
}

type relationshipResponse struct {
	Relationship assetio.RelationshipRecord `json:"relationship"`
	Added        bool                       `json:"added"`
}

type discoverResponse struct {
	Pairs      int            `json:"pairs"`
	Fired      int            `json:"fired"`
	Added      int            `json:"added"`
	ByType     map[string]int `json:"by_type"`
	DurationMS int64          `json:"duration_ms"`
}

func newDiscoverResponse(res discovery.Result) discoverResponse {
	byType := make(map[string]int, len(res.ByType))
	for t, n := range res.ByType {
		byType[string(t)] = n
	}
	return discoverResponse{
		Pairs:      res.Pairs,
		Fired:      res.Fired,
		Added:      res.Added,
		ByType:     byType,
		DurationMS: res.Duration.Milliseconds(),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Current()})
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	nw, ok := s.network(w)
	if !ok {
		return
	}
	s.mu.RLock()
	assets := nw.Graph().Assets()
	s.mu.RUnlock()

	out := make([]assetio.AssetRecord, len(assets))
	for i, a := range assets {
		out[i] = assetio.NewAssetRecord(a)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddAsset(w http.ResponseWriter, r *http.Request) {
	var rec assetio.AssetRecord
	if !decodeBody(w, r, &rec) {
		return
	}
	a, err := rec.ToAsset()
	if err != nil {
		writeError(w, err)
		return
	}
	nw, ok := s.network(w)
	if !ok {
		return
	}

	s.mu.Lock()
	err = nw.AddAsset(a)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, assetio.NewAssetRecord(a))
}

func (s *Server) handleAssetRelationships(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	nw, ok := s.network(w)
	if !ok {
		return
	}
	s.mu.RLock()
	rels, err := nw.Graph().RelationshipsFor(id)
	s.mu.RUnlock()
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]assetio.RelationshipRecord, len(rels))
	for i, rel := range rels {
		out[i] = assetio.NewRelationshipRecord(rel)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	var rec assetio.EventRecord
	if !decodeBody(w, r, &rec) {
		return
	}
	e, err := rec.ToEvent()
	if err != nil {
		writeError(w, err)
		return
	}
	nw, ok := s.network(w)
	if !ok {
		return
	}

	s.mu.Lock()
	err = nw.AddEvent(e)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, assetio.NewEventRecord(e))
}

func (s *Server) handleAddRelationship(w http.ResponseWriter, r *http.Request) {
	var rec assetio.RelationshipRecord
	if !decodeBody(w, r, &rec) {
		return
	}
	rel, err := rec.ToRelationship()
	if err != nil {
		writeError(w, err)
		return
	}
	nw, ok := s.network(w)
	if !ok {
		return
	}

	s.mu.Lock()
	added, err := nw.AddRelationship(rel)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, relationshipResponse{Relationship: rec, Added: added})
}

func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	nw, ok := s.network(w)
	if !ok {
		return
	}
	s.mu.Lock()
	res, err := s.runner.Discover(r.Context(), nw)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDiscoverResponse(res))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	nw, ok := s.network(w)
	if !ok {
		return
	}
	s.mu.RLock()
	report, err := nw.CalculateMetrics()
	s.mu.RUnlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleVisualization(w http.ResponseWriter, r *http.Request) {
	opts := s.base
	q := r.URL.Query()
	if v := q.Get("seed"); v != "" {
		seed, err := cast.ToUint64E(v)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "seed %q is not an unsigned integer", v))
			return
		}
		opts.Seed = seed
	}
	if v := q.Get("refresh"); v != "" {
		refresh, err := cast.ToBoolE(v)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "refresh %q is not a boolean", v))
			return
		}
		opts.Refresh = refresh
	}

	nw, ok := s.network(w)
	if !ok {
		return
	}
	s.mu.RLock()
	if nw.Graph().Len() == 0 {
		s.mu.RUnlock()
		writeError(w, errors.New(errors.ErrCodeEmptyGraph, "network has no assets"))
		return
	}
	v, err := s.runner.Visualize(r.Context(), nw, opts)
	s.mu.RUnlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// network returns the shared network, writing a 500 when it cannot be built.
func (s *Server) network(w http.ResponseWriter) (*network.Network, bool) {
	nw, err := s.nw.Get()
	if err != nil {
		s.logger.Error("build network", "error", err)
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "network unavailable"))
		return nil, false
	}
	return nw, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "content type must be application/json"))
		return false
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err))
		return false
	}
	return true
}
