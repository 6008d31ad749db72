package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/buildinfo"
	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/render"
)

// =============================================================================
// Response Types
// =============================================================================

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type layoutResponse struct {
	Variant   string            `json:"variant"`
	Seed      uint64            `json:"seed"`
	Cached    bool              `json:"cached"`
	Result    layout.Result     `json:"result"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
}

type buildingResponse struct {
	ID     string            `json:"id"`
	Seed   uint64            `json:"seed"`
	Cached bool              `json:"cached"`
	Stats  building.Stats    `json:"stats"`
	Links  map[string]string `json:"links"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) createLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := decode(w, r, &opts); err != nil {
		writeError(w, r, err)
		return
	}
	opts.Variant = chi.URLParam(r, "variant")
	wantArtifacts := len(opts.Formats) > 0
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, r, err)
		return
	}

	resp := layoutResponse{Variant: opts.Variant, Seed: opts.Seed}
	if !wantArtifacts {
		res, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), opts)
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp.Result, resp.Cached = res, hit
		writeJSON(w, http.StatusOK, resp)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.Result, resp.Cached = result.Layout, result.CacheInfo.ComputeHit
	resp.Artifacts = make(map[string]string, len(result.Artifacts))
	for format, data := range result.Artifacts {
		resp.Artifacts[format] = string(data)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) createBuilding(w http.ResponseWriter, r *http.Request) {
	spec := building.DefaultSpec()
	if err := decode(w, r, &spec); err != nil {
		writeError(w, r, err)
		return
	}
	opts := pipeline.BuildingOptions{
		Spec:    spec,
		Formats: []string{render.FormatJSON},
		Logger:  s.logger.With("request_id", RequestID(r.Context())),
	}
	plan, hit, err := s.runner.PlanWithCacheInfo(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id := s.plans.put(plan).String()
	writeJSON(w, http.StatusCreated, buildingResponse{
		ID:     id,
		Seed:   plan.Seed,
		Cached: hit,
		Stats:  plan.Stats(),
		Links: map[string]string{
			"self": "/v1/buildings/" + id,
			"svg":  "/v1/buildings/" + id + ".svg",
		},
	})
}

func (s *Server) getBuilding(w http.ResponseWriter, r *http.Request) {
	plan, err := s.lookup(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	model, err := pipeline.ComposeModel(r.Context(), plan)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model)
}

func (s *Server) buildingSVG(w http.ResponseWriter, r *http.Request) {
	plan, err := s.lookup(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	side := building.North
	if q := r.URL.Query().Get("side"); q != "" {
		if side, err = building.ParseSide(q); err != nil {
			writeError(w, r, err)
			return
		}
	}
	opts := pipeline.BuildingOptions{
		View:    side,
		Formats: []string{render.FormatSVG},
	}
	artifacts, _, err := s.runner.RenderPlanWithCacheInfo(r.Context(), plan, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[render.FormatSVG])
}

func (s *Server) lookup(r *http.Request) (*building.BuildingPlan, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.New(errors.ErrCodePlanNotFound, "no building %q", raw)
	}
	plan, ok := s.plans.get(id)
	if !ok {
		return nil, errors.New(errors.ErrCodePlanNotFound, "no building %q", raw)
	}
	return plan, nil
}

// =============================================================================
// Helpers
// =============================================================================

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	if r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
