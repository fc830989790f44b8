package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rafterlab/rafterplan/pkg/buildinfo"
	"github.com/rafterlab/rafterplan/pkg/cache"
	apperrors "github.com/rafterlab/rafterplan/pkg/errors"
	"github.com/rafterlab/rafterplan/pkg/pipeline"
	"github.com/rafterlab/rafterplan/pkg/schema"
	"github.com/rafterlab/rafterplan/pkg/site"
	"github.com/rafterlab/rafterplan/pkg/store"
)

// planRequest is the body for the plan computation endpoints. The site
// field uses the same JSON schema as site files and must carry a name.
type planRequest struct {
	Site json.RawMessage `json:"site"`
	Rows bool            `json:"rows,omitempty"`
}

// handleHealth reports liveness and the running build.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handlePlan computes a plan without persisting it. The response body is
// the plan document; the X-Plan-Cache header reports hit or miss.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	doc, hit, err := s.computePlan(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Plan-Cache", cacheStatus(hit))
	writeJSON(w, http.StatusOK, doc)
}

// handleCreatePlan computes a plan and saves it. The response is the new
// record, including the document, with its URL in the Location header.
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	doc, _, err := s.computePlan(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := store.NewRecord(doc.Site, doc)
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "saving plan"))
		return
	}

	w.Header().Set("Location", "/api/v1/plans/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

// handleListPlans lists saved plans, newest first, without documents.
func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "listing plans"))
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"plans": recs,
		"count": len(recs),
	})
}

// handleGetPlan fetches one saved plan including its document.
func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	rec, err := s.lookupPlan(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleDeletePlan removes a saved plan.
func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "planID")
	if err := apperrors.ValidatePlanID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, mapStoreErr(err, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePlanSVG renders a saved plan's document as SVG.
//
// Query parameters:
//   - view: "blueprint" (default) or "adjacency"
//   - scale: pixels per length unit (blueprint only)
//   - rafters: "1" or "true" draws the rafter grid
//   - labels: "1" or "true" draws coordinate labels
func (s *Server) handlePlanSVG(w http.ResponseWriter, r *http.Request) {
	rec, err := s.lookupPlan(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := svgOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	artifacts, _, err := s.runner.RenderWithCacheInfo(r.Context(), rec.Document, documentHash(rec.Document), opts)
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "rendering plan %s", rec.ID))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[pipeline.FormatSVG])
}

// computePlan decodes the request body and runs the plan stage.
func (s *Server) computePlan(r *http.Request) (*schema.Document, bool, error) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decoding request body")
	}
	if len(req.Site) == 0 {
		return nil, false, apperrors.New(apperrors.ErrCodeInvalidInput, "request body needs a site field")
	}

	parsed, err := site.Parse(req.Site, "")
	if err != nil {
		return nil, false, err
	}

	opts := pipeline.Options{Site: parsed, Rows: req.Rows, Logger: s.logger}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid options")
	}

	doc, hit, err := s.runner.PlanWithCacheInfo(r.Context(), parsed, opts)
	if err != nil {
		// Planner rejections at this point are geometry problems in the
		// submitted site, not server faults.
		return nil, false, apperrors.Wrap(apperrors.ErrCodeInvalidSite, err, "planning site %q", parsed.Name)
	}
	return doc, hit, nil
}

// lookupPlan validates the path ID and fetches the record.
func (s *Server) lookupPlan(r *http.Request) (*store.Record, error) {
	id := chi.URLParam(r, "planID")
	if err := apperrors.ValidatePlanID(id); err != nil {
		return nil, err
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		return nil, mapStoreErr(err, id)
	}
	return rec, nil
}

// mapStoreErr converts store sentinels into coded errors.
func mapStoreErr(err error, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.New(apperrors.ErrCodePlanNotFound, "plan %s not found", id)
	}
	return apperrors.Wrap(apperrors.ErrCodeStore, err, "plan %s", id)
}

// svgOptions builds render options from SVG endpoint query parameters.
func svgOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Formats: []string{pipeline.FormatSVG}}

	switch view := q.Get("view"); view {
	case "", "blueprint":
	case "adjacency":
		opts.Adjacency = true
	default:
		return opts, apperrors.New(apperrors.ErrCodeInvalidFormat,
			"unknown view %q (want blueprint or adjacency)", view)
	}

	if raw := q.Get("scale"); raw != "" {
		scale, err := strconv.ParseFloat(raw, 64)
		if err != nil || scale <= 0 {
			return opts, apperrors.New(apperrors.ErrCodeInvalidInput,
				"scale must be a positive number, got %q", raw)
		}
		opts.Scale = scale
	}

	opts.Rafters = boolParam(q.Get("rafters"))
	opts.Labels = boolParam(q.Get("labels"))
	return opts, nil
}

func boolParam(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// documentHash content-addresses a document for the artifact cache.
func documentHash(doc *schema.Document) string {
	data, err := schema.Marshal(doc)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
