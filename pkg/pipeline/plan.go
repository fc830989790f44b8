package pipeline

import (
	"github.com/rafterlab/rafterplan/pkg/plan"
	"github.com/rafterlab/rafterplan/pkg/schema"
	"github.com/rafterlab/rafterplan/pkg/site"
)

// ComputePlan runs the planner over a loaded site and serializes the
// outcome.
//
// Per-panel and per-row mounting failures are recorded inside the
// document (as placement/row errors) rather than failing the stage, so
// one unmountable panel never hides the rest of the plan. Only rejected
// input is an error: an invalid configuration, an empty site, or - in
// row mode - malformed panel geometry.
func ComputePlan(s *site.Site, opts Options) (*schema.Document, error) {
	p, err := plan.New(s.Config)
	if err != nil {
		return nil, err
	}

	var doc schema.Document
	if opts.Rows {
		res, err := p.PlanRows(s.Panels)
		if res == nil {
			return nil, err
		}
		doc = schema.FromRowResult(res, s.Config)
	} else {
		res, err := p.Plan(s.Panels)
		if res == nil {
			return nil, err
		}
		doc = schema.FromResult(res, s.Config)
	}
	doc.Site = s.Name
	return &doc, nil
}
