// Package schema provides serialization types for mounting plans.
//
// This package defines the canonical wire format for rafterplan's output,
// used for JSON files, API responses, caching, and plan persistence.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Document]: Serialization type (this package)
//   - pkg/plan.Result, pkg/plan.RowResult: Internal planning results
//
// Use [FromResult]/[FromRowResult] to convert planning results into
// documents; renderers and stores consume documents directly.
//
// # Core Types
//
//   - [Document]: A complete plan with config, panels, hardware, joints
//   - [Placement]: Per-panel mounts in panel mode
//   - [Row]: Shared row-strip mounts in row mode
//   - [Mount], [Joint], [Panel]: Hardware and geometry records
//
// # Document Serialization
//
// Documents use a flat JSON format keyed by panel index:
//
//	{
//	  "mode": "panel",
//	  "config": {"spacing": 16, "first_rafter": 5, ...},
//	  "panels": [{"x": 0, "y": 0, "width": 44.7, "height": 71.1}],
//	  "placements": [{"panel": 0, "mounts": [{"x": 5, "y": 35.55, "rafter": 0}]}],
//	  "joints": []
//	}
//
// Common operations:
//
//	doc, _ := schema.ReadFile("plan.json")     // File → Document
//	schema.WriteFile(doc, "plan.json")         // Document → File
//	data, _ := schema.Marshal(doc)             // Document → []byte
//	doc, _ = schema.Unmarshal(data)            // []byte → Document
//
// Decoding validates structure (mode, index ranges, joint kinds) but does
// not re-run planning rules; a decoded document is trusted to be the
// output of a planner.
//
// # Storage
//
// All types carry bson tags alongside json tags so documents persist to
// MongoDB without a separate mapping layer.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package schema
