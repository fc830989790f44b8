// Package store provides persistence for computed plan documents.
//
// This package defines the Store interface with implementations for
// different backends:
//   - memory: in-memory storage for development and tests
//   - mongo: MongoDB-backed storage for API deployments
//
// Every stored plan is a Record: the full plan document plus identity
// (a UUID), the site name, creation time, and denormalized counts so
// listings don't have to load full documents.
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
// Save and fetch plans:
//
//	rec := store.NewRecord("north-roof", doc)
//	if err := st.Put(ctx, rec); err != nil {
//	    return err
//	}
//
//	rec, err := st.Get(ctx, id)
//	if errors.Is(err, store.ErrNotFound) {
//	    // No such plan
//	}
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rafterlab/rafterplan/pkg/schema"
)

// ErrNotFound is returned when a requested plan record does not exist.
var ErrNotFound = errors.New("not found")

// Record is a stored plan document with identity and listing metadata.
// Panels, Mounts and Joints are denormalized from the document at save
// time so List can project them without loading full documents.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	Site      string           `json:"site" bson:"site"`
	Mode      string           `json:"mode" bson:"mode"`
	Panels    int              `json:"panels" bson:"panels"`
	Mounts    int              `json:"mounts" bson:"mounts"`
	Joints    int              `json:"joints" bson:"joints"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	Document  *schema.Document `json:"document,omitempty" bson:"document,omitempty"`
}

// NewRecord creates a record for a plan document with a fresh UUID.
func NewRecord(site string, doc *schema.Document) *Record {
	rec := &Record{
		ID:        uuid.NewString(),
		Site:      site,
		CreatedAt: time.Now().UTC(),
		Document:  doc,
	}
	if doc != nil {
		rec.Mode = doc.Mode
		rec.Panels = len(doc.Panels)
		rec.Mounts = doc.MountCount()
		rec.Joints = len(doc.Joints)
	}
	return rec
}

// validate checks a record before it is written.
func (r *Record) validate() error {
	if r == nil {
		return fmt.Errorf("nil record")
	}
	if r.ID == "" {
		return fmt.Errorf("record has no ID")
	}
	if r.Document == nil {
		return fmt.Errorf("record %s has no document", r.ID)
	}
	return nil
}

// Store is the interface for plan persistence backends.
// All methods must be safe for concurrent use.
type Store interface {
	// Put saves a record, replacing any record with the same ID.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID, including its document.
	// Returns ErrNotFound if no such record exists.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records newest-first with Document omitted.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record.
	// Returns ErrNotFound if no such record exists.
	Delete(ctx context.Context, id string) error

	// Close releases resources held by the backend.
	Close(ctx context.Context) error
}
