// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

// DocumentStore is the interface for persisting reader documents and session
// history. All operations are idempotent; lookups of absent records return
// (nil, nil). Implementations must keep playback usable when the backing
// medium fails: degrade to empty results rather than propagating errors.
type DocumentStore interface {
	// Document operations. PutDocument is an upsert keyed by Document.ID.
	PutDocument(*Document) error
	GetDocument(id string) (*Document, error)
	ListDocuments(opts *ListOptions) ([]*Document, error)
	DeleteDocument(id string) error
	Clear() error

	// Session history
	AddSessionRecord(*SessionRecord) error
	ListSessionRecords(documentID string) ([]*SessionRecord, error)
}
