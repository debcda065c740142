// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mtreilly/arc-reader/internal/kv"
)

const keyPrefix = "arc-reader:"

// KVStore implements DocumentStore on top of a kv.KV. Values are JSON.
//
// Failures of the backing store are absorbed: reads degrade to absent/empty
// results and writes to no-ops, logged at Warn. The reader stays usable with
// in-memory state when persistence is gone; the next successful save carries
// the authoritative in-memory state anyway.
type KVStore struct {
	kv     kv.KV
	logger *zap.Logger
}

// NewKVStore creates a document store backed by the given KV.
func NewKVStore(store kv.KV, logger *zap.Logger) *KVStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVStore{kv: store, logger: logger}
}

func docKey(id string) string {
	return keyPrefix + "doc:" + id
}

func sessionKey(id string) string {
	return keyPrefix + "session:" + id
}

func sessionDocKey(documentID, sessionID string) string {
	return fmt.Sprintf("%sindex:sessions:%s:%s", keyPrefix, documentID, sessionID)
}

func (s *KVStore) PutDocument(doc *Document) error {
	if doc.ID == "" {
		return errors.New("document has no id")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	ctx := context.Background()
	if err := s.kv.Set(ctx, docKey(doc.ID), data); err != nil {
		s.degraded("put document", err)
	}
	return nil
}

func (s *KVStore) GetDocument(id string) (*Document, error) {
	ctx := context.Background()
	data, err := s.kv.Get(ctx, docKey(id))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.degraded("get document", err)
		}
		return nil, nil
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &d, nil
}

func (s *KVStore) ListDocuments(opts *ListOptions) ([]*Document, error) {
	ctx := context.Background()
	keys, err := s.kv.Keys(ctx, docKey(""))
	if err != nil {
		s.degraded("list documents", err)
		return nil, nil
	}

	var docs []*Document
	for _, k := range keys {
		doc, err := s.GetDocument(strings.TrimPrefix(k, docKey("")))
		if err != nil || doc == nil {
			continue
		}
		if opts != nil {
			if opts.Source != "" && doc.Source != opts.Source {
				continue
			}
			if opts.Search != "" {
				q := strings.ToLower(opts.Search)
				if !strings.Contains(strings.ToLower(doc.Title), q) &&
					!strings.Contains(strings.ToLower(doc.Text), q) {
					continue
				}
			}
		}
		docs = append(docs, doc)
	}

	// Most recently touched first, matching the library view.
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UpdatedAt.After(docs[j].UpdatedAt)
	})

	if opts != nil && opts.Limit > 0 && len(docs) > opts.Limit {
		docs = docs[:opts.Limit]
	}
	return docs, nil
}

func (s *KVStore) DeleteDocument(id string) error {
	ctx := context.Background()
	if err := s.kv.Delete(ctx, docKey(id)); err != nil {
		s.degraded("delete document", err)
		return nil
	}
	// Session records for the document go with it.
	keys, err := s.kv.Keys(ctx, keyPrefix+"index:sessions:"+id+":")
	if err != nil {
		s.degraded("delete document sessions", err)
		return nil
	}
	for _, k := range keys {
		sessionID := k[strings.LastIndex(k, ":")+1:]
		_ = s.kv.Delete(ctx, sessionKey(sessionID))
		_ = s.kv.Delete(ctx, k)
	}
	return nil
}

func (s *KVStore) Clear() error {
	ctx := context.Background()
	keys, err := s.kv.Keys(ctx, keyPrefix)
	if err != nil {
		s.degraded("clear", err)
		return nil
	}
	for _, k := range keys {
		if err := s.kv.Delete(ctx, k); err != nil {
			s.degraded("clear", err)
			return nil
		}
	}
	return nil
}

func (s *KVStore) AddSessionRecord(rec *SessionRecord) error {
	if rec.ID == "" || rec.DocumentID == "" {
		return errors.New("session record needs id and document id")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ctx := context.Background()
	if err := s.kv.Set(ctx, sessionKey(rec.ID), data); err != nil {
		s.degraded("put session", err)
		return nil
	}
	// Per-document index entry; value is unused, the key encodes the link.
	if err := s.kv.Set(ctx, sessionDocKey(rec.DocumentID, rec.ID), []byte(rec.ID)); err != nil {
		s.degraded("index session", err)
	}
	return nil
}

func (s *KVStore) ListSessionRecords(documentID string) ([]*SessionRecord, error) {
	ctx := context.Background()
	keys, err := s.kv.Keys(ctx, keyPrefix+"index:sessions:"+documentID+":")
	if err != nil {
		s.degraded("list sessions", err)
		return nil, nil
	}

	var records []*SessionRecord
	for _, k := range keys {
		sessionID := k[strings.LastIndex(k, ":")+1:]
		data, err := s.kv.Get(ctx, sessionKey(sessionID))
		if err != nil {
			continue
		}
		var rec SessionRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		records = append(records, &rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartAt.After(records[j].StartAt)
	})
	return records, nil
}

func (s *KVStore) degraded(op string, err error) {
	s.logger.Warn("document store degraded to no-op",
		zap.String("op", op),
		zap.Error(err))
}
