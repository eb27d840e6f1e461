// Package db persists application state as JSON values under fixed keys.
//
// Every backend implements Store. Values are opaque JSON bytes; typed access
// goes through LoadJSON and SaveJSON.
package db

import (
	"context"
	"encoding/json"
	"fmt"
)

// Persisted state keys
const (
	KeyResumeData      = "resumeData"
	KeyResumeVersions  = "resumeVersions"
	KeyCoverLetters    = "coverLetters"
	KeyApplications    = "applications"
	KeyAPIKey          = "aiApiKey"
	KeyCurrentTemplate = "currentTemplate"
)

// Keys lists every key the application writes.
func Keys() []string {
	return []string{KeyResumeData, KeyResumeVersions, KeyCoverLetters, KeyApplications, KeyAPIKey, KeyCurrentTemplate}
}

// Store is a key to JSON value store.
// Get returns (nil, nil) when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// StoreError represents a failed backend operation
type StoreError struct {
	Op    string
	Key   string
	Cause error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// LoadJSON decodes the value under key into dst. It reports false, leaving
// dst untouched, when the key is absent.
func LoadJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Put(ctx, key, data)
}
