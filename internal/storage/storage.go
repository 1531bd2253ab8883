// Package storage provides a small typed key-value layer for application
// settings. Reads never fail: a missing key, a backend error, or an
// undecodable value all fall back to the caller's default, with the
// failure logged.
package storage

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// KV is the minimal backend contract. ErrNotFound-style misses are
// reported as ok=false, not as errors.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Adapter wraps a KV backend with JSON encoding and default-on-failure
// read semantics.
type Adapter struct {
	kv  KV
	log zerolog.Logger
}

func NewAdapter(kv KV, log zerolog.Logger) *Adapter {
	return &Adapter{kv: kv, log: log}
}

// Get decodes the stored value for key into dest and returns true.
// On a miss, a backend error, or a decode failure it leaves dest's
// pre-set default untouched and returns false.
func (a *Adapter) Get(ctx context.Context, key string, dest any) bool {
	raw, ok, err := a.kv.Get(ctx, key)
	if err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("storage read failed, using default")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("storage value undecodable, using default")
		return false
	}
	return true
}

// Set encodes value as JSON and stores it. Returns false on failure.
func (a *Adapter) Set(ctx context.Context, key string, value any) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("storage value unencodable")
		return false
	}
	if err := a.kv.Set(ctx, key, string(raw)); err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("storage write failed")
		return false
	}
	return true
}

// Remove deletes key. Returns false on failure.
func (a *Adapter) Remove(ctx context.Context, key string) bool {
	if err := a.kv.Del(ctx, key); err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("storage delete failed")
		return false
	}
	return true
}

// Has reports whether key exists. Backend errors read as absent.
func (a *Adapter) Has(ctx context.Context, key string) bool {
	ok, err := a.kv.Exists(ctx, key)
	if err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("storage existence check failed")
		return false
	}
	return ok
}
