package storage

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/hammamikhairi/deliciously/internal/domain"
)

// Record keys in the key-value store.
const (
	KeyRecipes   = "deliciously.recipes.v1"
	KeyFavorites = "deliciously.favorites.v1"
	KeyAdmin     = "deliciously.admin.v1"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Records reads and writes the three named records, serialized as JSON.
//
// Load methods return domain.ErrNotFound when the record is absent and an
// error wrapping domain.ErrCorruptRecord when it can't be decoded. Save
// errors are returned as-is.
type Records struct {
	kv domain.KeyValueStore
}

// NewRecords wraps a key-value store.
func NewRecords(kv domain.KeyValueStore) *Records {
	return &Records{kv: kv}
}

// LoadRecipes reads the recipe collection.
func (r *Records) LoadRecipes(ctx context.Context) ([]domain.Recipe, error) {
	var out []domain.Recipe
	if err := r.load(ctx, KeyRecipes, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%s: null collection: %w", KeyRecipes, domain.ErrCorruptRecord)
	}
	return out, nil
}

// SaveRecipes writes the recipe collection.
func (r *Records) SaveRecipes(ctx context.Context, recipes []domain.Recipe) error {
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	return r.save(ctx, KeyRecipes, recipes)
}

// LoadFavorites reads the favorite id list.
func (r *Records) LoadFavorites(ctx context.Context) ([]string, error) {
	var out []string
	if err := r.load(ctx, KeyFavorites, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// SaveFavorites writes the favorite id list.
func (r *Records) SaveFavorites(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return r.save(ctx, KeyFavorites, ids)
}

// LoadSession reads the admin session.
func (r *Records) LoadSession(ctx context.Context) (domain.AdminSession, error) {
	var out domain.AdminSession
	if err := r.load(ctx, KeyAdmin, &out); err != nil {
		return domain.LoggedOut, err
	}
	return out, nil
}

// SaveSession writes the admin session.
func (r *Records) SaveSession(ctx context.Context, s domain.AdminSession) error {
	return r.save(ctx, KeyAdmin, s)
}

// Reset deletes every record, so the next load falls back to seed data
// and a logged-out session.
func (r *Records) Reset(ctx context.Context) error {
	for _, key := range []string{KeyRecipes, KeyFavorites, KeyAdmin} {
		if err := r.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("deleting %s: %w", key, err)
		}
	}
	return nil
}

func (r *Records) load(ctx context.Context, key string, v any) error {
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s: %v: %w", key, err, domain.ErrCorruptRecord)
	}
	return nil
}

func (r *Records) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := r.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
