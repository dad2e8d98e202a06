package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/logger"
)

func openAll(t *testing.T) map[Driver]domain.KeyValueStore {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	dir := t.TempDir()

	out := map[Driver]domain.KeyValueStore{}
	for _, tc := range []struct {
		driver Driver
		path   string
	}{
		{DriverMemory, ""},
		{DriverBolt, filepath.Join(dir, "data", "catalog.bolt")},
		{DriverSQLite, filepath.Join(dir, "data", "catalog.sqlite")},
	} {
		kv, err := Open(tc.driver, tc.path, log)
		if err != nil {
			t.Fatalf("open %s: %v", tc.driver, err)
		}
		t.Cleanup(func() { _ = kv.Close() })
		out[tc.driver] = kv
	}
	return out
}

func TestKeyValueCRUD(t *testing.T) {
	ctx := context.Background()

	for driver, kv := range openAll(t) {
		t.Run(string(driver), func(t *testing.T) {
			// Missing key.
			if _, err := kv.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			// Set + Get.
			if err := kv.Set(ctx, "k", []byte("v1")); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, err := kv.Get(ctx, "k")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != "v1" {
				t.Fatalf("expected v1, got %q", got)
			}

			// Overwrite.
			if err := kv.Set(ctx, "k", []byte("v2")); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, _ = kv.Get(ctx, "k")
			if string(got) != "v2" {
				t.Fatalf("expected v2 after overwrite, got %q", got)
			}

			// Delete, twice.
			if err := kv.Delete(ctx, "k"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := kv.Delete(ctx, "k"); err != nil {
				t.Fatalf("second delete: %v", err)
			}
			if _, err := kv.Get(ctx, "k"); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestMemoryKVCopiesValues(t *testing.T) {
	kv := NewMemoryKV(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	buf := []byte("abc")
	if err := kv.Set(ctx, "k", buf); err != nil {
		t.Fatalf("set: %v", err)
	}
	buf[0] = 'z'

	got, _ := kv.Get(ctx, "k")
	got[1] = 'z'

	again, _ := kv.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value was aliased: %q", again)
	}
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	path := filepath.Join(t.TempDir(), "catalog.bolt")
	ctx := context.Background()

	kv, err := OpenBolt(path, log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := kv.Set(ctx, KeyFavorites, []byte(`["r1"]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	kv, err = OpenBolt(path, log)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv.Close()

	got, err := kv.Get(ctx, KeyFavorites)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if string(got) != `["r1"]` {
		t.Fatalf("unexpected payload %q", got)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("etcd", "", logger.New(logger.LevelOff, nil)); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
