package blob

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-memory Store for tests.
type Memory struct {
	mu   sync.RWMutex
	objs map[string]memObj
}

type memObj struct {
	data []byte
	info Info
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{objs: make(map[string]memObj)}
}

// Put stores the full contents of r at key.
func (m *Memory) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	if !validKey(key) {
		return Info{}, ErrInvalidKey
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Info{}, err
	}
	info := Info{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  opts.ContentType,
		LastModified: time.Now().UTC(),
		Location:     "memory://" + key,
	}

	m.mu.Lock()
	m.objs[key] = memObj{data: data, info: info}
	m.mu.Unlock()
	return info, nil
}

// Get returns the blob at key.
func (m *Memory) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.objs[key]
	if !ok {
		return Info{}, nil, ErrNotExist
	}
	return o.info, io.NopCloser(bytes.NewReader(o.data)), nil
}

// List returns blobs under prefix ordered by key.
func (m *Memory) List(ctx context.Context, prefix string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Info
	for k, o := range m.objs {
		if strings.HasPrefix(k, prefix) {
			out = append(out, o.info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Driver returns DriverMemory.
func (m *Memory) Driver() Driver { return DriverMemory }
