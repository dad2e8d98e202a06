package blob

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 answers the handful of S3 calls the store makes without network
// access. Bodies are kept raw; tests only compare what they seed directly.
type fakeS3 struct {
	mu    sync.Mutex
	calls []string
	objs  map[string][]byte
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, req.Method+" "+req.URL.Path)
	key := strings.TrimPrefix(req.URL.Path, "/exports/")

	respond := func(code int, body string, hdr http.Header) *http.Response {
		if hdr == nil {
			hdr = http.Header{}
		}
		return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(body)), Header: hdr, Request: req}
	}

	switch {
	case req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2":
		var b strings.Builder
		b.WriteString(`<?xml version="1.0"?><ListBucketResult><IsTruncated>false</IsTruncated>`)
		for k := range f.objs {
			b.WriteString("<Contents><Key>" + k + "</Key><Size>1</Size><LastModified>2024-01-01T00:00:00Z</LastModified></Contents>")
		}
		b.WriteString("</ListBucketResult>")
		return respond(200, b.String(), http.Header{"Content-Type": {"application/xml"}}), nil
	case req.Method == http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		f.objs[key] = body
		return respond(200, "", http.Header{"ETag": {`"etag"`}}), nil
	case req.Method == http.MethodGet:
		data, ok := f.objs[key]
		if !ok {
			return respond(404, `<?xml version="1.0"?><Error><Code>NoSuchKey</Code></Error>`, http.Header{"Content-Type": {"application/xml"}}), nil
		}
		return respond(200, string(data), http.Header{"Content-Type": {"application/pdf"}}), nil
	}
	return respond(501, "", nil), nil
}

func newFakeS3(t *testing.T) (*S3, *fakeS3) {
	t.Helper()
	rt := &fakeS3{objs: map[string][]byte{}}
	s, err := NewS3(context.Background(), S3Config{
		Bucket:          "exports",
		Endpoint:        "https://s3.test.local",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
		HTTPClient:      &http.Client{Transport: rt},
	})
	require.NoError(t, err)
	return s, rt
}

func TestS3Put(t *testing.T) {
	s, rt := newFakeS3(t)
	info, err := s.Put(context.Background(), "favorites.pdf", bytes.NewReader([]byte("%PDF")), PutOptions{ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.Equal(t, "s3://exports/favorites.pdf", info.Location)
	assert.Contains(t, rt.calls, "PUT /exports/favorites.pdf")
}

func TestS3Get(t *testing.T) {
	s, rt := newFakeS3(t)
	rt.objs["r1.pdf"] = []byte("%PDF-1.3")

	_, rc, err := s.Get(context.Background(), "r1.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "%PDF-1.3", string(data))

	_, _, err = s.Get(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestS3List(t *testing.T) {
	s, rt := newFakeS3(t)
	rt.objs["b.pdf"] = []byte("b")
	rt.objs["a.pdf"] = []byte("a")

	infos, err := s.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a.pdf", infos[0].Key)
}
