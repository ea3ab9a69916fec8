package httpsink

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/dispatch"
)

type ingestRequest struct {
	header http.Header
	rows   []map[string]interface{}
}

// ingestServer records every batch it receives, decoding the body
// according to Content-Encoding.
type ingestServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []ingestRequest
	status   int
}

func newIngestServer(t *testing.T) *ingestServer {
	t.Helper()
	srv := &ingestServer{status: http.StatusOK}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body io.Reader = r.Body
		switch r.Header.Get("Content-Encoding") {
		case "gzip":
			zr, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			body = zr
		case "zstd":
			zr, err := zstd.NewReader(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			defer zr.Close()
			body = zr
		}

		var rows []map[string]interface{}
		if err := json.NewDecoder(body).Decode(&rows); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		srv.mu.Lock()
		srv.requests = append(srv.requests, ingestRequest{header: r.Header.Clone(), rows: rows})
		status := srv.status
		srv.mu.Unlock()

		if status != http.StatusOK {
			http.Error(w, "ingest unavailable", status)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (s *ingestServer) received() []ingestRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ingestRequest(nil), s.requests...)
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNoURL)
}

func TestNew_UnknownCompression(t *testing.T) {
	_, err := New(Config{URL: "http://localhost", Compression: "brotli"})
	assert.Error(t, err)
}

func TestNew_GeneratesInstanceID(t *testing.T) {
	s, err := New(Config{URL: "http://localhost"})
	require.NoError(t, err)

	_, err = uuid.Parse(s.InstanceID())
	assert.NoError(t, err)
}

func TestSink_Headers(t *testing.T) {
	srv := newIngestServer(t)
	s, err := New(Config{URL: srv.URL, APIKey: "secret", Service: "checkout", InstanceID: "inst-1"})
	require.NoError(t, err)

	require.NoError(t, s.Write(core.NewRecord(core.InfoLevel, "app", "hello")))
	require.NoError(t, s.Flush())

	reqs := srv.received()
	require.Len(t, reqs, 1)
	h := reqs[0].header
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, "Bearer secret", h.Get("Authorization"))
	assert.Equal(t, "checkout", h.Get(ServiceHeader))
	assert.Equal(t, "inst-1", h.Get(InstanceIDHeader))
	assert.Empty(t, h.Get("Content-Encoding"))

	require.Len(t, reqs[0].rows, 1)
	assert.Equal(t, "hello", reqs[0].rows[0]["message"])
	assert.Equal(t, "app", reqs[0].rows[0]["target"])
}

func TestSink_Compression(t *testing.T) {
	for _, c := range []Compression{Gzip, Zstd} {
		t.Run(string(c), func(t *testing.T) {
			srv := newIngestServer(t)
			s, err := New(Config{URL: srv.URL, Compression: c, BatchSize: 2})
			require.NoError(t, err)
			defer s.Close()

			for _, msg := range []string{"a", "b", "c", "d"} {
				require.NoError(t, s.Write(core.NewRecord(core.InfoLevel, "", msg)))
			}

			reqs := srv.received()
			require.Len(t, reqs, 2)
			for _, r := range reqs {
				assert.Equal(t, string(c), r.header.Get("Content-Encoding"))
				assert.Len(t, r.rows, 2)
			}
			assert.Equal(t, "c", reqs[1].rows[0]["message"])
		})
	}
}

func TestSink_StatusError(t *testing.T) {
	srv := newIngestServer(t)
	srv.mu.Lock()
	srv.status = http.StatusServiceUnavailable
	srv.mu.Unlock()

	s, err := New(Config{URL: srv.URL})
	require.NoError(t, err)
	require.NoError(t, s.Write(core.NewRecord(core.ErrorLevel, "", "rejected")))

	err = s.Flush()
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, 1, statusErr.Records)
	assert.Equal(t, "ingest unavailable", statusErr.Body)

	// The rejected batch is not resent.
	require.NoError(t, s.Flush())
	assert.Len(t, srv.received(), 1)
}

func TestSink_ThroughDispatcher(t *testing.T) {
	srv := newIngestServer(t)
	s, err := New(Config{URL: srv.URL, Compression: Zstd, BatchSize: 50})
	require.NoError(t, err)

	d := dispatch.New(s, dispatch.Config{Level: core.InfoLevel})
	for i := 0; i < 120; i++ {
		d.Emit(core.NewRecord(core.InfoLevel, "worker", "tick",
			core.Field{Key: "i", Type: core.IntType, Int64: int64(i)}))
	}
	require.NoError(t, d.Close())

	var rows []map[string]interface{}
	for _, r := range srv.received() {
		rows = append(rows, r.rows...)
	}
	require.Len(t, rows, 120)
	for i, row := range rows {
		assert.Equal(t, float64(i), row["i"], "records must arrive in order")
	}
}
