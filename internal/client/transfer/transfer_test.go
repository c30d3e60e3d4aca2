package transfer

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressReader_ReportsAscendingWholePercents(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 1000)
	var got []int
	pr := &progressReader{
		r:      bytes.NewReader(payload),
		total:  int64(len(payload)),
		report: func(p int) { got = append(got, p) },
	}

	buf := make([]byte, 100)
	for {
		if _, err := pr.Read(buf); err == io.EOF {
			break
		}
	}

	assert.Equal(t, []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, got)
}

func TestProgressReader_NoEventsForEmptyPayload(t *testing.T) {
	var got []int
	pr := &progressReader{
		r:      bytes.NewReader(nil),
		total:  0,
		report: func(p int) { got = append(got, p) },
	}

	_, err := pr.Read(make([]byte, 16))
	assert.Equal(t, io.EOF, err)
	assert.Empty(t, got)
}

func TestRun_Success(t *testing.T) {
	payload := []byte("file contents")
	var gotBody []byte
	var gotMethod, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var mu sync.Mutex
	var events []int
	tr := New(Destination{URL: srv.URL}, payload, func(p int) {
		mu.Lock()
		events = append(events, p)
		mu.Unlock()
	})

	require.NoError(t, tr.Run(context.Background()))

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "application/octet-stream", gotContentType)
	assert.Equal(t, payload, gotBody)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, events)
	assert.Equal(t, 100, events[len(events)-1])
	assert.IsIncreasing(t, events)
}

func TestRun_UsesIssuedMethodAndHeaders(t *testing.T) {
	var gotMethod, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("X-Upload-Token")
	}))
	defer srv.Close()

	dest := Destination{
		Method: http.MethodPost,
		URL:    srv.URL,
		Header: http.Header{"X-Upload-Token": []string{"tok"}},
	}
	require.NoError(t, New(dest, []byte("x"), nil).Run(context.Background()))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "tok", gotAuth)
}

func TestRun_EmptyPayloadStillCompletes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var events []int
	tr := New(Destination{URL: srv.URL}, nil, func(p int) { events = append(events, p) })

	require.NoError(t, tr.Run(context.Background()))
	assert.Empty(t, events)
}

func TestRun_NonSuccessStatusIsGenericFailure(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusForbidden, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		err := New(Destination{URL: srv.URL}, []byte("x"), nil).Run(context.Background())
		assert.ErrorIs(t, err, ErrTransferFailed, "status %d", status)
		srv.Close()
	}
}

func TestRun_CancellationAbortsInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(Destination{URL: srv.URL}, bytes.Repeat([]byte{1}, 1<<20), nil).Run(ctx)
	}()

	<-started
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled transfer did not return")
	}
}

func TestRun_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(Destination{URL: "http://127.0.0.1:0"}, []byte("x"), nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
