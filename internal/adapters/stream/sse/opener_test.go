package sse

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/cenkalti/backoff.v1"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports/mocks"
)

const waitFor = 5 * time.Second

type recordingSink struct {
	mu     sync.Mutex
	frames []string
	errs   []error
	closed chan error
}

func newRecordingSink() *recordingSink {
	return &recordingSink{closed: make(chan error, 1)}
}

func (s *recordingSink) HandleFrame(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, string(data))
}

func (s *recordingSink) HandleError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func (s *recordingSink) HandleClosed(err error) {
	s.closed <- err
}

func (s *recordingSink) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.frames...)
}

func newTestOpener(t *testing.T, serverURL string, opts ...Option) *Opener {
	t.Helper()

	sessions := mocks.NewMockSessionProvider(t)
	sessions.EXPECT().Session(mock.Anything).Return(domain.Session{AccessToken: "tok en", UserID: "user-1"}, nil)

	opts = append([]Option{WithLogger(zaptest.NewLogger(t)), WithReconnectMaxElapsed(0)}, opts...)
	opener, err := NewOpener(serverURL, sessions, opts...)
	require.NoError(t, err)

	return opener
}

func TestOpenerDeliversFramesAndReportsEndOfStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/agent-run/run-1/stream", r.URL.Path)
		assert.Equal(t, "tok en", r.URL.Query().Get("token"))
		assert.Equal(t, "Bearer tok en", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, payload := range []string{
			`{"type":"assistant","content":"a"}`,
			`{"type":"ping"}`,
			`{"type":"status","status":"completed"}`,
		} {
			_, _ = fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}))
	defer server.Close()

	sink := newRecordingSink()
	stream, err := newTestOpener(t, server.URL).OpenRunStream(context.Background(), "run-1", sink)
	require.NoError(t, err)
	defer stream.Close()

	select {
	case err := <-sink.closed:
		assert.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("stream did not end")
	}

	assert.Equal(t, []string{
		`{"type":"assistant","content":"a"}`,
		`{"type":"ping"}`,
		`{"type":"status","status":"completed"}`,
	}, sink.snapshot())
}

func TestOpenerReportsFinalFailureWithoutReconnect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sink := newRecordingSink()
	stream, err := newTestOpener(t, server.URL).OpenRunStream(context.Background(), "run-1", sink)
	require.NoError(t, err)
	defer stream.Close()

	select {
	case err := <-sink.closed:
		assert.Error(t, err)
	case <-time.After(waitFor):
		t.Fatal("stream did not report failure")
	}
	assert.Empty(t, sink.snapshot())
}

func TestOpenerCloseStopsSubscriptionSilently(t *testing.T) {
	connected := make(chan struct{})
	disconnected := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.(http.Flusher).Flush()
		close(connected)
		<-r.Context().Done()
		close(disconnected)
	}))
	defer server.Close()

	sink := newRecordingSink()
	stream, err := newTestOpener(t, server.URL).OpenRunStream(context.Background(), "run-1", sink)
	require.NoError(t, err)

	select {
	case <-connected:
	case <-time.After(waitFor):
		t.Fatal("stream did not connect")
	}
	require.NoError(t, stream.Close())
	require.NoError(t, stream.Close())

	select {
	case <-disconnected:
	case <-time.After(waitFor):
		t.Fatal("server connection was not released")
	}
	<-stream.(*runStream).done

	select {
	case err := <-sink.closed:
		t.Fatalf("unexpected close notification: %v", err)
	default:
	}
}

func TestOpenerMissingSession(t *testing.T) {
	sessions := mocks.NewMockSessionProvider(t)
	sessions.EXPECT().Session(mock.Anything).Return(domain.Session{}, domain.ErrUnauthenticated)

	opener, err := NewOpener("http://127.0.0.1:1", sessions)
	require.NoError(t, err)

	_, err = opener.OpenRunStream(context.Background(), "run-1", newRecordingSink())
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestReconnectPolicy(t *testing.T) {
	sessions := mocks.NewMockSessionProvider(t)

	never, err := NewOpener("http://localhost", sessions, WithReconnectMaxElapsed(0))
	require.NoError(t, err)
	assert.Equal(t, backoff.Stop, never.reconnectPolicy().NextBackOff())

	bounded, err := NewOpener("http://localhost", sessions, WithReconnectMaxElapsed(30*time.Second))
	require.NoError(t, err)
	assert.NotEqual(t, backoff.Stop, bounded.reconnectPolicy().NextBackOff())
}
