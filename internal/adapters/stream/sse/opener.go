package sse

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/r3labs/sse/v2"
	"go.uber.org/zap"
	"gopkg.in/cenkalti/backoff.v1"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports"
)

const defaultReconnectMaxElapsed = time.Minute

// Opener connects to the Server-Sent Events endpoint of agent runs. The
// underlying client reconnects with exponential backoff until
// ReconnectMaxElapsed is spent, reporting each failure to the sink.
type Opener struct {
	baseURL    string
	sessions   ports.SessionProvider
	httpClient *http.Client
	logger     *zap.Logger

	reconnectMaxElapsed time.Duration
}

var _ ports.RunStreamOpener = (*Opener)(nil)

type Option func(*Opener)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *Opener) {
		if httpClient != nil {
			o.httpClient = httpClient
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Opener) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithReconnectMaxElapsed bounds reconnection attempts. Zero disables reconnection.
func WithReconnectMaxElapsed(maxElapsed time.Duration) Option {
	return func(o *Opener) {
		if maxElapsed >= 0 {
			o.reconnectMaxElapsed = maxElapsed
		}
	}
}

func NewOpener(baseURL string, sessions ports.SessionProvider, opts ...Option) (*Opener, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if sessions == nil {
		return nil, errors.New("session provider is nil")
	}

	o := &Opener{
		baseURL:             trimmed,
		sessions:            sessions,
		httpClient:          &http.Client{},
		logger:              zap.NewNop(),
		reconnectMaxElapsed: defaultReconnectMaxElapsed,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

func (o *Opener) OpenRunStream(ctx context.Context, runID domain.AgentRunID, sink ports.RunStreamSink) (ports.RunStream, error) {
	session, err := o.sessions.Session(ctx)
	if err != nil {
		return nil, err
	}

	streamURL := fmt.Sprintf("%s/agent-run/%s/stream?token=%s",
		o.baseURL, url.PathEscape(string(runID)), url.QueryEscape(session.AccessToken))

	streamCtx, cancel := context.WithCancel(ctx)
	client := sse.NewClient(streamURL)
	client.Connection = o.httpClient
	client.Headers = map[string]string{
		"Authorization": "Bearer " + session.AccessToken,
		"Accept":        "text/event-stream",
	}
	client.ReconnectStrategy = backoff.WithContext(o.reconnectPolicy(), streamCtx)
	client.ReconnectNotify = func(err error, next time.Duration) {
		o.logger.Debug("agent run stream reconnecting",
			zap.String("run_id", string(runID)),
			zap.Duration("next_attempt", next),
			zap.Error(err),
		)
		sink.HandleError(err)
	}

	stream := &runStream{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(stream.done)

		err := client.SubscribeRawWithContext(streamCtx, func(event *sse.Event) {
			if len(event.Data) == 0 {
				return
			}
			sink.HandleFrame(event.Data)
		})
		if streamCtx.Err() != nil {
			return
		}
		o.logger.Debug("agent run stream ended", zap.String("run_id", string(runID)), zap.Error(err))
		sink.HandleClosed(err)
	}()

	return stream, nil
}

func (o *Opener) reconnectPolicy() backoff.BackOff {
	if o.reconnectMaxElapsed == 0 {
		return &backoff.StopBackOff{}
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = o.reconnectMaxElapsed

	return policy
}

type runStream struct {
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// Close stops the subscription without waiting for it to drain; it may be
// called from inside a frame handler.
func (s *runStream) Close() error {
	s.closeOnce.Do(s.cancel)
	return nil
}
