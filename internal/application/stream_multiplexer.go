package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports"
)

const defaultStatusTimeout = 10 * time.Second

var errMultiplexerClosed = errors.New("stream multiplexer is shut down")

// StreamHandlers are the callbacks of one stream subscriber. Nil fields are skipped.
type StreamHandlers struct {
	OnData  func(frame domain.StreamFrame)
	OnError func(err error)
	OnClose func()
}

// StatusLookup answers whether a run is still executing.
type StatusLookup func(ctx context.Context, runID domain.AgentRunID) (domain.RunStatus, error)

// StreamUpdate is one item of a Watch channel: a frame or an error.
type StreamUpdate struct {
	Frame domain.StreamFrame
	Err   error
}

type StreamSessionInfo struct {
	RunID        domain.AgentRunID
	Subscribers  int
	Connected    bool
	LastActivity time.Time
}

type StreamMultiplexerOption func(*StreamMultiplexer)

func WithStreamLogger(logger *zap.Logger) StreamMultiplexerOption {
	return func(m *StreamMultiplexer) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithStreamClock(clock ports.Clock) StreamMultiplexerOption {
	return func(m *StreamMultiplexer) {
		if clock != nil {
			m.clock = clock
		}
	}
}

func WithStatusTimeout(timeout time.Duration) StreamMultiplexerOption {
	return func(m *StreamMultiplexer) {
		if timeout > 0 {
			m.statusTimeout = timeout
		}
	}
}

// StreamMultiplexer shares one physical stream per agent run among any
// number of subscribers. The connection lives while at least one
// subscriber is attached and the run has not reached a terminal state.
type StreamMultiplexer struct {
	opener        ports.RunStreamOpener
	lookup        StatusLookup
	logger        *zap.Logger
	clock         ports.Clock
	statusTimeout time.Duration

	mu       sync.Mutex
	sessions map[domain.AgentRunID]*streamSession
	closed   bool
}

type streamSubscriber struct {
	handlers StreamHandlers
	active   atomic.Bool
}

type streamSession struct {
	mux    *StreamMultiplexer
	runID  domain.AgentRunID
	ctx    context.Context
	cancel context.CancelFunc

	// guarded by mux.mu
	conn         ports.RunStream
	subscribers  []*streamSubscriber
	lastActivity time.Time
	closed       bool
}

var _ ports.RunStreamSink = (*streamSession)(nil)

func NewStreamMultiplexer(opener ports.RunStreamOpener, lookup StatusLookup, opts ...StreamMultiplexerOption) *StreamMultiplexer {
	m := &StreamMultiplexer{
		opener:        opener,
		lookup:        lookup,
		logger:        zap.NewNop(),
		clock:         ports.SystemClock{},
		statusTimeout: defaultStatusTimeout,
		sessions:      make(map[domain.AgentRunID]*streamSession),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Subscribe attaches handlers to the stream of runID, opening the
// connection if no subscriber is attached yet. The returned function
// detaches the handlers and is safe to call more than once.
func (m *StreamMultiplexer) Subscribe(runID domain.AgentRunID, handlers StreamHandlers) func() {
	sub := &streamSubscriber{handlers: handlers}
	sub.active.Store(true)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		sub.active.Store(false)
		m.deliver(runID, func() { callError(handlers, errMultiplexerClosed) })
		m.deliver(runID, func() { callClose(handlers) })
		return func() {}
	}

	session, ok := m.sessions[runID]
	if ok {
		session.subscribers = append(session.subscribers, sub)
		m.mu.Unlock()
		return func() { m.unsubscribe(session, sub) }
	}

	ctx, cancel := context.WithCancel(context.Background())
	session = &streamSession{
		mux:          m,
		runID:        runID,
		ctx:          ctx,
		cancel:       cancel,
		subscribers:  []*streamSubscriber{sub},
		lastActivity: m.clock.Now(),
	}
	m.sessions[runID] = session
	m.mu.Unlock()

	m.logger.Debug("opening agent run stream", zap.String("run_id", string(runID)))
	conn, err := m.opener.OpenRunStream(ctx, runID, session)
	if err != nil {
		m.logger.Warn("open agent run stream failed", zap.String("run_id", string(runID)), zap.Error(err))
		session.close(fmt.Errorf("open stream for agent run %s: %w", runID, err))
		return func() { m.unsubscribe(session, sub) }
	}

	m.mu.Lock()
	if session.closed {
		m.mu.Unlock()
		session.closeConn(conn)
		return func() { m.unsubscribe(session, sub) }
	}
	session.conn = conn
	m.mu.Unlock()

	return func() { m.unsubscribe(session, sub) }
}

// Watch is the channel form of Subscribe. The channel is closed when the
// stream ends or ctx is done; errors arrive as updates with Err set.
// Updates queue per watcher, so a slow reader never holds up the other
// subscribers of the run.
func (m *StreamMultiplexer) Watch(ctx context.Context, runID domain.AgentRunID) <-chan StreamUpdate {
	w := newWatcher()

	unsubscribe := m.Subscribe(runID, StreamHandlers{
		OnData:  func(frame domain.StreamFrame) { w.send(StreamUpdate{Frame: frame}) },
		OnError: func(err error) { w.send(StreamUpdate{Err: err}) },
		OnClose: w.finish,
	})

	go w.pump()
	go func() {
		select {
		case <-ctx.Done():
		case <-w.exited:
		}
		unsubscribe()
		w.stop()
	}()

	return w.out
}

// Session reports the state of the stream session of runID, if any.
func (m *StreamMultiplexer) Session(runID domain.AgentRunID) (StreamSessionInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[runID]
	if !ok {
		return StreamSessionInfo{}, false
	}

	return StreamSessionInfo{
		RunID:        runID,
		Subscribers:  len(session.subscribers),
		Connected:    session.conn != nil,
		LastActivity: session.lastActivity,
	}, true
}

func (m *StreamMultiplexer) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// Shutdown closes every session and rejects later subscriptions.
func (m *StreamMultiplexer) Shutdown() {
	m.mu.Lock()
	m.closed = true
	sessions := make([]*streamSession, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.mu.Unlock()

	for _, session := range sessions {
		session.close(nil)
	}
}

func (m *StreamMultiplexer) unsubscribe(session *streamSession, sub *streamSubscriber) {
	if !sub.active.CompareAndSwap(true, false) {
		return
	}

	m.mu.Lock()
	for i, candidate := range session.subscribers {
		if candidate == sub {
			session.subscribers = append(session.subscribers[:i], session.subscribers[i+1:]...)
			break
		}
	}
	if len(session.subscribers) > 0 || session.closed {
		m.mu.Unlock()
		return
	}
	session.closed = true
	if m.sessions[session.runID] == session {
		delete(m.sessions, session.runID)
	}
	conn := session.conn
	m.mu.Unlock()

	m.logger.Debug("last subscriber left agent run stream", zap.String("run_id", string(session.runID)))
	session.closeConn(conn)
}

func (m *StreamMultiplexer) deliver(runID domain.AgentRunID, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("stream subscriber panicked",
				zap.String("run_id", string(runID)),
				zap.Any("panic", r),
			)
		}
	}()

	fn()
}

func (s *streamSession) HandleFrame(data []byte) {
	frame, err := domain.ParseStreamFrame(data)
	if err == nil && frame.IsPing() {
		return
	}

	subscribers := s.touch()
	if subscribers == nil {
		return
	}
	for _, sub := range subscribers {
		if !sub.active.Load() {
			continue
		}
		s.mux.deliver(s.runID, func() { callData(sub.handlers, frame) })
	}

	if frame.Terminal() {
		s.mux.logger.Debug("agent run stream reached terminal status",
			zap.String("run_id", string(s.runID)),
			zap.String("status", string(frame.Status)),
		)
		s.close(nil)
	}
}

func (s *streamSession) HandleError(err error) {
	s.reconcile(err, false)
}

func (s *streamSession) HandleClosed(err error) {
	s.reconcile(err, true)
}

// reconcile decides what a connection failure means by asking the backend
// whether the run is still executing. final is set once the transport has
// stopped reconnecting.
func (s *streamSession) reconcile(cause error, final bool) {
	if s.isClosed() {
		return
	}

	logger := s.mux.logger.With(zap.String("run_id", string(s.runID)), zap.Bool("final", final))
	if cause != nil {
		logger.Debug("agent run stream error", zap.Error(cause))
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.mux.statusTimeout)
	status, err := s.mux.lookup(ctx, s.runID)
	cancel()

	switch {
	case errors.Is(err, domain.ErrRunNotFound):
		s.close(nil)
	case err != nil:
		lookupErr := fmt.Errorf("check status of agent run %s: %w", s.runID, err)
		logger.Warn("agent run status check failed", zap.Error(err))
		if final {
			s.close(errors.Join(domain.ErrStreamLost, lookupErr))
			return
		}
		s.broadcastError(lookupErr)
	case status != domain.RunStatusRunning:
		s.close(nil)
	case final:
		logger.Warn("agent run stream lost while run is active")
		s.close(domain.ErrStreamLost)
	}
}

func (s *streamSession) broadcastError(err error) {
	s.mux.mu.Lock()
	subscribers := append([]*streamSubscriber(nil), s.subscribers...)
	s.mux.mu.Unlock()

	for _, sub := range subscribers {
		if !sub.active.Load() {
			continue
		}
		s.mux.deliver(s.runID, func() { callError(sub.handlers, err) })
	}
}

// close runs the close sequence once: the session leaves the registry, each
// subscriber still attached gets cause (if any) and OnClose, and the
// connection is released.
func (s *streamSession) close(cause error) {
	m := s.mux

	m.mu.Lock()
	if s.closed {
		m.mu.Unlock()
		return
	}
	s.closed = true
	if m.sessions[s.runID] == s {
		delete(m.sessions, s.runID)
	}
	subscribers := s.subscribers
	s.subscribers = nil
	conn := s.conn
	m.mu.Unlock()

	for _, sub := range subscribers {
		if !sub.active.CompareAndSwap(true, false) {
			continue
		}
		if cause != nil {
			m.deliver(s.runID, func() { callError(sub.handlers, cause) })
		}
		m.deliver(s.runID, func() { callClose(sub.handlers) })
	}

	s.closeConn(conn)
}

func (s *streamSession) closeConn(conn ports.RunStream) {
	s.cancel()
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		s.mux.logger.Debug("close agent run stream", zap.String("run_id", string(s.runID)), zap.Error(err))
	}
}

func (s *streamSession) touch() []*streamSubscriber {
	m := s.mux
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if s.closed {
		return nil
	}
	s.lastActivity = now

	return append([]*streamSubscriber(nil), s.subscribers...)
}

func (s *streamSession) isClosed() bool {
	s.mux.mu.Lock()
	defer s.mux.mu.Unlock()

	return s.closed
}

func callData(h StreamHandlers, frame domain.StreamFrame) {
	if h.OnData != nil {
		h.OnData(frame)
	}
}

func callError(h StreamHandlers, err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}

func callClose(h StreamHandlers) {
	if h.OnClose != nil {
		h.OnClose()
	}
}

// watcher feeds a Watch channel from its own goroutine. send and finish
// never block, the queue is drained by pump.
type watcher struct {
	out     chan StreamUpdate
	wake    chan struct{}
	halt    chan struct{}
	exited  chan struct{}
	endOnce sync.Once

	mu    sync.Mutex
	queue []StreamUpdate
	ended bool
}

func newWatcher() *watcher {
	return &watcher{
		out:    make(chan StreamUpdate),
		wake:   make(chan struct{}, 1),
		halt:   make(chan struct{}),
		exited: make(chan struct{}),
	}
}

func (w *watcher) send(update StreamUpdate) {
	w.mu.Lock()
	if w.ended {
		w.mu.Unlock()
		return
	}
	w.queue = append(w.queue, update)
	w.mu.Unlock()

	w.signal()
}

// finish marks the end of the stream; queued updates are still delivered.
func (w *watcher) finish() {
	w.mu.Lock()
	w.ended = true
	w.mu.Unlock()

	w.signal()
}

// stop drops whatever is still queued and closes the channel.
func (w *watcher) stop() {
	w.endOnce.Do(func() { close(w.halt) })
}

func (w *watcher) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *watcher) pump() {
	defer close(w.exited)
	defer close(w.out)

	for {
		w.mu.Lock()
		batch := w.queue
		w.queue = nil
		ended := w.ended
		w.mu.Unlock()

		for _, update := range batch {
			select {
			case w.out <- update:
			case <-w.halt:
				return
			}
		}
		if len(batch) > 0 {
			continue
		}
		if ended {
			return
		}

		select {
		case <-w.wake:
		case <-w.halt:
			return
		}
	}
}
