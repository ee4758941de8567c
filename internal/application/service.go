package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports"
)

const (
	allProjectsKey = "all projects"
	allThreadsKey  = "all threads"
)

type Dependencies struct {
	Projects ports.ProjectRepository
	Threads  ports.ThreadRepository
	Messages ports.MessageRepository
	Backend  ports.AgentBackend
	Sessions ports.SessionStore
	Streams  ports.RunStreamOpener
	Clock    ports.Clock
	Logger   *zap.Logger
	// StatusTimeout bounds the run status check made after a stream error.
	StatusTimeout time.Duration
}

// Service is the client-side coordinator. Reads go through a per-family
// cache and deduplicator; mutations invalidate the entries they affect.
type Service struct {
	projects ports.ProjectRepository
	threads  ports.ThreadRepository
	messages ports.MessageRepository
	backend  ports.AgentBackend
	sessions ports.SessionStore
	clock    ports.Clock
	logger   *zap.Logger

	projectList *resource[[]domain.Project]
	projectByID *resource[domain.Project]
	threadList  *resource[[]domain.Thread]
	threadByID  *resource[domain.Thread]
	messageList *resource[[]domain.Message]
	runList     *resource[[]domain.AgentRun]
	runStatus   *Deduplicator[domain.AgentRun]

	streams *StreamMultiplexer
}

func NewService(deps Dependencies) *Service {
	clock := deps.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		projects:    deps.Projects,
		threads:     deps.Threads,
		messages:    deps.Messages,
		backend:     deps.Backend,
		sessions:    deps.Sessions,
		clock:       clock,
		logger:      logger,
		projectList: newResource[[]domain.Project](),
		projectByID: newResource[domain.Project](),
		threadList:  newResource[[]domain.Thread](),
		threadByID:  newResource[domain.Thread](),
		messageList: newResource[[]domain.Message](),
		runList:     newResource[[]domain.AgentRun](),
		runStatus:   NewDeduplicator[domain.AgentRun](),
	}
	s.streams = NewStreamMultiplexer(deps.Streams, s.runStatusLookup,
		WithStreamLogger(logger.Named("stream")),
		WithStreamClock(clock),
		WithStatusTimeout(deps.StatusTimeout),
	)

	return s
}

// Close ends every open agent run stream.
func (s *Service) Close() {
	s.streams.Shutdown()
}

func (s *Service) SetAccessToken(ctx context.Context, accessToken string) (domain.Session, error) {
	session, err := s.sessions.Store(ctx, accessToken)
	if err != nil {
		return domain.Session{}, fmt.Errorf("store access token: %w", err)
	}
	s.resetCaches()

	return session, nil
}

func (s *Service) RemoveAccessToken(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("remove access token: %w", err)
	}
	s.resetCaches()

	return nil
}

func (s *Service) GetAuthStatus(ctx context.Context) (AuthStatus, error) {
	session, err := s.sessions.Session(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return AuthStatus{Reason: err.Error()}, nil
		}
		return AuthStatus{}, fmt.Errorf("read session: %w", err)
	}

	return AuthStatus{
		Authenticated: true,
		UserID:        session.UserID,
		ExpiresAt:     session.ExpiresAt,
	}, nil
}

// resetCaches drops every cached response, and voids loads still in
// flight; they belong to the previous identity.
func (s *Service) resetCaches() {
	s.projectList.reset()
	s.projectByID.reset()
	s.threadList.reset()
	s.threadByID.reset()
	s.messageList.reset()
	s.runList.reset()
}
