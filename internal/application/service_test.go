package application

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports/mocks"
)

type serviceFixture struct {
	service  *Service
	projects *mocks.MockProjectRepository
	threads  *mocks.MockThreadRepository
	messages *mocks.MockMessageRepository
	backend  *mocks.MockAgentBackend
	sessions *mocks.MockSessionStore
	clock    *mocks.MockClock
	opener   *fakeStreamOpener
}

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()

	f := serviceFixture{
		projects: mocks.NewMockProjectRepository(t),
		threads:  mocks.NewMockThreadRepository(t),
		messages: mocks.NewMockMessageRepository(t),
		backend:  mocks.NewMockAgentBackend(t),
		sessions: mocks.NewMockSessionStore(t),
		clock:    mocks.NewMockClock(t),
		opener:   newFakeStreamOpener(),
	}
	f.clock.EXPECT().Now().Return(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)).Maybe()
	f.service = NewService(Dependencies{
		Projects: f.projects,
		Threads:  f.threads,
		Messages: f.messages,
		Backend:  f.backend,
		Sessions: f.sessions,
		Streams:  f.opener,
		Clock:    f.clock,
		Logger:   zaptest.NewLogger(t),
	})
	t.Cleanup(f.service.Close)

	return f
}

func TestServiceGetProjectsDeduplicatesConcurrentCalls(t *testing.T) {
	f := newServiceFixture(t)
	release := make(chan struct{})
	projects := []domain.Project{{ID: "p1", Name: "alpha"}}

	f.projects.EXPECT().List(mockAnyContext()).RunAndReturn(func(context.Context) ([]domain.Project, error) {
		<-release
		return projects, nil
	}).Once()

	const callers = 5
	results := make([][]domain.Project, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := f.service.GetProjects(context.Background())
			assert.NoError(t, err)
			results[i] = got
		}(i)
	}

	require.Eventually(t, func() bool {
		return f.service.projectList.dedup.waiters(allProjectsKey) == callers
	}, waitFor, time.Millisecond)
	close(release)
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, projects, got)
	}

	cached, err := f.service.GetProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, projects, cached)
}

func TestServiceGetProjectsPermissionDeniedDegradesToEmptyList(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := newServiceFixture(t)
	f.service.logger = zap.New(core)

	f.projects.EXPECT().List(mockAnyContext()).Return(nil, domain.ErrPermissionDenied).Twice()

	for i := 0; i < 2; i++ {
		projects, err := f.service.GetProjects(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, projects)
		assert.Empty(t, projects)
	}
	assert.Equal(t, 2, logs.Len())
}

func TestServiceGetProjectsErrorIsSharedAndNotCached(t *testing.T) {
	f := newServiceFixture(t)
	boom := errors.New("connection refused")

	f.projects.EXPECT().List(mockAnyContext()).Return(nil, boom).Once()
	f.projects.EXPECT().List(mockAnyContext()).Return([]domain.Project{{ID: "p1"}}, nil).Once()

	_, err := f.service.GetProjects(context.Background())
	require.ErrorIs(t, err, boom)

	projects, err := f.service.GetProjects(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestServiceCreateProjectInvalidatesProjectList(t *testing.T) {
	f := newServiceFixture(t)

	f.projects.EXPECT().List(mockAnyContext()).Return([]domain.Project{{ID: "p1", Name: "alpha"}}, nil).Once()
	f.projects.EXPECT().Create(mockAnyContext(), mock.MatchedBy(func(p domain.Project) bool {
		return p.Name == "beta" && !p.CreatedAt.IsZero()
	})).Return(domain.Project{ID: "p2", Name: "beta"}, nil).Once()
	f.projects.EXPECT().List(mockAnyContext()).Return([]domain.Project{{ID: "p1", Name: "alpha"}, {ID: "p2", Name: "beta"}}, nil).Once()

	_, err := f.service.GetProjects(context.Background())
	require.NoError(t, err)

	created, err := f.service.CreateProject(context.Background(), CreateProjectCommand{Name: "  beta "})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectID("p2"), created.ID)

	projects, err := f.service.GetProjects(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestServiceCreateProjectRejectsEmptyName(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.CreateProject(context.Background(), CreateProjectCommand{Name: " "})
	require.Error(t, err)
}

func TestServiceUpdateProjectInvalidatesProjectAndList(t *testing.T) {
	f := newServiceFixture(t)
	original := domain.Project{ID: "p1", Name: "alpha"}
	renamed := domain.Project{ID: "p1", Name: "gamma"}

	f.projects.EXPECT().GetByID(mockAnyContext(), domain.ProjectID("p1")).Return(original, nil).Twice()
	f.projects.EXPECT().Update(mockAnyContext(), mock.MatchedBy(func(p domain.Project) bool {
		return p.Name == "gamma"
	})).Return(renamed, nil).Once()
	f.projects.EXPECT().GetByID(mockAnyContext(), domain.ProjectID("p1")).Return(renamed, nil).Once()

	got, err := f.service.GetProject(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "alpha", got.Name)

	name := "gamma"
	_, err = f.service.UpdateProject(context.Background(), UpdateProjectCommand{ID: "p1", Name: &name})
	require.NoError(t, err)

	got, err = f.service.GetProject(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "gamma", got.Name)
}

func TestServiceDeleteProjectInvalidatesThreads(t *testing.T) {
	f := newServiceFixture(t)

	f.threads.EXPECT().List(mockAnyContext(), domain.ProjectID("p1")).Return([]domain.Thread{{ID: "t1", ProjectID: "p1"}}, nil).Once()
	f.projects.EXPECT().Delete(mockAnyContext(), domain.ProjectID("p1")).Return(nil).Once()
	f.threads.EXPECT().List(mockAnyContext(), domain.ProjectID("p1")).Return([]domain.Thread{}, nil).Once()

	_, err := f.service.GetThreads(context.Background(), "p1")
	require.NoError(t, err)
	require.NoError(t, f.service.DeleteProject(context.Background(), "p1"))

	threads, err := f.service.GetThreads(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, threads)
}

func TestServiceCreateThreadInvalidatesProjectThreadList(t *testing.T) {
	f := newServiceFixture(t)
	existing := domain.Thread{ID: "t1", ProjectID: "p1"}
	created := domain.Thread{ID: "t2", ProjectID: "p1"}

	f.threads.EXPECT().List(mockAnyContext(), domain.ProjectID("p1")).Return([]domain.Thread{existing}, nil).Once()
	f.threads.EXPECT().Create(mockAnyContext(), mock.MatchedBy(func(th domain.Thread) bool {
		return th.ProjectID == "p1"
	})).Return(created, nil).Once()
	f.threads.EXPECT().List(mockAnyContext(), domain.ProjectID("p1")).Return([]domain.Thread{existing, created}, nil).Once()

	before, err := f.service.GetThreads(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, before, 1)

	_, err = f.service.CreateThread(context.Background(), "p1")
	require.NoError(t, err)

	after, err := f.service.GetThreads(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Thread{existing, created}, after)
}

func TestServiceThreadAndProjectKeysDoNotCollide(t *testing.T) {
	f := newServiceFixture(t)

	f.projects.EXPECT().GetByID(mockAnyContext(), domain.ProjectID("same-id")).Return(domain.Project{ID: "same-id", Name: "project"}, nil).Once()
	f.threads.EXPECT().GetByID(mockAnyContext(), domain.ThreadID("same-id")).Return(domain.Thread{ID: "same-id", ProjectID: "other"}, nil).Once()

	project, err := f.service.GetProject(context.Background(), "same-id")
	require.NoError(t, err)
	thread, err := f.service.GetThread(context.Background(), "same-id")
	require.NoError(t, err)

	assert.Equal(t, "project", project.Name)
	assert.Equal(t, domain.ProjectID("other"), thread.ProjectID)
}

func TestServiceMessagesAreFilteredAndInvalidatedOnAdd(t *testing.T) {
	f := newServiceFixture(t)
	userMsg := domain.Message{ID: "m1", ThreadID: "t1", Type: domain.MessageTypeUser, Content: json.RawMessage(`{"role":"user","content":"hi"}`)}
	costMsg := domain.Message{ID: "m2", ThreadID: "t1", Type: domain.MessageTypeCost}
	summaryMsg := domain.Message{ID: "m3", ThreadID: "t1", Type: domain.MessageTypeSummary}
	reply := domain.Message{ID: "m4", ThreadID: "t1", Type: domain.MessageTypeUser, Content: json.RawMessage(`{"role":"user","content":"again"}`)}

	f.messages.EXPECT().ListByThread(mockAnyContext(), domain.ThreadID("t1")).Return([]domain.Message{userMsg, costMsg, summaryMsg}, nil).Once()
	f.messages.EXPECT().Create(mockAnyContext(), mock.MatchedBy(func(m domain.Message) bool {
		return m.ThreadID == "t1" && m.Type == domain.MessageTypeUser && m.IsLLMMessage && m.Text() == "again"
	})).Return(reply, nil).Once()
	f.messages.EXPECT().ListByThread(mockAnyContext(), domain.ThreadID("t1")).Return([]domain.Message{userMsg, costMsg, reply}, nil).Once()

	visible, err := f.service.GetMessages(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Message{userMsg}, visible)

	_, err = f.service.AddUserMessage(context.Background(), "t1", "again")
	require.NoError(t, err)

	visible, err = f.service.GetMessages(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Message{userMsg, reply}, visible)
}

func TestServiceStartAgentInvalidatesRunList(t *testing.T) {
	f := newServiceFixture(t)

	f.backend.EXPECT().ListAgentRuns(mockAnyContext(), domain.ThreadID("t1")).Return([]domain.AgentRun{}, nil).Once()
	f.backend.EXPECT().StartAgent(mockAnyContext(), domain.ThreadID("t1"), domain.StartAgentOptions{ModelName: "m"}).Return("run-1", nil).Once()
	f.backend.EXPECT().ListAgentRuns(mockAnyContext(), domain.ThreadID("t1")).Return([]domain.AgentRun{{ID: "run-1", Status: domain.RunStatusRunning}}, nil).Once()

	_, err := f.service.GetAgentRuns(context.Background(), "t1")
	require.NoError(t, err)

	runID, err := f.service.StartAgent(context.Background(), StartAgentCommand{ThreadID: "t1", Options: domain.StartAgentOptions{ModelName: "m"}})
	require.NoError(t, err)
	assert.Equal(t, domain.AgentRunID("run-1"), runID)

	runs, err := f.service.GetAgentRuns(context.Background(), "t1")
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestServiceStopAgentInvalidatesRunListsContainingRun(t *testing.T) {
	f := newServiceFixture(t)

	f.backend.EXPECT().ListAgentRuns(mockAnyContext(), domain.ThreadID("t1")).Return([]domain.AgentRun{{ID: "run-1", Status: domain.RunStatusRunning}}, nil).Once()
	f.backend.EXPECT().ListAgentRuns(mockAnyContext(), domain.ThreadID("t2")).Return([]domain.AgentRun{{ID: "run-2", Status: domain.RunStatusRunning}}, nil).Once()
	f.backend.EXPECT().StopAgent(mockAnyContext(), domain.AgentRunID("run-1")).Return(nil).Once()
	f.backend.EXPECT().ListAgentRuns(mockAnyContext(), domain.ThreadID("t1")).Return([]domain.AgentRun{{ID: "run-1", Status: domain.RunStatusStopped}}, nil).Once()

	_, err := f.service.GetAgentRuns(context.Background(), "t1")
	require.NoError(t, err)
	_, err = f.service.GetAgentRuns(context.Background(), "t2")
	require.NoError(t, err)

	require.NoError(t, f.service.StopAgent(context.Background(), "run-1"))

	runs, err := f.service.GetAgentRuns(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusStopped, runs[0].Status)

	runs, err = f.service.GetAgentRuns(context.Background(), "t2")
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusRunning, runs[0].Status)
}

func TestServiceGetAgentStatusIsNotCached(t *testing.T) {
	f := newServiceFixture(t)

	f.backend.EXPECT().GetAgentRun(mockAnyContext(), domain.AgentRunID("run-1")).Return(domain.AgentRun{ID: "run-1", Status: domain.RunStatusRunning}, nil).Once()
	f.backend.EXPECT().GetAgentRun(mockAnyContext(), domain.AgentRunID("run-1")).Return(domain.AgentRun{ID: "run-1", Status: domain.RunStatusCompleted}, nil).Once()

	first, err := f.service.GetAgentStatus(context.Background(), "run-1")
	require.NoError(t, err)
	second, err := f.service.GetAgentStatus(context.Background(), "run-1")
	require.NoError(t, err)

	assert.Equal(t, domain.RunStatusRunning, first.Status)
	assert.Equal(t, domain.RunStatusCompleted, second.Status)
}

func TestServiceSandboxPathsAreNormalized(t *testing.T) {
	f := newServiceFixture(t)

	f.backend.EXPECT().ListSandboxFiles(mockAnyContext(), domain.SandboxID("sb-1"), "/workspace").Return([]domain.SandboxFile{{Name: "a.txt"}}, nil).Once()
	f.backend.EXPECT().GetSandboxFileContent(mockAnyContext(), domain.SandboxID("sb-1"), "/workspace/src/a.txt").Return(domain.FileContent{Text: "hello"}, nil).Once()
	f.backend.EXPECT().CreateSandboxFile(mockAnyContext(), domain.SandboxID("sb-1"), "/workspace/b.txt", []byte("data")).Return(nil).Once()

	files, err := f.service.ListSandboxFiles(context.Background(), "sb-1", "")
	require.NoError(t, err)
	assert.Len(t, files, 1)

	content, err := f.service.GetSandboxFileContent(context.Background(), "sb-1", "src/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", content.Text)

	require.NoError(t, f.service.CreateSandboxFile(context.Background(), "sb-1", "b.txt", []byte("data")))

	_, err = f.service.GetSandboxFileContent(context.Background(), "sb-1", "../etc/passwd")
	require.Error(t, err)
}

func TestServiceSetAccessTokenResetsCaches(t *testing.T) {
	f := newServiceFixture(t)

	f.projects.EXPECT().List(mockAnyContext()).Return([]domain.Project{{ID: "p1"}}, nil).Once()
	f.sessions.EXPECT().Store(mockAnyContext(), "token").Return(domain.Session{UserID: "user-2"}, nil).Once()
	f.projects.EXPECT().List(mockAnyContext()).Return([]domain.Project{{ID: "p9"}}, nil).Once()

	_, err := f.service.GetProjects(context.Background())
	require.NoError(t, err)

	session, err := f.service.SetAccessToken(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "user-2", session.UserID)

	projects, err := f.service.GetProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectID("p9"), projects[0].ID)
}

func TestServiceSetAccessTokenDuringProjectLoadDropsPreviousIdentity(t *testing.T) {
	f := newServiceFixture(t)
	release := make(chan struct{})
	started := make(chan struct{})

	f.projects.EXPECT().List(mockAnyContext()).RunAndReturn(func(context.Context) ([]domain.Project, error) {
		close(started)
		<-release
		return []domain.Project{{ID: "p-old"}}, nil
	}).Once()
	f.sessions.EXPECT().Store(mockAnyContext(), "token").Return(domain.Session{UserID: "user-2"}, nil).Once()
	f.projects.EXPECT().List(mockAnyContext()).Return([]domain.Project{{ID: "p-new"}}, nil).Once()

	loaded := make(chan []domain.Project, 1)
	go func() {
		projects, _ := f.service.GetProjects(context.Background())
		loaded <- projects
	}()
	<-started

	_, err := f.service.SetAccessToken(context.Background(), "token")
	require.NoError(t, err)
	close(release)
	stale := <-loaded
	require.Len(t, stale, 1)
	assert.Equal(t, domain.ProjectID("p-old"), stale[0].ID)

	projects, err := f.service.GetProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, domain.ProjectID("p-new"), projects[0].ID)
}

func TestServiceGetAuthStatus(t *testing.T) {
	f := newServiceFixture(t)
	expiresAt := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	f.sessions.EXPECT().Session(mockAnyContext()).Return(domain.Session{}, domain.ErrUnauthenticated).Once()
	f.sessions.EXPECT().Session(mockAnyContext()).Return(domain.Session{UserID: "user-1", ExpiresAt: expiresAt}, nil).Once()

	status, err := f.service.GetAuthStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Authenticated)
	assert.NotEmpty(t, status.Reason)

	status, err = f.service.GetAuthStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Authenticated)
	assert.Equal(t, "user-1", status.UserID)
	assert.Equal(t, expiresAt, status.ExpiresAt)
}

func TestServiceStreamReconcilesThroughAgentStatus(t *testing.T) {
	f := newServiceFixture(t)

	f.backend.EXPECT().GetAgentRun(mockAnyContext(), domain.AgentRunID("run-1")).Return(domain.AgentRun{}, domain.ErrRunNotFound).Once()

	sub := &recordingSubscriber{}
	unsubscribe := f.service.StreamAgent("run-1", sub.handlers())
	defer unsubscribe()

	f.opener.sink("run-1").HandleError(errors.New("eof"))

	_, errs, closes := sub.snapshot()
	assert.Empty(t, errs)
	assert.Equal(t, 1, closes)
}

func TestServiceWatchAgent(t *testing.T) {
	f := newServiceFixture(t)

	updates := f.service.WatchAgent(context.Background(), "run-1")
	f.opener.sink("run-1").HandleFrame([]byte(`{"type":"status","status":"failed"}`))

	update, ok := <-updates
	require.True(t, ok)
	assert.Equal(t, domain.RunStatusFailed, update.Frame.Status)
	_, ok = <-updates
	assert.False(t, ok)
}

func mockAnyContext() interface{} {
	return mock.Anything
}
