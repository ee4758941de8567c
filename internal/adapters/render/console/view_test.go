package console

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/deck/internal/application"
	"github.com/bnema/deck/internal/domain"
)

var now = time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

func TestRenderProjects(t *testing.T) {
	output, err := RenderProjects([]domain.Project{
		{
			ID:          "p1",
			Name:        "Landing page",
			Description: "marketing site",
			SandboxID:   "sb-1",
			IsPublic:    true,
			CreatedAt:   now.Add(-48 * time.Hour),
			UpdatedAt:   now.Add(-3 * time.Hour),
		},
		{ID: "p2", Name: "Scraper", CreatedAt: now.Add(-30 * time.Second)},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "projects: 2")
	assert.Contains(t, output, "Landing page")
	assert.Contains(t, output, "(p1)")
	assert.Contains(t, output, "[public]")
	assert.Contains(t, output, "marketing site")
	assert.Contains(t, output, "sandbox: sb-1")
	assert.Contains(t, output, "updated 3 hours ago")
	assert.Contains(t, output, "updated just now")
}

func TestRenderProjectsEmpty(t *testing.T) {
	output, err := RenderProjects(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "projects: 0")
	assert.Contains(t, output, "No projects yet.")
}

func TestRenderThreadViewShowsConversation(t *testing.T) {
	user, err := domain.NewUserMessage("t1", "build me a scraper")
	require.NoError(t, err)
	user.CreatedAt = now.Add(-5 * time.Minute)

	output, err := RenderThreadView(application.ThreadView{
		Thread: domain.Thread{ID: "t1", ProjectID: "p1"},
		Messages: []domain.Message{
			user,
			{
				ThreadID:  "t1",
				Type:      domain.MessageTypeAssistant,
				Content:   json.RawMessage(`"{\"role\":\"assistant\",\"content\":\"on it\"}"`),
				CreatedAt: now.Add(-time.Minute),
			},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "Thread t1")
	assert.Contains(t, output, "messages: 2")
	assert.Contains(t, output, "build me a scraper")
	assert.Contains(t, output, "5 minutes ago")
	assert.Contains(t, output, "on it")
	assert.Contains(t, output, "1 minute ago")
}

func TestRenderRuns(t *testing.T) {
	output, err := RenderRuns([]domain.AgentRun{
		{ID: "r1", Status: domain.RunStatusRunning, StartedAt: now.Add(-2 * time.Hour)},
		{ID: "r2", Status: domain.RunStatusFailed, StartedAt: now.Add(-time.Hour), CompletedAt: now.Add(-time.Hour + 90*time.Second), Error: "sandbox crashed"},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "runs: 2")
	assert.Contains(t, output, "running")
	assert.Contains(t, output, "started 2 hours ago")
	assert.Contains(t, output, "failed")
	assert.Contains(t, output, "took 1m30s")
	assert.Contains(t, output, "sandbox crashed")
}

func TestRenderFiles(t *testing.T) {
	output, err := RenderFiles("/workspace", []domain.SandboxFile{
		{Name: "src", Path: "/workspace/src", IsDir: true, Permissions: "drwxr-xr-x"},
		{Name: "main.go", Path: "/workspace/main.go", Size: 2048, Permissions: "-rw-r--r--", ModTime: now.Add(-72 * time.Hour)},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "/workspace")
	assert.Contains(t, output, "entries: 2")
	assert.Contains(t, output, "src/")
	assert.Contains(t, output, "main.go")
	assert.Contains(t, output, "2.0 KiB")
	assert.Contains(t, output, "3 days ago")
}

func TestRenderAuthStatus(t *testing.T) {
	output, err := RenderAuthStatus(application.AuthStatus{
		Authenticated: true,
		UserID:        "user-1",
		ExpiresAt:     now.Add(90 * time.Minute),
	}, RenderOptions{Now: now})
	require.NoError(t, err)
	assert.Contains(t, output, "Authenticated")
	assert.Contains(t, output, "user: user-1")
	assert.Contains(t, output, "expires in 2 hours (12:30)")

	output, err = RenderAuthStatus(application.AuthStatus{Reason: "access token expired"}, RenderOptions{Now: now})
	require.NoError(t, err)
	assert.Contains(t, output, "Not authenticated")
	assert.Contains(t, output, "access token expired")
}

func TestFormatFrame(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "ping", raw: `{"type":"ping"}`, want: ""},
		{name: "status", raw: `{"type":"status","status":"completed"}`, want: "[status] completed"},
		{name: "status with message", raw: `{"type":"status","status":"error","message":"Run not found"}`, want: "[status] error: Run not found"},
		{name: "assistant text", raw: `{"type":"assistant","content":"{\"role\":\"assistant\",\"content\":\"hello\"}"}`, want: "hello"},
		{name: "typed without content", raw: `{"type":"tool"}`, want: "[tool]"},
		{name: "not json", raw: "plain line", want: "plain line"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			frame, _ := domain.ParseStreamFrame([]byte(tc.raw))
			assert.Equal(t, tc.want, FormatFrame(frame))
		})
	}
}

func TestFormatSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "1.5 KiB", formatSize(1536))
	assert.Equal(t, "3.0 MiB", formatSize(3*1024*1024))
}
