package domain

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStatusTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status RunStatus
		want   bool
	}{
		{name: "running", status: RunStatusRunning, want: false},
		{name: "completed", status: RunStatusCompleted, want: true},
		{name: "stopped", status: RunStatusStopped, want: true},
		{name: "failed", status: RunStatusFailed, want: true},
		{name: "error", status: RunStatusError, want: true},
		{name: "upper case completed", status: RunStatus("COMPLETED"), want: true},
		{name: "empty", status: RunStatus(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Terminal())
		})
	}
}

func TestParseStreamFrame(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		wantPing     bool
		wantTerminal bool
		wantNotFound bool
	}{
		{name: "ping", payload: `{"type":"ping"}`, wantPing: true},
		{name: "assistant chunk", payload: `{"type":"assistant","content":"{\"content\":\"hi\"}"}`},
		{name: "running status", payload: `{"type":"status","status":"running"}`},
		{name: "completed status", payload: `{"type":"status","status":"completed"}`, wantTerminal: true},
		{name: "stopped status", payload: `{"type":"status","status":"stopped"}`, wantTerminal: true},
		{
			name:         "run not found",
			payload:      `{"type":"status","status":"error","message":"Agent run abc not found"}`,
			wantTerminal: true,
			wantNotFound: true,
		},
		{
			name:         "not available for streaming",
			payload:      `{"type":"status","message":"Run is not available for streaming"}`,
			wantTerminal: true,
			wantNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := ParseStreamFrame([]byte(tt.payload))
			require.NoError(t, err)

			assert.Equal(t, tt.wantPing, frame.IsPing())
			assert.Equal(t, tt.wantTerminal, frame.Terminal())
			assert.Equal(t, tt.wantNotFound, frame.RunNotFound())
			assert.Equal(t, tt.payload, string(frame.Raw))
		})
	}
}

func TestParseStreamFrameKeepsRawOnInvalidJSON(t *testing.T) {
	frame, err := ParseStreamFrame([]byte("plain text"))

	require.Error(t, err)
	assert.Equal(t, "plain text", string(frame.Raw))
	assert.False(t, frame.Terminal())
}

func TestStreamFrameText(t *testing.T) {
	frame, err := ParseStreamFrame([]byte(`{"type":"assistant","content":"{\"role\":\"assistant\",\"content\":\"hello\"}"}`))
	require.NoError(t, err)

	assert.Equal(t, "hello", frame.Text())
}

func TestNewUserMessage(t *testing.T) {
	msg, err := NewUserMessage("thread-1", "hello there")
	require.NoError(t, err)

	assert.Equal(t, ThreadID("thread-1"), msg.ThreadID)
	assert.Equal(t, MessageTypeUser, msg.Type)
	assert.True(t, msg.IsLLMMessage)
	assert.JSONEq(t, `{"role":"user","content":"hello there"}`, string(msg.Content))
	assert.Equal(t, "hello there", msg.Text())

	_, err = NewUserMessage("thread-1", "   ")
	require.Error(t, err)
}

func TestMessageVisible(t *testing.T) {
	assert.True(t, Message{Type: MessageTypeUser}.Visible())
	assert.True(t, Message{Type: MessageTypeAssistant}.Visible())
	assert.False(t, Message{Type: MessageTypeCost}.Visible())
	assert.False(t, Message{Type: MessageTypeSummary}.Visible())
}

func TestMessageTextShapes(t *testing.T) {
	tests := []struct {
		name    string
		content json.RawMessage
		want    string
	}{
		{name: "object", content: json.RawMessage(`{"role":"assistant","content":"a"}`), want: "a"},
		{name: "plain string", content: json.RawMessage(`"b"`), want: "b"},
		{name: "encoded object", content: json.RawMessage(`"{\"content\":\"c\"}"`), want: "c"},
		{name: "structured content", content: json.RawMessage(`{"content":[1,2]}`), want: "[1,2]"},
		{name: "empty", content: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message{Content: tt.content}.Text())
		})
	}
}

func TestNormalizeSandboxPath(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "relative", raw: "src/main.go", want: "/workspace/src/main.go"},
		{name: "absolute", raw: "/workspace/readme.md", want: "/workspace/readme.md"},
		{name: "root", raw: "/workspace", want: "/workspace"},
		{name: "dot segments", raw: "a/../b.txt", want: "/workspace/b.txt"},
		{name: "escape", raw: "../etc/passwd", wantErr: true},
		{name: "outside", raw: "/etc/passwd", wantErr: true},
		{name: "empty", raw: " ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeSandboxPath(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsBinaryContent(t *testing.T) {
	assert.False(t, IsBinaryContent([]byte("hello\n")))
	assert.True(t, IsBinaryContent([]byte{0xff, 0xfe, 0x00}))
	assert.True(t, IsBinaryContent([]byte("a\x00b")))
}

func TestBackendErrorUnwrapsAuthFailures(t *testing.T) {
	unauthorized := &BackendError{StatusCode: http.StatusUnauthorized, Body: "expired"}
	forbidden := &BackendError{StatusCode: http.StatusForbidden}
	serverErr := &BackendError{StatusCode: http.StatusInternalServerError, Status: "500 Internal Server Error"}

	assert.True(t, errors.Is(unauthorized, ErrUnauthenticated))
	assert.True(t, errors.Is(forbidden, ErrUnauthenticated))
	assert.False(t, errors.Is(serverErr, ErrUnauthenticated))

	assert.Equal(t, "backend returned 401 Unauthorized: expired", unauthorized.Error())
	assert.Equal(t, "backend returned 500 Internal Server Error", serverErr.Error())
}

func TestProjectValidate(t *testing.T) {
	require.NoError(t, Project{Name: "demo"}.Validate())
	require.Error(t, Project{Name: " "}.Validate())
}
