package rest

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports"
)

const (
	defaultTimeout   = 30 * time.Second
	maxErrorBodySize = 4 << 10
)

// Client talks to the agent backend HTTP API with the session bearer token.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	sessions   ports.SessionProvider
	logger     *zap.Logger
}

var _ ports.AgentBackend = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewClient(baseURL string, sessions ports.SessionProvider, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q must use http or https", baseURL)
	}
	if sessions == nil {
		return nil, errors.New("session provider is nil")
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: defaultTimeout},
		sessions:   sessions,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL is the backend root all endpoints are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type startAgentRequest struct {
	ModelName            string `json:"model_name,omitempty"`
	EnableThinking       bool   `json:"enable_thinking"`
	ReasoningEffort      string `json:"reasoning_effort,omitempty"`
	Stream               bool   `json:"stream"`
	EnableContextManager bool   `json:"enable_context_manager"`
}

type startAgentResponse struct {
	AgentRunID string `json:"agent_run_id"`
}

func (c *Client) StartAgent(ctx context.Context, threadID domain.ThreadID, opts domain.StartAgentOptions) (domain.AgentRunID, error) {
	var resp startAgentResponse
	err := c.doJSON(ctx, http.MethodPost, "/thread/"+url.PathEscape(string(threadID))+"/agent/start", nil, startAgentRequest{
		ModelName:            opts.ModelName,
		EnableThinking:       opts.EnableThinking,
		ReasoningEffort:      opts.ReasoningEffort,
		Stream:               opts.Stream,
		EnableContextManager: opts.EnableContextManager,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.AgentRunID == "" {
		return "", errors.New("backend response has no agent_run_id")
	}

	return domain.AgentRunID(resp.AgentRunID), nil
}

func (c *Client) StopAgent(ctx context.Context, runID domain.AgentRunID) error {
	err := c.doJSON(ctx, http.MethodPost, "/agent-run/"+url.PathEscape(string(runID))+"/stop", nil, nil, nil)
	return mapRunNotFound(err)
}

type agentRunDTO struct {
	ID          string    `json:"id"`
	ThreadID    string    `json:"thread_id"`
	Status      string    `json:"status"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	Error       string    `json:"error"`
}

func (d agentRunDTO) toDomain() domain.AgentRun {
	return domain.AgentRun{
		ID:          domain.AgentRunID(d.ID),
		ThreadID:    domain.ThreadID(d.ThreadID),
		Status:      domain.RunStatus(strings.ToLower(d.Status)),
		StartedAt:   d.StartedAt,
		CompletedAt: d.CompletedAt,
		Error:       d.Error,
	}
}

func (c *Client) GetAgentRun(ctx context.Context, runID domain.AgentRunID) (domain.AgentRun, error) {
	var dto agentRunDTO
	if err := c.doJSON(ctx, http.MethodGet, "/agent-run/"+url.PathEscape(string(runID)), nil, nil, &dto); err != nil {
		return domain.AgentRun{}, mapRunNotFound(err)
	}
	if dto.ID == "" {
		dto.ID = string(runID)
	}

	return dto.toDomain(), nil
}

func (c *Client) ListAgentRuns(ctx context.Context, threadID domain.ThreadID) ([]domain.AgentRun, error) {
	var resp struct {
		AgentRuns []agentRunDTO `json:"agent_runs"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/thread/"+url.PathEscape(string(threadID))+"/agent-runs", nil, nil, &resp); err != nil {
		return nil, err
	}

	runs := make([]domain.AgentRun, 0, len(resp.AgentRuns))
	for _, dto := range resp.AgentRuns {
		runs = append(runs, dto.toDomain())
	}

	return runs, nil
}

type sandboxFileDTO struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	IsDir       bool      `json:"is_dir"`
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"mod_time"`
	Permissions string    `json:"permissions"`
}

func (c *Client) ListSandboxFiles(ctx context.Context, sandboxID domain.SandboxID, path string) ([]domain.SandboxFile, error) {
	var resp struct {
		Files []sandboxFileDTO `json:"files"`
	}
	query := url.Values{"path": {path}}
	if err := c.doJSON(ctx, http.MethodGet, "/sandboxes/"+url.PathEscape(string(sandboxID))+"/files", query, nil, &resp); err != nil {
		return nil, err
	}

	files := make([]domain.SandboxFile, 0, len(resp.Files))
	for _, dto := range resp.Files {
		files = append(files, domain.SandboxFile(dto))
	}

	return files, nil
}

func (c *Client) GetSandboxFileContent(ctx context.Context, sandboxID domain.SandboxID, path string) (domain.FileContent, error) {
	query := url.Values{"path": {path}}
	resp, err := c.do(ctx, http.MethodGet, "/sandboxes/"+url.PathEscape(string(sandboxID))+"/files/content", query, nil)
	if err != nil {
		return domain.FileContent{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.FileContent{}, fmt.Errorf("read sandbox file body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	content := domain.FileContent{Path: path, ContentType: contentType}
	if isTextContentType(contentType) {
		content.Text = string(data)
	} else {
		content.Binary = true
		content.Data = data
	}

	return content, nil
}

type createFileRequest struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Base64  bool   `json:"base64"`
}

func (c *Client) CreateSandboxFile(ctx context.Context, sandboxID domain.SandboxID, path string, content []byte) error {
	body := createFileRequest{Path: path, Content: string(content)}
	if domain.IsBinaryContent(content) {
		body.Content = base64.StdEncoding.EncodeToString(content)
		body.Base64 = true
	}

	return c.doJSON(ctx, http.MethodPost, "/sandboxes/"+url.PathEscape(string(sandboxID))+"/files", nil, body, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	resp, err := c.do(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}

	return nil
}

// do sends an authenticated request and turns transport failures and
// non-2xx answers into domain errors. The caller closes the body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Response, error) {
	session, err := c.sessions.Session(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("backend request", zap.String("method", method), zap.String("path", path))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w at %s, check your network connection: %w", domain.ErrBackendUnreachable, c.baseURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		c.logger.Debug("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &domain.BackendError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       errorDetail(data),
		}
	}

	return resp, nil
}

func mapRunNotFound(err error) error {
	var backendErr *domain.BackendError
	if errors.As(err, &backendErr) && backendErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", domain.ErrRunNotFound, err)
	}

	return err
}

// errorDetail prefers the "detail" or "message" field of a JSON error body.
func errorDetail(data []byte) string {
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		for _, candidate := range []string{body.Detail, body.Message, body.Error} {
			if candidate != "" {
				return candidate
			}
		}
	}

	return strings.TrimSpace(string(data))
}

func isTextContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return true
	case mediaType == "application/xml", strings.HasSuffix(mediaType, "+xml"):
		return true
	case mediaType == "application/javascript", mediaType == "application/x-javascript":
		return true
	default:
		return false
	}
}
