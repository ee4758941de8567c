package console

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/deck/internal/application"
	"github.com/bnema/deck/internal/domain"
)

type RenderOptions struct {
	// Now enables relative timestamps. Zero prints absolute times.
	Now time.Time
}

func RenderProjects(projects []domain.Project, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		lines := []string{
			s.title.Render("Projects"),
			s.header.Render(fmt.Sprintf("projects: %d", len(projects))),
		}
		if len(projects) == 0 {
			lines = append(lines, s.empty.Render("No projects yet."))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		for _, project := range projects {
			lines = append(lines, s.section.Render(projectBlock(project, opts, s)))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

func RenderProject(project domain.Project, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		return projectBlock(project, opts, s)
	})
}

func projectBlock(project domain.Project, opts RenderOptions, s styles) string {
	title := s.name.Render(project.Name) + " " + s.id.Render(fmt.Sprintf("(%s)", project.ID))
	if project.IsPublic {
		title += " " + s.meta.Render("[public]")
	}

	parts := []string{title}
	if description := strings.TrimSpace(project.Description); description != "" {
		parts = append(parts, s.detail.Render(description))
	}
	if project.SandboxID != "" {
		parts = append(parts, s.meta.Render("sandbox: "+string(project.SandboxID)))
	}
	parts = append(parts, s.meta.Render("updated "+formatWhen(latest(project.UpdatedAt, project.CreatedAt), opts.Now)))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func RenderThreads(threads []domain.Thread, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		lines := []string{
			s.title.Render("Threads"),
			s.header.Render(fmt.Sprintf("threads: %d", len(threads))),
		}
		if len(threads) == 0 {
			lines = append(lines, s.empty.Render("No threads yet."))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		for _, thread := range threads {
			lines = append(lines, threadLine(thread, opts, s))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

func threadLine(thread domain.Thread, opts RenderOptions, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.name.Render(string(thread.ID)),
		" ",
		s.meta.Render(fmt.Sprintf("project %s", thread.ProjectID)),
		" ",
		s.meta.Render("updated "+formatWhen(latest(thread.UpdatedAt, thread.CreatedAt), opts.Now)),
	)
}

// RenderThreadView prints a thread header followed by its conversation.
func RenderThreadView(view application.ThreadView, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		lines := []string{
			s.title.Render("Thread " + string(view.Thread.ID)),
			s.header.Render(fmt.Sprintf("project: %s  messages: %d", view.Thread.ProjectID, len(view.Messages))),
		}
		lines = append(lines, conversation(view.Messages, opts, s)...)
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

func RenderMessages(messages []domain.Message, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		lines := []string{s.header.Render(fmt.Sprintf("messages: %d", len(messages)))}
		lines = append(lines, conversation(messages, opts, s)...)
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

func conversation(messages []domain.Message, opts RenderOptions, s styles) []string {
	if len(messages) == 0 {
		return []string{s.empty.Render("No messages yet.")}
	}

	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		header := s.role.Render(string(msg.Type)) + " " + s.meta.Render(formatWhen(msg.CreatedAt, opts.Now))
		text := msg.Text()
		if text == "" {
			text = s.empty.Render("(no text)")
		} else {
			text = s.detail.Render(text)
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, header, text)))
	}

	return lines
}

func RenderRuns(runs []domain.AgentRun, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		lines := []string{
			s.title.Render("Agent runs"),
			s.header.Render(fmt.Sprintf("runs: %d", len(runs))),
		}
		if len(runs) == 0 {
			lines = append(lines, s.empty.Render("No agent runs for this thread."))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		for _, run := range runs {
			lines = append(lines, runLine(run, opts, s))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

func RenderRun(run domain.AgentRun, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		return runLine(run, opts, s)
	})
}

func runLine(run domain.AgentRun, opts RenderOptions, s styles) string {
	status := run.Status
	if status == "" {
		status = "unknown"
	}

	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.name.Render(string(run.ID)),
		" ",
		s.status(status).Render(string(status)),
		" ",
		s.meta.Render(runTiming(run, opts.Now)),
	)
	if run.Error != "" {
		line += " " + s.warning.Render(run.Error)
	}

	return line
}

func runTiming(run domain.AgentRun, now time.Time) string {
	if run.StartedAt.IsZero() {
		return ""
	}
	if run.CompletedAt.IsZero() {
		return "started " + formatWhen(run.StartedAt, now)
	}

	return fmt.Sprintf("took %s", run.CompletedAt.Sub(run.StartedAt).Round(time.Second))
}

func RenderFiles(dir string, files []domain.SandboxFile, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		lines := []string{
			s.title.Render(dir),
			s.header.Render(fmt.Sprintf("entries: %d", len(files))),
		}
		if len(files) == 0 {
			lines = append(lines, s.empty.Render("Directory is empty."))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		for _, file := range files {
			name := s.detail.Render(file.Name)
			size := formatSize(file.Size)
			if file.IsDir {
				name = s.dir.Render(file.Name + "/")
				size = "-"
			}
			lines = append(lines, lipgloss.JoinHorizontal(
				lipgloss.Top,
				s.meta.Render(fmt.Sprintf("%-10s %9s ", file.Permissions, size)),
				name,
				" ",
				s.meta.Render(formatWhen(file.ModTime, opts.Now)),
			))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

func RenderAuthStatus(status application.AuthStatus, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		if !status.Authenticated {
			lines := []string{s.warning.Render("Not authenticated")}
			if status.Reason != "" {
				lines = append(lines, s.detail.Render(status.Reason))
			}
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		lines := []string{
			s.success.Render("Authenticated"),
			s.detail.Render("user: " + status.UserID),
		}
		if !status.ExpiresAt.IsZero() {
			lines = append(lines, s.meta.Render("expires "+formatUntil(status.ExpiresAt, opts.Now)))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

// FormatFrame turns a stream frame into one line of plain output. Pings
// render as the empty string.
func FormatFrame(frame domain.StreamFrame) string {
	switch {
	case frame.IsPing():
		return ""
	case frame.IsStatus():
		line := fmt.Sprintf("[status] %s", frame.Status)
		if frame.Status == "" {
			line = "[status]"
		}
		if frame.Message != "" {
			line += ": " + frame.Message
		}
		return line
	}

	if text := frame.Text(); text != "" {
		return text
	}
	if frame.Type != "" {
		return fmt.Sprintf("[%s]", frame.Type)
	}

	return strings.TrimSpace(string(frame.Raw))
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func formatWhen(at, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour") + " ago"
	case elapsed < 7*24*time.Hour:
		return plural(int(elapsed.Hours()/24), "day") + " ago"
	default:
		return at.Format("02 Jan 2006")
	}
}

func formatUntil(at, now time.Time) string {
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}
	if !at.After(now) {
		return "now"
	}

	remaining := at.Sub(now)
	if remaining < time.Hour {
		return "in " + plural(int(math.Ceil(remaining.Minutes())), "minute")
	}
	if remaining < 24*time.Hour {
		return fmt.Sprintf("in %s (%s)", plural(int(math.Ceil(remaining.Hours())), "hour"), at.Format("15:04"))
	}

	return fmt.Sprintf("in %s (%s)", plural(int(math.Ceil(remaining.Hours()/24)), "day"), at.Format("15:04 on 02 Jan"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
