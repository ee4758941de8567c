package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// slowFetchAfter is when the spinner starts showing elapsed time.
const slowFetchAfter = time.Second

// fetchTarget names what a command is loading, e.g. "agent runs" of
// "thread t-1". Single resources leave plural empty.
type fetchTarget struct {
	noun   string
	plural string
	scope  string
}

func listTarget(noun, plural, scope string) fetchTarget {
	return fetchTarget{noun: noun, plural: plural, scope: scope}
}

func oneTarget(noun, id string) fetchTarget {
	return fetchTarget{noun: noun, scope: id}
}

func (t fetchTarget) loading() string {
	what := t.plural
	if what == "" {
		what = t.noun
	}
	if t.scope == "" {
		return fmt.Sprintf("Loading %s...", what)
	}
	if t.plural == "" {
		return fmt.Sprintf("Loading %s %s...", what, t.scope)
	}

	return fmt.Sprintf("Loading %s of %s...", what, t.scope)
}

// loaded is the line left behind once the fetch succeeds. count is -1 for
// a single resource.
func (t fetchTarget) loaded(count int) string {
	if count < 0 {
		return fmt.Sprintf("Loaded %s %s", t.noun, t.scope)
	}
	what := t.plural
	if count == 1 {
		what = t.noun
	}
	if t.scope == "" {
		return fmt.Sprintf("Loaded %d %s", count, what)
	}

	return fmt.Sprintf("Loaded %d %s of %s", count, what, t.scope)
}

type fetchDoneMsg struct {
	count int
	err   error
}

type fetchSpinnerModel struct {
	spinner spinner.Model
	target  fetchTarget
	load    tea.Cmd
	started time.Time
	now     func() time.Time

	done  bool
	count int
	err   error
}

var (
	fetchSpinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	fetchDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	fetchElapsedStyle = lipgloss.NewStyle().Faint(true)
)

func newFetchSpinnerModel(target fetchTarget, load tea.Cmd, now func() time.Time) fetchSpinnerModel {
	return fetchSpinnerModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(fetchSpinnerStyle)),
		target:  target,
		load:    load,
		started: now(),
		now:     now,
	}
}

func (m fetchSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m fetchSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		m.done, m.count, m.err = true, msg.count, msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m fetchSpinnerModel) View() string {
	switch {
	case m.done && m.err != nil:
		return ""
	case m.done:
		return fetchDoneStyle.Render(m.target.loaded(m.count)) + "\n"
	}

	line := m.spinner.View() + " " + m.target.loading()
	if elapsed := m.now().Sub(m.started); elapsed >= slowFetchAfter {
		line += " " + fetchElapsedStyle.Render(elapsed.Truncate(time.Second).String())
	}

	return line
}

// runFetchSpinner renders the spinner on output until load returns.
func runFetchSpinner(ctx context.Context, output io.Writer, target fetchTarget, load func(context.Context) (int, error)) error {
	program := tea.NewProgram(
		newFetchSpinnerModel(target, func() tea.Msg {
			count, err := load(ctx)
			return fetchDoneMsg{count: count, err: err}
		}, time.Now),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		return err
	}
	model, ok := final.(fetchSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", final)
	}

	return model.err
}

// fetchList loads a list with a spinner on stderr. JSON output skips the
// spinner so stdout stays machine readable and stderr quiet.
func fetchList[T any](cmd *cobra.Command, asJSON bool, target fetchTarget, load func(context.Context) ([]T, error)) ([]T, error) {
	if asJSON {
		return load(cmd.Context())
	}

	var items []T
	err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), target, func(ctx context.Context) (int, error) {
		var err error
		items, err = load(ctx)
		return len(items), err
	})

	return items, err
}

func fetchOne[T any](cmd *cobra.Command, asJSON bool, target fetchTarget, load func(context.Context) (T, error)) (T, error) {
	if asJSON {
		return load(cmd.Context())
	}

	var item T
	err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), target, func(ctx context.Context) (int, error) {
		var err error
		item, err = load(ctx)
		return -1, err
	})

	return item, err
}
