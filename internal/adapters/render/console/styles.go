package console

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/deck/internal/domain"
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	name     lipgloss.Style
	id       lipgloss.Style
	detail   lipgloss.Style
	meta     lipgloss.Style
	warning  lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	role     lipgloss.Style
	dir      lipgloss.Style
	running  lipgloss.Style
	success  lipgloss.Style
	failure  lipgloss.Style
	inactive lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		name:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		id:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		role:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
		dir:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		running:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		failure:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		inactive: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (s styles) status(status domain.RunStatus) lipgloss.Style {
	switch status {
	case domain.RunStatusRunning:
		return s.running
	case domain.RunStatusCompleted:
		return s.success
	case domain.RunStatusFailed, domain.RunStatusError:
		return s.failure
	default:
		return s.inactive
	}
}
