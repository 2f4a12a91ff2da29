package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/taskhub/internal/model"
)

var (
	priorityCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	priorityHigh     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347"))
	priorityMedium   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	priorityLow      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))

	statusDone  = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	statusDoing = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	statusTodo  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	archivedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D")).Italic(true)
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

func renderPriority(p model.Priority) string {
	switch p {
	case model.PriorityCritical:
		return priorityCritical.Render(string(p))
	case model.PriorityHigh:
		return priorityHigh.Render(string(p))
	case model.PriorityLow:
		return priorityLow.Render(string(p))
	default:
		return priorityMedium.Render(string(p))
	}
}

func renderStatus(s model.Status) string {
	switch s {
	case model.StatusDone:
		return statusDone.Render(string(s))
	case model.StatusDoing:
		return statusDoing.Render(string(s))
	default:
		return statusTodo.Render(string(s))
	}
}
