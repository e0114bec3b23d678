package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/flowkeys/internal/stats"
)

const sparklineWindow = 3

func (m *Model) renderResults() string {
	result, ok := m.engine.Result()
	if !ok {
		return ""
	}
	title := m.theme.timer.Render("performance report")
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.metricCard("wpm", fmt.Sprintf("%d", result.WPM)),
		m.metricCard("accuracy", fmt.Sprintf("%d%%", result.Accuracy)),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		m.metricCard("time", fmt.Sprintf("%ds", result.Time)),
		m.metricCard("correct", fmt.Sprintf("%d", result.CorrectChars)),
		m.metricCard("incorrect", fmt.Sprintf("%d", result.IncorrectChars)),
		m.metricCard("missed", fmt.Sprintf("%d", result.MissedChars)),
	)
	parts := []string{title, "", top, bottom}
	if trace := m.renderTrace(); trace != "" {
		parts = append(parts, "", trace)
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m *Model) renderTrace() string {
	if len(m.samples) < 2 {
		return ""
	}
	line := stats.Sparkline(stats.MovingAverage(m.samples, sparklineWindow))
	return m.theme.cardTitle.Render("wpm ") + m.theme.accent.Render(line)
}

func (m *Model) metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", m.theme.cardTitle.Render(label), m.theme.cardValue.Render(value))
	return m.theme.card.Render(content)
}
