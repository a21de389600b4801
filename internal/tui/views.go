package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.theme.Subtitle.Render("Calculando indicadores..."))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		m.viewport.View(),
		m.footer(),
	)
}

func (m Model) header() string {
	title := m.theme.Title.Render("💰 Dashboard de Fluxo de Caixa")

	filters := []string{
		m.filterLabel("Mês", dimMonth),
		m.filterLabel("Tipo", dimType),
		m.filterLabel("Categoria", dimCategory),
		m.filterLabel("Subcategoria", dimSubcategory),
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(filters, "  "))
}

func (m Model) filterLabel(name string, d dimension) string {
	value := m.filters.label(d)
	style := m.theme.FilterValue
	if value == AllLabel {
		style = m.theme.FilterAll
	}
	return m.theme.FilterLabel.Render(name+": ") + style.Render(value)
}

func (m Model) footer() string {
	hits, misses, _ := m.service.Stats()
	status := fmt.Sprintf("%d de %d transações · cache %d/%d · %3.f%%",
		m.snapshot.View.Len(), m.ledger.Len(), hits, hits+misses, m.viewport.ScrollPercent()*100)
	if len(m.warnings) > 0 {
		status += " · ⚠️ " + strings.Join(m.warnings, "; ")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.StatusBar.Width(m.width).Render(status),
		m.help.View(m.keymap),
	)
}
