package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// AtomListModel - Interactive atom browser
// =============================================================================

// AtomRow is one atom summarized for display.
type AtomRow struct {
	Label     string
	Charge    string
	Position  string
	Bonds     string
	LonePairs string
	OnRing    bool
}

// AtomListModel is the bubbletea model for browsing a molecule's atoms.
type AtomListModel struct {
	Formula string
	Rows    []AtomRow
	Cursor  int
	Height  int
	Offset  int
}

// NewAtomListModel creates a new atom list model.
func NewAtomListModel(formula string, rows []AtomRow) AtomListModel {
	return AtomListModel{
		Formula: formula,
		Rows:    rows,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m AtomListModel) Init() tea.Cmd {
	return nil
}

func (m AtomListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m AtomListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Atoms"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(m.Formula))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		ring := ""
		if r.OnRing {
			ring = "●"
		}

		rows = append(rows, []string{cursor, r.Label, r.Charge, r.Position, r.Bonds, r.LonePairs, ring})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Atom", "Charge", "Position", "Bonds", "Pairs", "Ring").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if actualIdx == m.Cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if col == 3 || col == 5 {
				return base.Foreground(colorGray)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
