package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/panelstitch/panelstitch/pkg/errors"
	"github.com/panelstitch/panelstitch/pkg/extract"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// PanelListModel is the bubbletea model for interactive panel selection.
type PanelListModel struct {
	Panels   []extract.Info
	Cursor   int
	Selected *extract.Info
}

// NewPanelListModel creates a new panel list model.
func NewPanelListModel(panels []extract.Info) PanelListModel {
	return PanelListModel{Panels: panels}
}

func (m PanelListModel) Init() tea.Cmd {
	return nil
}

func (m PanelListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Panels)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Panels[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m PanelListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Panel"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := [][]string{}
	for i, info := range m.Panels {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		label := info.Label
		if label == "" {
			label = "—"
		}
		rows = append(rows, []string{cursor, fmt.Sprintf("%d", info.Index), label, info.ID})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Label", "Group ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	return b.String()
}

// pickPanel shows the interactive panel picker and returns the chosen panel
// identifier, or "" when the picker was dismissed.
func pickPanel(infos []extract.Info) (string, error) {
	if len(infos) == 0 {
		return "", errors.New(errors.ErrCodePanelNotFound, "no panels found in the figure")
	}

	p := tea.NewProgram(NewPanelListModel(infos))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("run panel picker: %w", err)
	}

	m, ok := final.(PanelListModel)
	if !ok || m.Selected == nil {
		return "", nil
	}
	if m.Selected.Label != "" {
		return m.Selected.Label, nil
	}
	return fmt.Sprintf("%d", m.Selected.Index), nil
}
