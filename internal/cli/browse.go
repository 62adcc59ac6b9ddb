package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/energydiagram/pkg/diagram"
	docio "github.com/matzehuels/energydiagram/pkg/io"
	"github.com/matzehuels/energydiagram/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [file]",
		Short: "Explore the levels of a document interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := docio.ImportFile(args[0])
			if err != nil {
				return err
			}
			applyLayoutConfig(c.config, doc)
			d, _, err := pipeline.Build(cmd.Context(), doc)
			if err != nil {
				return err
			}
			l, err := pipeline.Layout(cmd.Context(), d)
			if err != nil {
				return err
			}
			if len(l.Levels) == 0 {
				printInfo("No levels to browse")
				return nil
			}

			m := NewLevelBrowserModel(displayName(doc, args[0]), d.Labels(), l)
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// =============================================================================
// LevelBrowserModel - Read-only level browser
// =============================================================================

// LevelEntry is one browsable level with the labels at its anchor and the
// links that touch it.
type LevelEntry struct {
	Level  diagram.LevelSegment
	Labels []string
	Links  []LinkRef
}

// LinkRef is a link seen from one of its levels.
type LinkRef struct {
	Other int     // ID of the level at the other end
	Delta float64 // energy of the other level minus this one
}

// LevelBrowserModel is the bubbletea model for browsing levels.
type LevelBrowserModel struct {
	Title   string
	Entries []LevelEntry
	Cursor  int
	Height  int
	Offset  int
	Detail  bool
}

// NewLevelBrowserModel creates a browser over the levels of l. labels are
// the diagram's labels in layout order.
func NewLevelBrowserModel(title string, labels []diagram.Label, l diagram.Layout) LevelBrowserModel {
	entries := make([]LevelEntry, len(l.Levels))
	byID := make(map[int]int, len(l.Levels))
	for i, s := range l.Levels {
		entries[i].Level = s
		byID[s.ID] = i
	}
	for _, lb := range labels {
		for i := range entries {
			s := entries[i].Level
			if s.Position == lb.Position && s.Energy == lb.Energy && lb.Text != "" {
				entries[i].Labels = append(entries[i].Labels, lb.Text)
			}
		}
	}
	for _, k := range l.Links {
		a, okA := byID[k.From]
		b, okB := byID[k.To]
		if !okA || !okB {
			continue
		}
		ea, eb := entries[a].Level.Energy, entries[b].Level.Energy
		entries[a].Links = append(entries[a].Links, LinkRef{Other: k.To, Delta: eb - ea})
		entries[b].Links = append(entries[b].Links, LinkRef{Other: k.From, Delta: ea - eb})
	}
	return LevelBrowserModel{Title: title, Entries: entries, Height: 15}
}

func (m LevelBrowserModel) Init() tea.Cmd {
	return nil
}

func (m LevelBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-14, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m LevelBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(e.Level.ID),
			formatEnergy(e.Level.Energy),
			strconv.Itoa(e.Level.Position),
			orDash(strings.Join(e.Labels, ", ")),
			strconv.Itoa(len(e.Links)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Energy", "Position", "Labels", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 5 && m.Entries[m.Offset+row].Links == nil {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	if m.Detail && m.Cursor < len(m.Entries) {
		b.WriteString("\n\n")
		b.WriteString(m.detailView(m.Entries[m.Cursor]))
	}

	return b.String()
}

func (m LevelBrowserModel) detailView(e LevelEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StyleHighlight.Render("level "+strconv.Itoa(e.Level.ID)), listDimStyle.Render(fmt.Sprintf("x %.1f–%.1f", e.Level.X1, e.Level.X2)))
	if e.Level.Color != "" {
		fmt.Fprintf(&b, "  color %s  style %s\n", e.Level.Color, e.Level.Style)
	}
	if len(e.Links) == 0 {
		b.WriteString(listDimStyle.Render("  no links"))
		return b.String()
	}
	for _, k := range e.Links {
		fmt.Fprintf(&b, "  %s level %d  %s\n", iconArrow, k.Other, StyleNumber.Render(fmt.Sprintf("ΔE %+g", k.Delta)))
	}
	return strings.TrimRight(b.String(), "\n")
}
