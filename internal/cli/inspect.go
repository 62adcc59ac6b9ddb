package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/energydiagram/pkg/diagram"
	docio "github.com/matzehuels/energydiagram/pkg/io"
	"github.com/matzehuels/energydiagram/pkg/pipeline"
)

// inspectCommand creates the inspect command, which prints a document's
// levels, labels and links with their computed geometry.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the levels, labels and links of a document",
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

			fmt.Println(StyleTitle.Render(displayName(doc, args[0])))
			s := d.Stats()
			printKeyValue("Levels", strconv.Itoa(s.Levels))
			printKeyValue("Labels", strconv.Itoa(s.Labels))
			printKeyValue("Links", strconv.Itoa(s.Links))
			printKeyValue("Positions", strconv.Itoa(s.Positions))
			printKeyValue("Energy", fmt.Sprintf("%s … %s", formatEnergy(s.MinEnergy), formatEnergy(s.MaxEnergy)))

			if len(l.Levels) > 0 {
				printNewline()
				fmt.Println(levelTable(l))
			}
			if len(l.Texts) > 0 {
				printNewline()
				fmt.Println(labelTable(d.Labels(), l))
			}
			if len(l.Links) > 0 {
				printNewline()
				fmt.Println(linkTable(l))
			}
			return nil
		},
	}
}

// =============================================================================
// Tables
// =============================================================================

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
}

func levelTable(l diagram.Layout) string {
	t := newTable("#", "Energy", "Position", "x", "Color", "Style")
	for _, s := range l.Levels {
		t.Row(
			strconv.Itoa(s.ID),
			formatEnergy(s.Energy),
			strconv.Itoa(s.Position),
			fmt.Sprintf("%.1f–%.1f", s.X1, s.X2),
			s.Color,
			string(s.Style),
		)
	}
	return t.Render()
}

func labelTable(labels []diagram.Label, l diagram.Layout) string {
	t := newTable("Text", "Energy", "Position", "Placement", "Anchor")
	for i, tx := range l.Texts {
		t.Row(
			orDash(tx.Text),
			formatEnergy(labels[i].Energy),
			strconv.Itoa(labels[i].Position),
			string(tx.Placement),
			fmt.Sprintf("(%.1f, %s)", tx.X, formatEnergy(tx.Y)),
		)
	}
	return t.Render()
}

func linkTable(l diagram.Layout) string {
	energy := make(map[int]float64, len(l.Levels))
	for _, s := range l.Levels {
		energy[s.ID] = s.Energy
	}
	t := newTable("From", "To", "ΔE", "Style", "Alpha")
	for _, s := range l.Links {
		t.Row(
			strconv.Itoa(s.From),
			strconv.Itoa(s.To),
			formatEnergy(energy[s.To]-energy[s.From]),
			string(s.Style),
			strconv.FormatFloat(s.Alpha, 'g', -1, 64),
		)
	}
	return t.Render()
}

func formatEnergy(e float64) string {
	return strconv.FormatFloat(e, 'f', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
