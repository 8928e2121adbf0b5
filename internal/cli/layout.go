package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/joinpreview/pkg/fonts"
	"github.com/matzehuels/joinpreview/pkg/roster"
)

// layoutCommand creates the layout command, which prints which players
// fit on the card without rendering it.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		card   cardFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layout [input]",
		Short: "Show which players fit on the card",
		Example: `  joinpreview layout world.toml
  joinpreview layout -p alice -p bob -p carol --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := card.input(cmd, inputArg(args))
			if err != nil {
				return err
			}
			if err := fonts.Load(); err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			measure := roster.ChipMeasure(fonts.Default())
			d := roster.Layout(in.Players, roster.DefaultBox, in.ShowAll, measure)
			a := roster.Arrange(d, roster.DefaultBox, measure)
			prog.done("Laid out roster", "visible", len(d.Visible), "hidden", d.Hidden)

			if asJSON {
				enc := json.NewEncoder(c.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(layoutReport{Decision: d, Arrangement: a})
			}
			printLayout(c.Out, d, a)
			return nil
		},
	}

	card.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the decision and chip positions as JSON")

	return cmd
}

type layoutReport struct {
	Decision    roster.Decision    `json:"decision"`
	Arrangement roster.Arrangement `json:"arrangement"`
}

func printLayout(w io.Writer, d roster.Decision, a roster.Arrangement) {
	if d.Total() == 0 {
		printInfo(w, "No players")
		return
	}

	rows := make([][]string, 0, len(a.Chips)+1)
	for i, p := range a.Chips {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Label,
			strconv.Itoa(p.Row + 1),
			fmt.Sprintf("%.0f", p.Width),
		})
	}
	if a.Overflow != nil {
		rows = append(rows, []string{"", a.Overflow.Label, strconv.Itoa(a.Overflow.Row + 1), fmt.Sprintf("%.0f", a.Overflow.Width)})
	}
	overflowRow := len(a.Chips)

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Player", "Row", "Width").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case a.Overflow != nil && row == overflowRow:
				return lipgloss.NewStyle().Foreground(colorYellow)
			case col == 0 || col >= 2:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	fmt.Fprintln(w, t.Render())
	if d.Hidden > 0 {
		printDetail(w, "%d of %d players shown, %d hidden", len(d.Visible), d.Total(), d.Hidden)
	} else {
		printDetail(w, "all %d players shown on %d rows", d.Total(), a.Rows)
	}
}
