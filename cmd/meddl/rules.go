package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/example/go-meddl/internal/rules"
)

func newRulesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show statistics of the configured rule table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			t, name, err := rules.LoadOrDefault(cfg.Rules.Path)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(t.Stats())
			}
			return renderRules(cmd.OutOrStdout(), name, t.Stats())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print statistics as JSON")

	return cmd
}

func renderRules(w io.Writer, name string, st rules.Stats) error {
	interlude := "no"
	if st.Interlude {
		interlude = "yes"
	}

	rows := [][]string{
		{"translations", strconv.Itoa(st.Dictionary)},
		{"candidates", strconv.Itoa(st.Candidates)},
		{"suffixes", strconv.Itoa(st.Suffixes)},
		{"twists", strconv.Itoa(st.Twists)},
		{"prefixes", strconv.Itoa(st.Prefixes)},
		{"ignored", strconv.Itoa(st.Ignored)},
		{"dot", strconv.Itoa(st.Dot)},
		{"exclamationMark", strconv.Itoa(st.ExclamationMark)},
		{"questionMark", strconv.Itoa(st.QuestionMark)},
		{"interlude", interlude},
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Section", "Entries").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 1:
				return styleNumber
			default:
				return styleValue
			}
		})

	_, err := fmt.Fprintf(w, "%s %s\n%s\n", styleTitle.Render("Rule table"), styleDim.Render(name), tbl.Render())
	return err
}
