package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SQU1DMAN6/sitehl/internal/highlight"
)

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List the supported languages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return listLanguages(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(langsCmd)
}

// listLanguages writes one row per language: name, aliases and extensions.
func listLanguages(w io.Writer) error {
	r := lipgloss.NewRenderer(w)
	name := r.NewStyle().Width(12)
	aliases := r.NewStyle().Width(24)

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top,
		name.Render("LANGUAGE"), aliases.Render("ALIASES"), "EXTENSIONS")}
	for _, l := range highlight.Languages() {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			name.Render(l.String()),
			aliases.Render(orDash(l.Aliases())),
			orDash(l.Extensions())))
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(w, strings.TrimRight(row, " ")); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

func orDash(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ", ")
}
