package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/HerbHall/storefront/internal/theme"
)

var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "Preview every theme in the catalog",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for i, t := range theme.Themes() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, theme.Preview(t))
			}
			fmt.Fprintln(out, dimStyle.Render("Use 'storefront css <id>' to print a stylesheet."))
		},
	}
}

func newCSSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "css <id>",
		Short: "Print the stylesheet for a theme",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return themeIDs(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id := theme.ID(args[0])
			t, ok := theme.Lookup(id)
			if !ok {
				return fmt.Errorf("unknown theme %q (known: %s)", args[0], strings.Join(themeIDs(), ", "))
			}
			fmt.Fprint(cmd.OutOrStdout(), theme.RenderCSS(theme.MarkerFor(id), theme.Variables(t)))
			return nil
		},
	}
}

func themeIDs() []string {
	ids := theme.IDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return names
}
