package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/taskshare/taskshare/internal/listflags"
	"github.com/taskshare/taskshare/todo"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize tasks",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsJSON bool

func init() {
	rootCmd.AddCommand(statsCmd)
	listflags.AddJSONFlag(statsCmd, &statsJSON)
}

var statBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	Padding(0, 1).
	Width(12).
	Align(lipgloss.Center)

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	stats := todo.ComputeStats(a.store.Tasks(), a.store.ListShared())
	if statsJSON {
		return encodeJSON(cmd.OutOrStdout(), stats)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderStats(stats))
	return nil
}

func renderStats(stats todo.Stats) string {
	box := func(label string, value int) string {
		return statBoxStyle.Render(headingStyle.Render(strconv.Itoa(value)) + "\n" + label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("Total", stats.Total),
		box("Active", stats.Active),
		box("Completed", stats.Completed),
		box("Shared", stats.Shared),
	)
}
