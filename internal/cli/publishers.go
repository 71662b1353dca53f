package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/panelstitch/panelstitch/pkg/publisher"
)

// publishersCommand creates the publishers command listing the width presets.
func (c *CLI) publishersCommand() *cobra.Command {
	var presetFile string

	cmd := &cobra.Command{
		Use:   "publishers",
		Short: "List the known publisher width presets",
		Long: `List the known publisher width presets.

Each preset maps a layout (single, double, full) to a physical figure width
in millimeters. Select one with 'compose --publisher <name> --layout <layout>'.
A TOML file given with --preset-file is overlaid on the builtin presets.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := publisher.Builtin()
			if presetFile != "" {
				catalog = catalog.Clone()
				if err := catalog.MergeFile(presetFile); err != nil {
					return err
				}
			}
			printPresetTable(catalog)
			return nil
		},
	}

	cmd.Flags().StringVar(&presetFile, "preset-file", "", "TOML file with additional publisher presets")

	return cmd
}

// printPresetTable renders the preset catalog as one row per publisher/layout.
func printPresetTable(catalog *publisher.Catalog) {
	rows := [][]string{}
	for _, pub := range catalog.Publishers() {
		for _, layout := range catalog.Layouts(pub) {
			size, err := catalog.Lookup(pub, layout)
			if err != nil {
				continue
			}
			height := "—"
			if size.HeightMM > 0 {
				height = fmt.Sprintf("%.1f", size.HeightMM)
			}
			rows = append(rows, []string{
				pub,
				layout,
				fmt.Sprintf("%.1f", size.WidthMM),
				height,
				fmt.Sprintf("%.0f", size.WidthPx()),
			})
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Publisher", "Layout", "Width (mm)", "Height (mm)", "Width (px)").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		})

	fmt.Println(t)
}
