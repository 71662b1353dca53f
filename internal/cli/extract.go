package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panelstitch/panelstitch/pkg/extract"
	"github.com/panelstitch/panelstitch/pkg/svgdom"
)

// extractCommand creates the extract command for pulling panels out of a
// composed figure.
func (c *CLI) extractCommand() *cobra.Command {
	var (
		output   string
		listOnly bool
	)

	cmd := &cobra.Command{
		Use:   "extract [figure.svg] [panel]",
		Short: "Extract a single panel from a composed figure",
		Long: `Extract a single panel from a composed figure.

The panel is selected by its label ("a") or 1-based position ("1"). The
panel's placement transform is baked in and the panel is moved to the
origin, so the output is a standalone SVG sized to the panel.

With --list, the available panels are printed instead. Without a panel
argument, an interactive picker is shown.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := svgdom.ParseFile(args[0])
			if err != nil {
				return err
			}

			if listOnly {
				return printPanelList(extract.List(doc))
			}

			ident := ""
			if len(args) == 2 {
				ident = args[1]
			} else {
				ident, err = pickPanel(extract.List(doc))
				if err != nil {
					return err
				}
				if ident == "" {
					return nil // picker dismissed
				}
			}
			return c.runExtract(doc, args[0], ident, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <figure>_<panel>.svg)")
	cmd.Flags().BoolVarP(&listOnly, "list", "l", false, "list the panels in the figure")

	return cmd
}

// runExtract extracts one panel and writes it next to the input.
func (c *CLI) runExtract(doc *svgdom.Document, input, ident, output string) error {
	panelDoc, warnings, err := extract.Panel(doc, ident)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		printWarning("%s", w)
	}

	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		output = fmt.Sprintf("%s_%s.svg", base, strings.ToLower(ident))
	}
	if err := panelDoc.WriteFile(output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Extracted panel %s", ident)
	printFile(output)
	return nil
}

// printPanelList prints the panels found in a figure.
func printPanelList(infos []extract.Info) error {
	if len(infos) == 0 {
		printInfo("No panels found")
		return nil
	}
	for _, info := range infos {
		label := info.Label
		if label == "" {
			label = "—"
		}
		printKeyValue(fmt.Sprintf("%d  %s", info.Index, label), info.ID)
	}
	return nil
}
