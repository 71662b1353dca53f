package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panelstitch/panelstitch/pkg/pipeline"
)

// defaultOutput is the output base used when -o is not given.
const defaultOutput = "figure.svg"

// composeCommand creates the compose command, the main entry point of the tool.
//
// Default settings:
//   - max-per-row: 2
//   - col-gap, row-gap, pad: 10 user units
//   - align: on, mode xlabel
//   - labels: on, starting at 'a', font size 12
func (c *CLI) composeCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
		noAlign    bool
		noLabels   bool
	)
	opts := pipeline.Options{
		MaxPerRow:     pipeline.DefaultMaxPerRow,
		ColGap:        pipeline.DefaultColGap,
		RowGap:        pipeline.DefaultRowGap,
		OuterPad:      pipeline.DefaultOuterPad,
		AlignMode:     pipeline.DefaultAlignMode,
		LabelFirst:    pipeline.DefaultLabelFirst,
		LabelFontSize: pipeline.DefaultLabelFontSize,
	}

	cmd := &cobra.Command{
		Use:   "compose [panel.svg...]",
		Short: "Compose panel SVGs into a multi-panel figure",
		Long: `Compose panel SVGs into a multi-panel figure.

Panels are arranged left to right, top to bottom into a grid, scaled to fit
their cells, labeled, and aligned along their x-axis labels. A publisher
preset (--publisher/--layout) or an explicit width (--width-mm) fits the
figure to a physical page width.

Panel analysis results are cached locally for faster subsequent runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Inputs = args
			opts.Align = !noAlign
			opts.AddLabels = !noLabels
			opts.Formats = parseFormats(formatsStr)
			return c.runCompose(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: figure.svg)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-analyze panels, ignoring cached results")

	// Page flags
	cmd.Flags().StringVar(&opts.Publisher, "publisher", "", "publisher preset (see 'panelstitch publishers')")
	cmd.Flags().StringVar(&opts.Layout, "layout", "", "preset layout: single, double, full")
	cmd.Flags().StringVar(&opts.PresetFile, "preset-file", "", "TOML file with additional publisher presets")
	cmd.Flags().Float64Var(&opts.WidthMM, "width-mm", 0, "explicit page width in millimeters")
	cmd.Flags().Float64Var(&opts.HeightMM, "height-mm", 0, "explicit page height in millimeters")

	// Grid flags
	cmd.Flags().IntVar(&opts.MaxPerRow, "max-per-row", opts.MaxPerRow, "maximum panels per row")
	cmd.Flags().Float64Var(&opts.ColGap, "col-gap", opts.ColGap, "horizontal gap between panels (user units)")
	cmd.Flags().Float64Var(&opts.RowGap, "row-gap", opts.RowGap, "vertical gap between panels (user units)")
	cmd.Flags().Float64Var(&opts.OuterPad, "pad", opts.OuterPad, "outer page padding (user units)")
	cmd.Flags().BoolVar(&opts.AutoMatchScale, "auto-match-scale", false, "scale panels so x-axis spines match the reference panel")
	cmd.Flags().IntVar(&opts.ScaleReference, "scale-reference", 0, "index of the reference panel for --auto-match-scale")

	// Alignment flags
	cmd.Flags().BoolVar(&noAlign, "no-align", false, "skip alignment post-processing")
	cmd.Flags().StringVar(&opts.AlignMode, "align-mode", opts.AlignMode, "alignment feature: xlabel (default), patch-bottom")
	cmd.Flags().BoolVar(&opts.EqualizeX, "equalize-x", false, "rescale panels in a row to equal x-spine lengths")
	cmd.Flags().BoolVar(&opts.EqualizeY, "equalize-y", false, "rescale panels in a row to equal y-spine lengths")

	// Label flags
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "skip panel labels")
	cmd.Flags().StringVar(&opts.LabelFirst, "label-first", opts.LabelFirst, "first panel label character")
	cmd.Flags().Float64Var(&opts.LabelFontSize, "label-font-size", opts.LabelFontSize, "panel label font size")

	return cmd
}

// runCompose executes the pipeline and writes the requested artifacts.
func (c *CLI) runCompose(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Composing %d panels...", len(opts.Inputs)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Compose failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		if w.Panel != "" {
			printWarning("%s: %s", w.Panel, w.Message)
		} else {
			printWarning("%s", w.Message)
		}
	}

	printSuccess("Figure composed")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result, result.CacheInfo.AnalysisHits > 0)
	if first := firstLabel(result); first != "" {
		printNewline()
		printNextStep("Extract a panel", fmt.Sprintf("panelstitch extract %s %s", paths[0], first))
	}

	return nil
}

// writeArtifacts writes each rendered format to its output path and returns
// the paths written, SVG first.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	if output == "" {
		output = defaultOutput
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))

	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := output
		if len(formats) > 1 || filepath.Ext(output) != "."+format {
			path = base + "." + format
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func firstLabel(result *pipeline.Result) string {
	for _, p := range result.Panels {
		if p.Label != "" {
			return p.Label
		}
	}
	return ""
}
