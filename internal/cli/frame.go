package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panelstitch/panelstitch/pkg/errors"
	"github.com/panelstitch/panelstitch/pkg/geom"
	"github.com/panelstitch/panelstitch/pkg/publisher"
	"github.com/panelstitch/panelstitch/pkg/svgdom"
)

// frameCommand creates the frame command for fitting a single panel to a
// publisher preset.
func (c *CLI) frameCommand() *cobra.Command {
	var (
		output     string
		pub        string
		layout     string
		presetFile string
		widthMM    float64
		heightMM   float64
	)

	cmd := &cobra.Command{
		Use:   "frame [panel.svg]",
		Short: "Fit a single panel to a publisher width",
		Long: `Fit a single panel to a publisher width.

The panel's content is wrapped in a uniformly scaled group so its resolved
bounding box exactly spans the target width, and the document's width,
height and viewBox are updated to the framed size. Use this for standalone
figures that skip composition.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pub == "" && widthMM == 0 {
				return errors.New(errors.ErrCodeInvalidConfig,
					"either --publisher/--layout or --width-mm is required")
			}
			if (pub == "") != (layout == "") {
				return errors.New(errors.ErrCodeInvalidConfig,
					"publisher and layout must be set together")
			}
			return c.runFrame(args[0], output, pub, layout, presetFile, widthMM, heightMM)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <panel>_framed.svg)")
	cmd.Flags().StringVar(&pub, "publisher", "", "publisher preset (see 'panelstitch publishers')")
	cmd.Flags().StringVar(&layout, "layout", "", "preset layout: single, double, full")
	cmd.Flags().StringVar(&presetFile, "preset-file", "", "TOML file with additional publisher presets")
	cmd.Flags().Float64Var(&widthMM, "width-mm", 0, "explicit target width in millimeters")
	cmd.Flags().Float64Var(&heightMM, "height-mm", 0, "explicit target height in millimeters")

	return cmd
}

// runFrame scales the panel content to the target physical size.
func (c *CLI) runFrame(input, output, pub, layout, presetFile string, widthMM, heightMM float64) error {
	catalog := publisher.Builtin()
	if presetFile != "" {
		catalog = catalog.Clone()
		if err := catalog.MergeFile(presetFile); err != nil {
			return err
		}
	}

	var size publisher.Size
	if pub != "" {
		var err error
		size, err = catalog.Lookup(pub, layout)
		if err != nil {
			return err
		}
	}
	if widthMM > 0 {
		size.WidthMM = widthMM
	}
	if heightMM > 0 {
		size.HeightMM = heightMM
	}

	doc, err := svgdom.ParseFile(input)
	if err != nil {
		return err
	}

	box, warnings := svgdom.Bounds(doc.Root, geom.Identity())
	for _, w := range warnings {
		printWarning("%s", w)
	}
	if box.IsEmpty() || box.Width() <= 0 {
		return errors.New(errors.ErrCodeEmptyGeometry,
			"panel %s has no resolvable geometry", input)
	}

	scale := size.WidthPx() / box.Width()
	if size.HeightPx() > 0 && box.Height() > 0 {
		if h := size.HeightPx() / box.Height(); h < scale {
			scale = h
		}
	}

	frameContent(doc, box, scale)

	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		output = base + "_framed.svg"
	}
	if err := doc.WriteFile(output); err != nil {
		return err
	}

	c.Logger.Info("framed panel", "input", input, "scale", scale,
		"width_mm", size.WidthMM)

	printSuccess("Framed to %.1f mm wide (scale %s)", size.WidthMM, trimFloat(scale))
	printFile(output)
	return nil
}

// frameContent wraps the document content in a scaled group mapping the
// resolved box to the origin, and resizes the document to the framed box.
func frameContent(doc *svgdom.Document, box geom.Box, scale float64) {
	m := geom.Scale(scale, scale).Mul(geom.Translate(-box.MinX, -box.MinY))

	wrap := svgdom.NewElement("g")
	wrap.SetAttr("transform", fmt.Sprintf("matrix(%s, %s, %s, %s, %s, %s)",
		trimFloat(m.A), trimFloat(m.B), trimFloat(m.C),
		trimFloat(m.D), trimFloat(m.E), trimFloat(m.F)))
	wrap.Append(doc.Root.Children...)

	doc.Root.Children = []*svgdom.Element{wrap}
	doc.SetSize(scale*box.Width(), scale*box.Height())
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
