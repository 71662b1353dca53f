// Package publisher provides physical page size presets for supported
// journals and the unit conversion between millimeters and SVG user units.
//
// Presets are embedded as TOML and can be extended or overridden with a
// user-supplied preset file. Unit conversion is an explicit function of the
// fixed 90 DPI rendering assumption, threaded through callers rather than
// inferred ambient state.
package publisher

import (
	_ "embed"
	"os"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/panelstitch/panelstitch/pkg/errors"
)

// DPI is the dot density assumed when converting physical sizes to SVG
// user units.
const DPI = 90.0

// MMToPx converts millimeters to SVG user units at [DPI].
func MMToPx(mm float64) float64 {
	return mm * DPI / 25.4
}

// PxToMM converts SVG user units to millimeters at [DPI].
func PxToMM(px float64) float64 {
	return px * 25.4 / DPI
}

// Size is a physical target size. A zero HeightMM means the publisher
// constrains width only and height follows the content.
type Size struct {
	WidthMM  float64 `toml:"width_mm" json:"width_mm"`
	HeightMM float64 `toml:"height_mm" json:"height_mm,omitempty"`
}

// WidthPx returns the target width in SVG user units.
func (s Size) WidthPx() float64 { return MMToPx(s.WidthMM) }

// HeightPx returns the target height in SVG user units, or 0 when
// unconstrained.
func (s Size) HeightPx() float64 {
	if s.HeightMM == 0 {
		return 0
	}
	return MMToPx(s.HeightMM)
}

// Catalog maps publisher names to their per-layout sizes.
type Catalog struct {
	presets map[string]map[string]Size
}

//go:embed presets.toml
var builtinTOML []byte

var (
	builtinOnce sync.Once
	builtin     *Catalog
)

// Builtin returns the embedded preset catalog.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		c := &Catalog{}
		// The embedded table is validated by tests; a decode failure here
		// is a build defect.
		if err := toml.Unmarshal(builtinTOML, &c.presets); err != nil {
			panic(err)
		}
		builtin = c
	})
	return builtin
}

// Clone returns a deep copy, so user overrides never mutate the builtin
// catalog.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{presets: make(map[string]map[string]Size, len(c.presets))}
	for pub, layouts := range c.presets {
		m := make(map[string]Size, len(layouts))
		for name, size := range layouts {
			m[name] = size
		}
		out.presets[pub] = m
	}
	return out
}

// MergeFile overlays presets from a user TOML file. New publishers are
// added; existing publisher/layout pairs are replaced.
func (c *Catalog) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "preset file %s", path)
		}
		return err
	}

	var overlay map[string]map[string]Size
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing preset file %s", path)
	}

	for pub, layouts := range overlay {
		if c.presets[pub] == nil {
			c.presets[pub] = map[string]Size{}
		}
		for name, size := range layouts {
			c.presets[pub][name] = size
		}
	}
	return nil
}

// Lookup resolves a publisher/layout pair to its physical size.
func (c *Catalog) Lookup(pub, layout string) (Size, error) {
	layouts, ok := c.presets[pub]
	if !ok {
		return Size{}, errors.New(errors.ErrCodeInvalidPublisher,
			"unknown publisher %q (known: %v)", pub, c.Publishers())
	}
	size, ok := layouts[layout]
	if !ok {
		return Size{}, errors.New(errors.ErrCodeInvalidLayout,
			"publisher %q has no layout %q (known: %v)", pub, layout, c.Layouts(pub))
	}
	return size, nil
}

// Publishers returns the known publisher names, sorted.
func (c *Catalog) Publishers() []string {
	names := make([]string, 0, len(c.presets))
	for name := range c.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Layouts returns the layout names available for a publisher, sorted.
func (c *Catalog) Layouts(pub string) []string {
	layouts := c.presets[pub]
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
