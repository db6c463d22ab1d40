// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package segmentation

import (
	"image"
	"image/color"

	"gopkg.in/yaml.v3"
)

// ClassColor associates a class name with the color used to render it.
type ClassColor struct {
	Name  string
	Color color.RGBA
}

// ColorEncoding is the ordered class table of a dataset: the position of each entry is its class index.
//
// Tables are static per dataset variant, never mutate them.
type ColorEncoding []ClassColor

// Len returns the number of classes.
func (e ColorEncoding) Len() int { return len(e) }

// Names returns the class names, in index order.
func (e ColorEncoding) Names() []string {
	names := make([]string, len(e))
	for ii, c := range e {
		names[ii] = c.Name
	}
	return names
}

// Index returns the class index of the given name.
func (e ColorEncoding) Index(name string) (int, bool) {
	for ii, c := range e {
		if c.Name == name {
			return ii, true
		}
	}
	return -1, false
}

// Color of class index idx. Indices outside the table are rendered black.
func (e ColorEncoding) Color(idx int) color.RGBA {
	if idx < 0 || idx >= len(e) {
		return color.RGBA{A: 0xFF}
	}
	return e[idx].Color
}

// Palette returns the table as a color.Palette, so masks can be encoded as *image.Paletted.
func (e ColorEncoding) Palette() color.Palette {
	p := make(color.Palette, len(e))
	for ii, c := range e {
		p[ii] = c.Color
	}
	return p
}

// Colorize renders a class-index mask into RGB, using the table colors.
//
// The mask is read as a *image.Gray, see ToMask. Unknown indices are rendered black.
func (e ColorEncoding) Colorize(mask image.Image) *image.RGBA {
	gray := toGray(mask)
	bounds := gray.Bounds()
	out := image.NewRGBA(bounds)
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := e.Color(int(gray.Pix[y*gray.Stride+x]))
			pos := y*out.Stride + 4*x
			out.Pix[pos] = c.R
			out.Pix[pos+1] = c.G
			out.Pix[pos+2] = c.B
			out.Pix[pos+3] = 0xFF
		}
	}
	return out
}

type yamlClass struct {
	Name  string   `yaml:"name"`
	Color [3]uint8 `yaml:"color,flow"`
}

// MarshalYAML implements yaml.Marshaler: an ordered list of `{name, color: [r, g, b]}`.
func (e ColorEncoding) MarshalYAML() (any, error) {
	classes := make([]yamlClass, len(e))
	for ii, c := range e {
		classes[ii] = yamlClass{Name: c.Name, Color: [3]uint8{c.Color.R, c.Color.G, c.Color.B}}
	}
	return classes, nil
}

// UnmarshalYAML implements yaml.Unmarshaler, the inverse of MarshalYAML.
func (e *ColorEncoding) UnmarshalYAML(node *yaml.Node) error {
	var classes []yamlClass
	if err := node.Decode(&classes); err != nil {
		return err
	}
	*e = make(ColorEncoding, len(classes))
	for ii, c := range classes {
		(*e)[ii] = ClassColor{Name: c.Name, Color: color.RGBA{R: c.Color[0], G: c.Color[1], B: c.Color[2], A: 0xFF}}
	}
	return nil
}
