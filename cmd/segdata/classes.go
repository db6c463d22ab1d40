// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/roadseg/segdata/pkg/datasets/segmentation"
	"gopkg.in/yaml.v3"
)

// reportClasses prints the class table of the dataset, with a color swatch per class.
func reportClasses(w io.Writer, encoding segmentation.ColorEncoding) {
	fmt.Fprintln(w, titleStyle.Render("Classes"))
	table := newTable(lipgloss.Right, lipgloss.Left)
	table.Table.Headers("Index", "Name", "RGB", "Color")
	for ii, class := range encoding {
		c := class.Color
		table.Row(false, strconv.Itoa(ii), class.Name, fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B), swatch(c))
	}
	fmt.Fprintln(w, table.Table.Render())
}

// writeClassesYAML writes the class table as YAML.
func writeClassesYAML(w io.Writer, encoding segmentation.ColorEncoding) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(encoding); err != nil {
		return errors.Wrap(err, "failed to encode classes as YAML")
	}
	return enc.Close()
}
