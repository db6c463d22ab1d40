// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/roadseg/segdata/pkg/datasets/segmentation"
	"k8s.io/klog/v2"
)

// colorizedName returns the output name of the colorized labelPath: its path relative to labelDir,
// so labels with the same name in different sub-folders (e.g. cities) don't collide, with the
// extension replaced by "_color.png".
func colorizedName(labelDir, labelPath string) string {
	rel, err := filepath.Rel(labelDir, labelPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(labelPath)
	}
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + "_color.png"
}

// colorizeLabels renders the labels of the first maxItems pairs of ds (all if maxItems <= 0) with
// the dataset colors, saving them as PNG files in outputDir. If blend is in (0, 1], the colorized label
// is blended over the image with that opacity.
//
// It returns the paths of the saved files.
func colorizeLabels(w io.Writer, ds *segmentation.Dataset, outputDir string, maxItems int, blend float64) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %q", outputDir)
	}
	numItems := ds.Len()
	if maxItems > 0 && maxItems < numItems {
		numItems = maxItems
	}
	encoding := ds.Encoding()
	labelDir := ds.Layout().LabelDir(ds.Root(), ds.Mode())
	bar := newProgressBar(w, numItems, "Colorizing")
	outputs := make([]string, 0, numItems)
	for ii := range numItems {
		img, label, err := ds.Item(ii)
		if err != nil {
			return nil, err
		}
		_, labelPath, _ := ds.Paths(ii)
		colored := encoding.Colorize(label)
		var output image.Image = colored
		if blend > 0 {
			if !img.Bounds().Size().Eq(colored.Bounds().Size()) {
				return nil, errors.Errorf("image and label %d have different sizes (%s and %s), cannot blend",
					ii, img.Bounds().Size(), colored.Bounds().Size())
			}
			output = imaging.Overlay(img, colored, image.Point{}, blend)
		}
		outputPath := filepath.Join(outputDir, colorizedName(labelDir, labelPath))
		if err = os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create output directory for %q", outputPath)
		}
		if err = imaging.Save(output, outputPath); err != nil {
			return nil, errors.Wrapf(err, "failed to save colorized label %q", outputPath)
		}
		outputs = append(outputs, outputPath)
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	klog.V(1).Infof("saved %d colorized labels to %q", len(outputs), outputDir)
	return outputs, nil
}
