// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/roadseg/segdata/pkg/datasets/camvid"
	"github.com/roadseg/segdata/pkg/datasets/cityscapes"
	"github.com/roadseg/segdata/pkg/datasets/deepdrive"
	"github.com/roadseg/segdata/pkg/datasets/segmentation"
	"github.com/roadseg/segdata/pkg/support/fsutil"
)

var (
	flagDataset = flag.String("dataset", "deepdrive", "Dataset variant, one of: camvid, cityscapes, deepdrive.")
	flagRoot    = flag.String("root", "", "Root directory of the dataset, holding the images/ and labels/ folders.")
	flagMode    = flag.String("mode", "train", "Split to read: train, val or test.")
	flagWidth   = flag.Int("width", 0, "If set together with -height, images and labels are resized to width x height.")
	flagHeight  = flag.Int("height", 0, "If set together with -width, images and labels are resized to width x height.")
	flagNoRemap = flag.Bool("no_remap", false, "Disables the ignore-label remap of the variants that enable it (deepdrive).")
)

// variants maps the -dataset names to their builders.
var variants = map[string]func(root, mode string) *segmentation.Builder{
	"camvid":     camvid.New,
	"cityscapes": cityscapes.New,
	"deepdrive":  deepdrive.New,
}

// variantNames returns the sorted names of the supported variants.
func variantNames() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// datasetConfig holds the flags used to build the dataset, so it can be built without flags in tests.
type datasetConfig struct {
	variant, root, mode string
	width, height       int
	noRemap             bool
}

func configFromFlags() datasetConfig {
	return datasetConfig{
		variant: *flagDataset,
		root:    *flagRoot,
		mode:    *flagMode,
		width:   *flagWidth,
		height:  *flagHeight,
		noRemap: *flagNoRemap,
	}
}

// newBuilder returns the configured dataset builder.
func newBuilder(config datasetConfig) (*segmentation.Builder, error) {
	newFn, found := variants[strings.ToLower(config.variant)]
	if !found {
		return nil, errors.Errorf("unknown dataset %q, valid values are %q", config.variant, variantNames())
	}
	if config.root == "" {
		return nil, errors.New("missing dataset root directory, please set -root")
	}
	root, err := fsutil.ReplaceTildeInDir(config.root)
	if err != nil {
		return nil, err
	}
	b := newFn(root, config.mode)
	if (config.width > 0) != (config.height > 0) {
		return nil, errors.Errorf("-width and -height must be set together, got %dx%d", config.width, config.height)
	}
	if config.width > 0 {
		b.Transform(segmentation.Resize(config.width, config.height)).
			LabelTransform(segmentation.ResizeNearest(config.width, config.height))
	}
	if config.noRemap {
		b.NoIgnoreLabel()
	}
	return b, nil
}
