// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package camvid configures the segmentation dataset adapter for CamVid, relabeled with the
// Cityscapes train ids.
//
// The dataset root is expected to hold `images/{train,val}` and `labels/{train,val}`; the test
// mode reads the validation folders. No label remap is applied by default, use
// Builder.IgnoreLabel if the masks mark ignored pixels with 255.
package camvid

import (
	"github.com/roadseg/segdata/pkg/datasets/cityscapes"
	"github.com/roadseg/segdata/pkg/datasets/segmentation"
)

// Name of the dataset, used in logs.
const Name = "CamVid"

// Layout of CamVid: test reads the validation folders.
var Layout = segmentation.TestOnValLayout

// Encoding is the 20 classes table of CamVid.
var Encoding = cityscapes.TrainIDEncoding

// New returns a builder for the CamVid split mode under root.
//
// It can be further configured (transforms, loader, etc.) before calling Done.
func New(root, mode string) *segmentation.Builder {
	return segmentation.Build(root, mode).
		Name(Name).
		Layout(Layout).
		Encoding(Encoding)
}
