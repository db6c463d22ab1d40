// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package deepdrive configures the segmentation dataset adapter for Berkeley DeepDrive (BDD100K)
// segmentation data.
//
// The dataset root is expected to hold `images/{train,val}` and `labels/{train,val}`; the test
// mode reads the validation folders. Labels use the Cityscapes train ids. When a label transform
// is configured, the ignore value 255 is remapped to Unlabeled (19) after it.
package deepdrive

import (
	"github.com/roadseg/segdata/pkg/datasets/cityscapes"
	"github.com/roadseg/segdata/pkg/datasets/segmentation"
)

// Name of the dataset, used in logs.
const Name = "DeepDrive"

// Layout of DeepDrive: there are no public test labels, so test reads the validation folders.
var Layout = segmentation.TestOnValLayout

// Encoding is the class table of DeepDrive, the Cityscapes train ids.
var Encoding = cityscapes.TrainIDEncoding

const (
	// IgnoreValue marks the pixels excluded from evaluation in the label masks.
	IgnoreValue = 255

	// Unlabeled is the class index IgnoreValue is remapped to.
	Unlabeled = cityscapes.Unlabeled
)

// New returns a builder for the DeepDrive split mode under root, with the IgnoreValue remap enabled.
// The remap only runs together with a label transform, see segmentation.Builder.IgnoreLabel.
//
// It can be further configured (transforms, loader, etc.) before calling Done. Use
// Builder.NoIgnoreLabel to keep the raw label values.
func New(root, mode string) *segmentation.Builder {
	return segmentation.Build(root, mode).
		Name(Name).
		Layout(Layout).
		Encoding(Encoding).
		IgnoreLabel(IgnoreValue, Unlabeled)
}
