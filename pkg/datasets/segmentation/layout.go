// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package segmentation

import "path"

// Folders is the pair of image and label folders of one split, relative to the dataset root.
type Folders struct {
	Images, Labels string
}

// Layout describes where each split lives under a dataset root.
//
// Layouts always follow the three-way train/val/test convention. A variant may point
// Test to the same folders as Val.
type Layout struct {
	Train, Val, Test Folders

	// NameFilter and ExtensionFilter, if set, restrict the enumerated files.
	// Both apply to images and labels.
	NameFilter, ExtensionFilter string
}

// DefaultLayout is the `images/<split>` and `labels/<split>` convention, with a dedicated test split.
var DefaultLayout = Layout{
	Train: Folders{Images: "images/train", Labels: "labels/train"},
	Val:   Folders{Images: "images/val", Labels: "labels/val"},
	Test:  Folders{Images: "images/test", Labels: "labels/test"},
}

// TestOnValLayout is DefaultLayout but with the test split reading the validation folders.
var TestOnValLayout = Layout{
	Train: DefaultLayout.Train,
	Val:   DefaultLayout.Val,
	Test:  DefaultLayout.Val,
}

// Folders returns the folders for the given mode. It returns false if mode is invalid.
func (l Layout) Folders(mode Mode) (Folders, bool) {
	switch mode {
	case Train:
		return l.Train, true
	case Val:
		return l.Val, true
	case Test:
		return l.Test, true
	}
	return Folders{}, false
}

// ImageDir returns the image folder for mode under root.
func (l Layout) ImageDir(root string, mode Mode) string {
	f, _ := l.Folders(mode)
	return path.Join(root, f.Images)
}

// LabelDir returns the label folder for mode under root.
func (l Layout) LabelDir(root string, mode Mode) string {
	f, _ := l.Folders(mode)
	return path.Join(root, f.Labels)
}

// TestReusesVal reports whether the test split reads the validation folders.
func (l Layout) TestReusesVal() bool {
	return l.Test == l.Val
}
