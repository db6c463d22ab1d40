// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package segmentation implements dataset adapters for semantic segmentation.
//
// A Dataset enumerates the image and label files of one split (train, val or test) of a
// dataset root at construction, and loads a pair on demand with Dataset.Item, applying
// the configured transforms and the optional ignore-label remap.
//
// Variants (CamVid, Cityscapes, DeepDrive) only differ in their Layout, their ColorEncoding
// and whether the remap is enabled; see the sub-packages of pkg/datasets.
//
// Example:
//
//	ds, err := segmentation.Build(root, "train").
//		Transform(segmentation.Resize(480, 360)).
//		LabelTransform(segmentation.ResizeNearest(480, 360)).
//		Done()
//	if err != nil { ... }
//	for ii := range ds.Len() {
//		img, label, err := ds.Item(ii)
//		...
//	}
package segmentation

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
	"github.com/roadseg/segdata/pkg/support/fsutil"
	"github.com/spf13/afero"
	"k8s.io/klog/v2"
)

// ErrIndexOutOfRange is returned by Dataset.Item and Dataset.Paths for indices outside [0, Len()).
var ErrIndexOutOfRange = errors.New("index out of range")

// split holds the file lists of the one mode a Dataset was built for.
type split struct {
	mode           Mode
	images, labels []string
}

// Dataset is an indexed collection of image/label pairs of one split of a dataset.
//
// It is immutable after construction and safe for concurrent use. Create it with Build.
type Dataset struct {
	name     string
	root     string
	layout   Layout
	split    split
	encoding ColorEncoding

	loader                    PairLoader
	transform, labelTransform Transform
	remap                     *IgnoreRemap
	remapAlways               bool
}

// Builder configures a Dataset. Create it with Build and finish with Done.
type Builder struct {
	root, modeStr string
	name          string
	layout        Layout
	encoding      ColorEncoding

	fs                        afero.Fs
	loader                    PairLoader
	transform, labelTransform Transform
	remap                     *IgnoreRemap
	remapAlways               bool
}

// Build starts the configuration of a Dataset reading the split mode ("train", "val" or "test",
// case-insensitive) under root.
//
// Files are only enumerated when Done is called.
func Build(root string, mode string) *Builder {
	return &Builder{
		root:    root,
		modeStr: mode,
		name:    "segmentation",
		layout:  DefaultLayout,
	}
}

// Name sets the name of the dataset, used in logs and by the Yielder. Default is "segmentation".
func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

// Layout sets where each split lives under root. Default is DefaultLayout.
func (b *Builder) Layout(layout Layout) *Builder {
	b.layout = layout
	return b
}

// Encoding sets the class color table reported by the dataset.
func (b *Builder) Encoding(encoding ColorEncoding) *Builder {
	b.encoding = encoding
	return b
}

// Transform sets the transform applied to each loaded image. Nil means none.
func (b *Builder) Transform(t Transform) *Builder {
	b.transform = t
	return b
}

// LabelTransform sets the transform applied to each loaded label. Nil means none.
//
// Use ResizeNearest and not Resize here, class indices must not be interpolated.
func (b *Builder) LabelTransform(t Transform) *Builder {
	b.labelTransform = t
	return b
}

// Loader sets the function used to load a pair. Default is DefaultLoader, or FSLoader if Fs was set.
func (b *Builder) Loader(loader PairLoader) *Builder {
	b.loader = loader
	return b
}

// Fs sets the file system used to enumerate (and, if no Loader is set, load) the files.
// Default is the OS file system.
func (b *Builder) Fs(fs afero.Fs) *Builder {
	b.fs = fs
	return b
}

// IgnoreLabel enables the remap of label values equal to from into to, applied after the label transform.
//
// The remap is part of the label preprocessing: it is only applied if a LabelTransform is set, otherwise
// Dataset.Item returns the decoded label values. See IgnoreLabelAlways.
func (b *Builder) IgnoreLabel(from, to uint8) *Builder {
	b.remap = &IgnoreRemap{From: from, To: to}
	b.remapAlways = false
	return b
}

// IgnoreLabelAlways is like IgnoreLabel, but the remap is applied even if no LabelTransform is set.
func (b *Builder) IgnoreLabelAlways(from, to uint8) *Builder {
	b.remap = &IgnoreRemap{From: from, To: to}
	b.remapAlways = true
	return b
}

// NoIgnoreLabel disables the ignore-label remap, if a variant enabled it.
func (b *Builder) NoIgnoreLabel() *Builder {
	b.remap = nil
	b.remapAlways = false
	return b
}

// Done parses the mode and enumerates the image and label folders of the split.
//
// It fails if the mode is not supported (wrapping ErrUnsupportedMode) or if either folder
// cannot be listed.
func (b *Builder) Done() (*Dataset, error) {
	mode, err := ParseMode(b.modeStr)
	if err != nil {
		return nil, err
	}
	fs := b.fs
	if fs == nil {
		fs = fsutil.OsFs
	}
	loader := b.loader
	if loader == nil {
		if b.fs == nil {
			loader = DefaultLoader
		} else {
			loader = FSLoader(b.fs)
		}
	}

	imageDir := b.layout.ImageDir(b.root, mode)
	labelDir := b.layout.LabelDir(b.root, mode)
	images, err := fsutil.ListFiles(fs, imageDir, b.layout.NameFilter, b.layout.ExtensionFilter)
	if err != nil {
		return nil, errors.WithMessagef(err, "dataset %q: failed to list images for mode %s", b.name, mode)
	}
	labels, err := fsutil.ListFiles(fs, labelDir, b.layout.NameFilter, b.layout.ExtensionFilter)
	if err != nil {
		return nil, errors.WithMessagef(err, "dataset %q: failed to list labels for mode %s", b.name, mode)
	}
	if len(images) != len(labels) {
		klog.Warningf("dataset %q (%s): %d images in %q but %d labels in %q, pairs are matched by listing order",
			b.name, mode, len(images), imageDir, len(labels), labelDir)
	}
	klog.V(1).Infof("dataset %q (%s): %d images, %d labels", b.name, mode, len(images), len(labels))

	return &Dataset{
		name:           b.name,
		root:           b.root,
		layout:         b.layout,
		split:          split{mode: mode, images: images, labels: labels},
		encoding:       b.encoding,
		loader:         loader,
		transform:      b.transform,
		labelTransform: b.labelTransform,
		remap:          b.remap,
		remapAlways:    b.remapAlways,
	}, nil
}

// Name of the dataset.
func (ds *Dataset) Name() string { return ds.name }

// Root folder of the dataset.
func (ds *Dataset) Root() string { return ds.root }

// Mode of the split the dataset reads.
func (ds *Dataset) Mode() Mode { return ds.split.mode }

// Layout used to locate the split.
func (ds *Dataset) Layout() Layout { return ds.layout }

// Encoding returns the class color table of the dataset.
func (ds *Dataset) Encoding() ColorEncoding { return ds.encoding }

// Remap returns the ignore-label remap, or nil if disabled.
func (ds *Dataset) Remap() *IgnoreRemap {
	if ds.remap == nil {
		return nil
	}
	r := *ds.remap
	return &r
}

// RemapsLabels reports whether Item applies the ignore-label remap: it is configured, and either a
// label transform is set or it was enabled with Builder.IgnoreLabelAlways.
func (ds *Dataset) RemapsLabels() bool {
	return ds.remap != nil && (ds.remapAlways || ds.labelTransform != nil)
}

// Len returns the number of images of the split.
func (ds *Dataset) Len() int { return len(ds.split.images) }

// ImagePaths returns a copy of the enumerated image paths, in listing order.
func (ds *Dataset) ImagePaths() []string { return append([]string(nil), ds.split.images...) }

// LabelPaths returns a copy of the enumerated label paths, in listing order.
func (ds *Dataset) LabelPaths() []string { return append([]string(nil), ds.split.labels...) }

// String implements fmt.Stringer.
func (ds *Dataset) String() string {
	return fmt.Sprintf("%s[%s]: %d pairs in %q", ds.name, ds.split.mode, ds.Len(), ds.root)
}

// Paths returns the image and label paths of the i-th pair.
func (ds *Dataset) Paths(i int) (imagePath, labelPath string, err error) {
	if !ds.split.mode.IsValid() {
		return "", "", ErrUnsupportedMode
	}
	if i < 0 || i >= len(ds.split.images) || i >= len(ds.split.labels) {
		return "", "", errors.Wrapf(ErrIndexOutOfRange, "dataset %q: index %d (%d images, %d labels)",
			ds.name, i, len(ds.split.images), len(ds.split.labels))
	}
	return ds.split.images[i], ds.split.labels[i], nil
}

// Item loads the i-th image and label, and applies the transforms and the remap.
func (ds *Dataset) Item(i int) (img, label image.Image, err error) {
	imagePath, labelPath, err := ds.Paths(i)
	if err != nil {
		return nil, nil, err
	}
	img, label, err = ds.loader(imagePath, labelPath)
	if err != nil {
		return nil, nil, errors.WithMessagef(err, "dataset %q: failed to load item %d", ds.name, i)
	}
	if ds.transform != nil {
		img, err = ds.transform(img)
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "dataset %q: image transform of %q", ds.name, imagePath)
		}
	}
	if ds.labelTransform != nil {
		label, err = ds.labelTransform(label)
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "dataset %q: label transform of %q", ds.name, labelPath)
		}
	}
	if ds.RemapsLabels() {
		label, err = ds.remap.RemapLabelImage(label)
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "dataset %q: remap of %q", ds.name, labelPath)
		}
	}
	return img, label, nil
}
