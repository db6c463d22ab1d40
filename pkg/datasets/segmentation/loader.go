// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package segmentation

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// PairLoader loads and decodes an image and its label from their paths.
type PairLoader func(imagePath, labelPath string) (img, label image.Image, err error)

// DefaultLoader decodes both files from the OS file system.
//
// Labels are returned as decoded, so single-channel masks come back as *image.Gray
// (or *image.Paletted) holding the class indices.
func DefaultLoader(imagePath, labelPath string) (img, label image.Image, err error) {
	img, err = imaging.Open(imagePath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to load image %q", imagePath)
	}
	label, err = imaging.Open(labelPath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to load label %q", labelPath)
	}
	return img, label, nil
}

// FSLoader returns a PairLoader that reads both files through fs.
func FSLoader(fs afero.Fs) PairLoader {
	return func(imagePath, labelPath string) (img, label image.Image, err error) {
		img, err = decodeFromFs(fs, imagePath)
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "failed to load image")
		}
		label, err = decodeFromFs(fs, labelPath)
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "failed to load label")
		}
		return img, label, nil
	}
}

func decodeFromFs(fs afero.Fs, filePath string) (image.Image, error) {
	f, err := fs.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %q", filePath)
	}
	defer func() { _ = f.Close() }()
	img, err := imaging.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %q", filePath)
	}
	return img, nil
}
