// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package segmentation

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Transform converts a decoded image (or label) into another one. It is applied by Dataset.Item.
type Transform func(img image.Image) (image.Image, error)

// Compose chains transforms, applied from first to last. Nil transforms are skipped.
func Compose(transforms ...Transform) Transform {
	return func(img image.Image) (image.Image, error) {
		var err error
		for ii, t := range transforms {
			if t == nil {
				continue
			}
			img, err = t(img)
			if err != nil {
				return nil, errors.WithMessagef(err, "transform #%d failed", ii)
			}
		}
		return img, nil
	}
}

// Resize images to width x height with a Lanczos filter. Not suitable for labels, see ResizeNearest.
func Resize(width, height int) Transform {
	return func(img image.Image) (image.Image, error) {
		if width <= 0 || height <= 0 {
			return nil, errors.Errorf("invalid resize dimensions %dx%d", width, height)
		}
		return imaging.Resize(img, width, height, imaging.Lanczos), nil
	}
}

// ResizeNearest resizes with nearest-neighbor sampling, so class indices are never blended.
//
// The result keeps a single channel: it is an *image.Gray when the input is a mask.
func ResizeNearest(width, height int) Transform {
	return func(img image.Image) (image.Image, error) {
		if width <= 0 || height <= 0 {
			return nil, errors.Errorf("invalid resize dimensions %dx%d", width, height)
		}
		return applyKeepingMask(img, func(img image.Image) image.Image {
			return imaging.Resize(img, width, height, imaging.NearestNeighbor)
		}), nil
	}
}

// CenterCrop cuts a width x height rectangle from the center of the image.
func CenterCrop(width, height int) Transform {
	return func(img image.Image) (image.Image, error) {
		size := img.Bounds().Size()
		if width > size.X || height > size.Y {
			return nil, errors.Errorf("cannot crop %dx%d from image of size %dx%d", width, height, size.X, size.Y)
		}
		return applyKeepingMask(img, func(img image.Image) image.Image {
			return imaging.CropCenter(img, width, height)
		}), nil
	}
}

// FlipH flips the image horizontally.
//
// Apply it to both the image and the label transforms to keep them aligned.
func FlipH() Transform {
	return func(img image.Image) (image.Image, error) {
		return applyKeepingMask(img, func(img image.Image) image.Image {
			return imaging.FlipH(img)
		}), nil
	}
}

// ToMask converts a label image to a single channel *image.Gray of class indices.
// Palette indices are kept as is, other images contribute their red channel.
func ToMask() Transform {
	return func(img image.Image) (image.Image, error) {
		return toGray(img), nil
	}
}

// applyKeepingMask applies fn, and if img is a mask it converts the result back to *image.Gray.
// Paletted masks are converted before fn, since imaging works on colors and not on palette indices.
func applyKeepingMask(img image.Image, fn func(image.Image) image.Image) image.Image {
	if !isMask(img) {
		return fn(img)
	}
	return toGray(fn(toGray(img)))
}

// isMask reports whether img holds one value per pixel.
func isMask(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Paletted:
		return true
	}
	return false
}

// toGray returns img as an *image.Gray with origin at (0, 0).
//
// For *image.Paletted the palette index is kept as the gray value, for anything else
// the red channel is used, which is exact for gray images stored with 3 or 4 channels.
func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	switch src := img.(type) {
	case *image.Gray:
		draw.Draw(gray, gray.Bounds(), src, bounds.Min, draw.Src)
		return gray
	case *image.Paletted:
		for y := 0; y < bounds.Dy(); y++ {
			for x := 0; x < bounds.Dx(); x++ {
				gray.Pix[y*gray.Stride+x] = src.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y)
			}
		}
		return gray
	}
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			gray.Pix[y*gray.Stride+x] = uint8(r >> 8)
		}
	}
	return gray
}
