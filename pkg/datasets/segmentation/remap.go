// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package segmentation

import (
	"image"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// IgnoreRemap replaces every label value equal to From with To.
//
// It is used to fold the "unlabeled" marker (typically 255) into a regular class index.
type IgnoreRemap struct {
	From, To uint8
}

// RemapValues replaces in place every element of flat equal to from with to.
// It returns the number of replaced elements.
func RemapValues[T constraints.Integer](flat []T, from, to T) int {
	count := 0
	for ii, v := range flat {
		if v == from {
			flat[ii] = to
			count++
		}
	}
	return count
}

// ErrNotAMask is returned when a label image does not hold one class index per pixel.
var ErrNotAMask = errors.New("label is not a mask")

// RemapLabelImage returns a remapped copy of a label image, with origin at (0, 0). The input is not changed.
//
// Only *image.Gray and *image.Paletted (palette indices are remapped) are accepted, any other image
// type fails with ErrNotAMask: use ToMask in the label transform to convert it explicitly.
func (r IgnoreRemap) RemapLabelImage(label image.Image) (image.Image, error) {
	switch mask := label.(type) {
	case *image.Gray:
		gray := toGray(mask)
		RemapValues(gray.Pix, r.From, r.To)
		return gray, nil
	case *image.Paletted:
		bounds := mask.Bounds()
		paletted := image.NewPaletted(image.Rect(0, 0, bounds.Dx(), bounds.Dy()), mask.Palette)
		for y := range bounds.Dy() {
			start := mask.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(paletted.Pix[y*paletted.Stride:], mask.Pix[start:start+bounds.Dx()])
		}
		RemapValues(paletted.Pix, r.From, r.To)
		return paletted, nil
	}
	return nil, errors.Wrapf(ErrNotAMask, "cannot remap label of type %T", label)
}

// RemapLabelTensor applies the remap to an integer label tensor, in place.
// It returns the number of replaced values.
func RemapLabelTensor(labels *tensors.Tensor, from, to int) (count int, err error) {
	switch labels.DType() {
	case dtypes.Int32:
		tensors.MustMutableFlatData[int32](labels, func(flat []int32) {
			count = RemapValues(flat, int32(from), int32(to))
		})
	case dtypes.Int64:
		tensors.MustMutableFlatData[int64](labels, func(flat []int64) {
			count = RemapValues(flat, int64(from), int64(to))
		})
	case dtypes.Uint8:
		tensors.MustMutableFlatData[uint8](labels, func(flat []uint8) {
			count = RemapValues(flat, uint8(from), uint8(to))
		})
	default:
		return 0, errors.Errorf("RemapLabelTensor: labels dtype %s not supported, use Int32, Int64 or Uint8", labels.DType())
	}
	return count, nil
}
