// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package segmentation

import (
	"image"
	"image/color"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gomlx/pkg/core/shapes"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	timage "github.com/gomlx/gomlx/pkg/core/tensors/images"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// ImageToTensor converts img to a tensor shaped `[height, width, 3]`, with values in [0, 1]
// for float dtypes and [0, 255] for integer dtypes. The alpha channel is dropped.
func ImageToTensor(img image.Image, dtype dtypes.DType) (t *tensors.Tensor, err error) {
	return ImagesToTensor([]image.Image{img}, dtype, false)
}

// ImagesToTensor converts images to a tensor. If batch is true it is shaped `[batch_size, height, width, 3]`,
// otherwise exactly one image must be given and it is shaped `[height, width, 3]`.
//
// All images must have the same size.
func ImagesToTensor(images []image.Image, dtype dtypes.DType, batch bool) (t *tensors.Tensor, err error) {
	if len(images) == 0 {
		return nil, errors.New("no images to convert")
	}
	images = zeroOrigin(images)
	err = exceptions.TryCatch[error](func() {
		toTensor := timage.ToTensor(dtype)
		if batch {
			t = toTensor.Batch(images)
		} else {
			t = toTensor.Single(images[0])
		}
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to convert %d image(s) to %s tensor", len(images), dtype)
	}
	if t == nil {
		return nil, errors.Errorf("images of dtype %s are not supported", dtype)
	}
	return t, nil
}

// LabelToTensor converts a label mask to an Int32 tensor shaped `[height, width]` of class indices.
//
// The mask is read as in ToMask.
func LabelToTensor(label image.Image) *tensors.Tensor {
	gray := toGray(label)
	size := gray.Bounds().Size()
	flat := make([]int32, size.X*size.Y)
	for y := 0; y < size.Y; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+size.X]
		for x, v := range row {
			flat[y*size.X+x] = int32(v)
		}
	}
	return tensors.FromFlatDataAndDimensions(flat, size.Y, size.X)
}

// LabelsToTensor converts a batch of label masks to an Int32 tensor shaped `[batch_size, height, width]`.
//
// All labels must have the same size.
func LabelsToTensor(labels []image.Image) (*tensors.Tensor, error) {
	if len(labels) == 0 {
		return nil, errors.New("no labels to convert")
	}
	size := labels[0].Bounds().Size()
	t := tensors.FromShape(shapes.Make(dtypes.Int32, len(labels), size.Y, size.X))
	var err error
	tensors.MustMutableFlatData[int32](t, func(flat []int32) {
		pos := 0
		for ii, label := range labels {
			if !label.Bounds().Size().Eq(size) {
				err = errors.Errorf("label[%d] has size %s, but label[0] has size %s, they must all be the same",
					ii, label.Bounds().Size(), size)
				return
			}
			gray := toGray(label)
			for y := 0; y < size.Y; y++ {
				for _, v := range gray.Pix[y*gray.Stride : y*gray.Stride+size.X] {
					flat[pos] = int32(v)
					pos++
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// zeroOrigin makes sure every image has its bounds starting at (0, 0), as expected by the tensor conversion.
func zeroOrigin(images []image.Image) []image.Image {
	var converted []image.Image
	for ii, img := range images {
		if img.Bounds().Min.Eq(image.Point{}) {
			continue
		}
		if converted == nil {
			converted = append([]image.Image(nil), images...)
		}
		converted[ii] = &shiftedImage{Image: img, offset: img.Bounds().Min}
	}
	if converted == nil {
		return images
	}
	return converted
}

// shiftedImage presents an image with its origin moved to (0, 0).
type shiftedImage struct {
	image.Image
	offset image.Point
}

func (s *shiftedImage) Bounds() image.Rectangle {
	return s.Image.Bounds().Sub(s.offset)
}

func (s *shiftedImage) At(x, y int) color.Color {
	return s.Image.At(x+s.offset.X, y+s.offset.Y)
}
