// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package segmentation

import (
	"image"
	"image/color"
	"testing"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	var order []int
	step := func(id int) Transform {
		return func(img image.Image) (image.Image, error) {
			order = append(order, id)
			return img, nil
		}
	}
	img := solidRGB(2, 2, color.RGBA{A: 255})
	got, err := Compose(step(1), nil, step(2))(img)
	require.NoError(t, err)
	assert.Equal(t, img, got)
	assert.Equal(t, []int{1, 2}, order)

	failing := func(image.Image) (image.Image, error) { return nil, errors.New("bad") }
	_, err = Compose(step(3), failing)(img)
	require.ErrorContains(t, err, "transform #1")
	require.ErrorContains(t, err, "bad")
}

func TestResizeAndCrop(t *testing.T) {
	img := solidRGB(8, 6, color.RGBA{R: 50, G: 60, B: 70, A: 255})
	resized, err := Resize(4, 3)(img)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 3), resized.Bounds().Size())
	_, err = Resize(0, 3)(img)
	require.Error(t, err)

	cropped, err := CenterCrop(4, 2)(img)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 2), cropped.Bounds().Size())
	_, err = CenterCrop(10, 2)(img)
	require.Error(t, err)
}

func TestMaskTransforms(t *testing.T) {
	mask := maskOf(4, 2, func(x, y int) uint8 { return uint8(10*y + x) })

	resized, err := ResizeNearest(8, 4)(mask)
	require.NoError(t, err)
	gray, ok := resized.(*image.Gray)
	require.True(t, ok, "expected *image.Gray, got %T", resized)
	assert.Equal(t, image.Pt(8, 4), gray.Bounds().Size())
	assert.Equal(t, uint8(0), gray.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(13), gray.GrayAt(7, 3).Y)

	flipped, err := FlipH()(mask)
	require.NoError(t, err)
	gray = flipped.(*image.Gray)
	assert.Equal(t, uint8(3), gray.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(10), gray.GrayAt(3, 1).Y)

	cropped, err := CenterCrop(2, 2)(mask)
	require.NoError(t, err)
	gray = cropped.(*image.Gray)
	assert.Equal(t, []uint8{1, 2}, gray.Pix[0:2])

	// Paletted masks keep their indices, not their palette colors.
	paletted := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{color.Black, color.White, color.RGBA{R: 7, A: 255}})
	paletted.SetColorIndex(0, 0, 2)
	paletted.SetColorIndex(1, 0, 1)
	flipped, err = FlipH()(paletted)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2}, flipped.(*image.Gray).Pix)
}

func TestToMask(t *testing.T) {
	// RGB encoded gray values are read from the red channel.
	rgb := solidRGB(3, 1, color.RGBA{R: 19, G: 19, B: 19, A: 255})
	mask, err := ToMask()(rgb)
	require.NoError(t, err)
	assert.Equal(t, []uint8{19, 19, 19}, mask.(*image.Gray).Pix)

	// Sub-images are moved to the origin.
	sub := maskOf(4, 4, func(x, y int) uint8 { return uint8(x + 4*y) }).SubImage(image.Rect(1, 1, 3, 2))
	mask, err = ToMask()(sub)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 1), mask.Bounds())
	assert.Equal(t, []uint8{5, 6}, mask.(*image.Gray).Pix)
}

func TestRemapValues(t *testing.T) {
	values := []int32{0, 255, 3, 255, 19}
	assert.Equal(t, 2, RemapValues(values, 255, 19))
	assert.Equal(t, []int32{0, 19, 3, 19, 19}, values)

	bytesValues := []uint8{1, 2, 3}
	assert.Equal(t, 0, RemapValues(bytesValues, 255, 19))
	assert.Equal(t, []uint8{1, 2, 3}, bytesValues)
}

func TestRemapLabelImage(t *testing.T) {
	remap := IgnoreRemap{From: 255, To: 19}

	// The remapped sub-image is a copy, the parent is unchanged.
	parent := maskOf(3, 2, func(x, y int) uint8 { return []uint8{4, 255, 255}[x] })
	sub := parent.SubImage(image.Rect(1, 1, 3, 2)).(*image.Gray)
	got, err := remap.RemapLabelImage(sub)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 1), got.Bounds())
	assert.Equal(t, []uint8{19, 19}, got.(*image.Gray).Pix)
	assert.Equal(t, []uint8{4, 255, 255, 4, 255, 255}, parent.Pix)

	paletted := image.NewPaletted(image.Rect(0, 0, 2, 1), make(color.Palette, 256))
	paletted.Pix = []uint8{255, 4}
	got, err = remap.RemapLabelImage(paletted)
	require.NoError(t, err)
	assert.Equal(t, []uint8{19, 4}, got.(*image.Paletted).Pix)
	assert.Equal(t, []uint8{255, 4}, paletted.Pix)

	// Color coded labels are not guessed from a channel.
	rgb := solidRGB(2, 1, color.RGBA{R: 255, B: 7, A: 255})
	rgb.SetRGBA(1, 0, color.RGBA{R: 3, G: 200, B: 9, A: 255})
	_, err = remap.RemapLabelImage(rgb)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotAMask))
}

func TestRemapLabelTensor(t *testing.T) {
	labels := tensors.FromFlatDataAndDimensions([]int32{255, 1, 255, 2}, 2, 2)
	count, err := RemapLabelTensor(labels, 255, 19)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	tensors.MustConstFlatData[int32](labels, func(flat []int32) {
		assert.Equal(t, []int32{19, 1, 19, 2}, flat)
	})

	_, err = RemapLabelTensor(tensors.FromFlatDataAndDimensions([]float32{255, 1}, 2), 255, 19)
	require.Error(t, err)
}
