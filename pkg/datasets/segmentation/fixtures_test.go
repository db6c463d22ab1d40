// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package segmentation

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// encodePNG encodes img, failing the test on error.
func encodePNG(t *testing.T, img image.Image) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// solidRGB creates a width x height image of a single color.
func solidRGB(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// maskOf creates a width x height mask where pixel (x, y) has value valueFn(x, y).
func maskOf(width, height int, valueFn func(x, y int) uint8) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			mask.Pix[y*mask.Stride+x] = valueFn(x, y)
		}
	}
	return mask
}

// writeFile writes contents to fs, creating the parent folders.
func writeFile(t *testing.T, fs afero.Fs, filePath string, contents []byte) {
	require.NoError(t, fs.MkdirAll(path.Dir(filePath), 0o755))
	require.NoError(t, afero.WriteFile(fs, filePath, contents, 0o644))
}

// fixturePair writes an image and its label, named by name, under the given split folders of root.
// The image is a solid color with red channel r, the label a 4x2 mask with value labelValue,
// except for pixel (0, 0) which is 255.
func fixturePair(t *testing.T, fs afero.Fs, root string, folders Folders, name string, r uint8, labelValue uint8) {
	img := solidRGB(4, 2, color.RGBA{R: r, G: 10, B: 20, A: 255})
	label := maskOf(4, 2, func(x, y int) uint8 {
		if x == 0 && y == 0 {
			return 255
		}
		return labelValue
	})
	writeFile(t, fs, path.Join(root, folders.Images, name+".png"), encodePNG(t, img))
	writeFile(t, fs, path.Join(root, folders.Labels, name+".png"), encodePNG(t, label))
}

// newFixtureFs creates a dataset under "/data" with 2 train pairs (a, b), 1 val pair (v)
// and no test folders.
func newFixtureFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	fixturePair(t, fs, "/data", DefaultLayout.Train, "b", 200, 2)
	fixturePair(t, fs, "/data", DefaultLayout.Train, "a", 100, 1)
	fixturePair(t, fs, "/data", DefaultLayout.Val, "v", 50, 3)
	return fs
}
