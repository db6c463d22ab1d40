// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package deepdrive

import (
	"bytes"
	"image"
	"image/png"
	"path"
	"testing"

	"github.com/pkg/errors"
	"github.com/roadseg/segdata/pkg/datasets/segmentation"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, fs afero.Fs, filePath string, img image.Image) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, fs.MkdirAll(path.Dir(filePath), 0o755))
	require.NoError(t, afero.WriteFile(fs, filePath, buf.Bytes(), 0o644))
}

func newDeepDriveFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	for _, split := range []string{"train", "val"} {
		for _, name := range []string{"a", "b"} {
			writePNG(t, fs, "/bdd/images/"+split+"/"+name+".png", image.NewRGBA(image.Rect(0, 0, 3, 1)))
			label := image.NewGray(image.Rect(0, 0, 3, 1))
			label.Pix = []uint8{255, 7, 19}
			writePNG(t, fs, "/bdd/labels/"+split+"/"+name+".png", label)
		}
	}
	return fs
}

func TestDeepDrive(t *testing.T) {
	fs := newDeepDriveFs(t)
	ds, err := New("/bdd", "train").Fs(fs).Done()
	require.NoError(t, err)
	assert.Equal(t, Name, ds.Name())
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 20, ds.Encoding().Len())
	assert.Equal(t, "unlabeled", ds.Encoding()[Unlabeled].Name)

	// Without a label transform the decoded values are returned as is.
	assert.False(t, ds.RemapsLabels())
	_, label, err := ds.Item(1)
	require.NoError(t, err)
	assert.Equal(t, []uint8{255, 7, 19}, label.(*image.Gray).Pix)

	// The remap follows the label transform.
	ds, err = New("/bdd", "train").Fs(fs).LabelTransform(segmentation.ResizeNearest(3, 1)).Done()
	require.NoError(t, err)
	assert.True(t, ds.RemapsLabels())
	_, label, err = ds.Item(1)
	require.NoError(t, err)
	assert.Equal(t, []uint8{19, 7, 19}, label.(*image.Gray).Pix)

	// Raw values when the remap is disabled.
	ds, err = New("/bdd", "train").Fs(fs).LabelTransform(segmentation.ResizeNearest(3, 1)).NoIgnoreLabel().Done()
	require.NoError(t, err)
	_, label, err = ds.Item(0)
	require.NoError(t, err)
	assert.Equal(t, []uint8{255, 7, 19}, label.(*image.Gray).Pix)
}

func TestDeepDriveTestReadsVal(t *testing.T) {
	fs := newDeepDriveFs(t)
	val, err := New("/bdd", "val").Fs(fs).Done()
	require.NoError(t, err)
	test, err := New("/bdd", "Test").Fs(fs).Done()
	require.NoError(t, err)
	assert.Equal(t, segmentation.Test, test.Mode())
	assert.Equal(t, val.ImagePaths(), test.ImagePaths())
	assert.Equal(t, val.LabelPaths(), test.LabelPaths())
	assert.True(t, Layout.TestReusesVal())

	_, err = New("/bdd", "bogus").Fs(fs).Done()
	assert.True(t, errors.Is(err, segmentation.ErrUnsupportedMode))
}
