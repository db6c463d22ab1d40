// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package cityscapes

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoding(t *testing.T) {
	assert.Equal(t, 35, Encoding.Len())
	for name, id := range map[string]int{
		"unlabeled": 0, "ego vehicle": 1, "road": 7, "polegroup": 18, "bicycle": 33, "license plate": LicensePlate,
	} {
		got, found := Encoding.Index(name)
		require.True(t, found, name)
		assert.Equal(t, id, got, name)
	}

	assert.Equal(t, 20, TrainIDEncoding.Len())
	assert.Equal(t, "unlabeled", TrainIDEncoding[Unlabeled].Name)
	// Train id classes have the same colors as their label ids.
	for _, class := range TrainIDEncoding[:Unlabeled] {
		idx, found := Encoding.Index(class.Name)
		require.True(t, found, class.Name)
		assert.Equal(t, Encoding.Color(idx), class.Color, class.Name)
	}
}

func TestCityscapesTestSplit(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, dir := range []string{"images/val", "labels/val", "images/test", "labels/test"} {
		require.NoError(t, fs.MkdirAll("/cs/"+dir, 0o755))
	}
	require.NoError(t, afero.WriteFile(fs, "/cs/images/test/t.png", nil, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/cs/labels/test/t.png", nil, 0o644))

	ds, err := New("/cs", "test").Fs(fs).Done()
	require.NoError(t, err)
	assert.Equal(t, Name, ds.Name())
	assert.Equal(t, []string{"/cs/images/test/t.png"}, ds.ImagePaths())
	assert.Nil(t, ds.Remap())
	assert.False(t, Layout.TestReusesVal())

	ds, err = New("/cs", "val").Fs(fs).Done()
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())

	_, err = New("/cs", "train").Fs(fs).Done()
	require.Error(t, err)
}
