// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package fsutil

import (
	"os/user"
	"path"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fs afero.Fs, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, fs.MkdirAll(path.Dir(p), 0755))
		require.NoError(t, afero.WriteFile(fs, p, []byte(p), 0644))
	}
}

func TestListFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs,
		"/data/images/train/b.jpg",
		"/data/images/train/a.jpg",
		"/data/images/train/sub/c.jpg",
		"/data/images/train/notes.txt",
	)

	files, err := ListFiles(fs, "/data/images/train", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/data/images/train/a.jpg",
		"/data/images/train/b.jpg",
		"/data/images/train/notes.txt",
		"/data/images/train/sub/c.jpg",
	}, files)

	files, err = ListFiles(fs, "/data/images/train", "", ".jpg")
	require.NoError(t, err)
	assert.Len(t, files, 3)

	files, err = ListFiles(fs, "/data/images/train", "b", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/images/train/b.jpg"}, files)

	// Missing folder and regular file are both rejected.
	_, err = ListFiles(fs, "/data/images/missing", "", "")
	require.Error(t, err)
	_, err = ListFiles(fs, "/data/images/train/a.jpg", "", "")
	require.ErrorContains(t, err, "is not a folder")
}

func TestFileExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/x/y.txt")
	assert.True(t, MustFileExists(fs, "/x/y.txt"))
	assert.True(t, MustFileExists(fs, "/x"))
	assert.False(t, MustFileExists(fs, "/x/z.txt"))

	isDir, err := IsDir(fs, "/x")
	require.NoError(t, err)
	assert.True(t, isDir)
	isDir, err = IsDir(fs, "/nope")
	require.NoError(t, err)
	assert.False(t, isDir)
}

func TestReplaceTildeInDir(t *testing.T) {
	assert.Equal(t, "/abs/dir", MustReplaceTildeInDir("/abs/dir"))
	assert.Equal(t, "", MustReplaceTildeInDir(""))

	usr, err := user.Current()
	if err != nil {
		t.Skipf("no current user: %v", err)
	}
	assert.Equal(t, path.Join(usr.HomeDir, "data"), MustReplaceTildeInDir("~/data"))
	assert.Equal(t, usr.HomeDir, MustReplaceTildeInDir("~"))
}
