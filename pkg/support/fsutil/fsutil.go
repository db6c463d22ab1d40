// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package fsutil contains utilities for working with the file system: existence checks, home directory
// expansion and the enumeration of dataset folders.
//
// Functions take an afero.Fs so datasets can be read from the OS or from an in-memory file system.
package fsutil

import (
	"os"
	"os/user"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// OsFs is the file system used when none is given.
var OsFs = afero.NewOsFs()

// MustFileExists returns whether the file or directory exists.
// It panics on file system errors.
func MustFileExists(fs afero.Fs, path string) bool {
	exists, err := FileExists(fs, path)
	if err != nil {
		panic(err)
	}
	return exists
}

// FileExists returns whether the file or directory exists or an error if something went wrong in the filesystem.
func FileExists(fs afero.Fs, path string) (bool, error) {
	if fs == nil {
		fs = OsFs
	}
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to FileExists(%q)", path)
}

// IsDir returns whether path exists and is a directory.
func IsDir(fs afero.Fs, path string) (bool, error) {
	if fs == nil {
		fs = OsFs
	}
	isDir, err := afero.IsDir(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to IsDir(%q)", path)
	}
	return isDir, nil
}

// MustReplaceTildeInDir by the user's home directory. Returns dir if it doesn't start with "~".
//
// It may panic with an error if `dir` has an unknown user (e.g: `~unknown/...`)
func MustReplaceTildeInDir(dir string) string {
	dir, err := ReplaceTildeInDir(dir)
	if err != nil {
		panic(err)
	}
	return dir
}

// ReplaceTildeInDir by the user's home directory. Returns dir if it doesn't start with "~".
//
// It returns an error if `dir` has an unknown user or some other filesystem error (e.g: `~unknown/...`)
func ReplaceTildeInDir(dir string) (string, error) {
	if len(dir) == 0 || dir[0] != '~' {
		return dir, nil
	}
	var userName string
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		sepIdx := strings.IndexRune(dir, '/')
		if sepIdx == -1 {
			userName = dir[1:]
		} else {
			userName = dir[1:sepIdx]
		}
	}
	var usr *user.User
	var err error
	if userName == "" {
		usr, err = user.Current()
	} else {
		usr, err = user.Lookup(userName)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to lookup home directory for user in path %q", dir)
	}
	return path.Join(usr.HomeDir, dir[1+len(userName):]), nil
}

// ListFiles returns the paths of all regular files under folder, walking subdirectories recursively.
//
// Paths are returned in walk order (lexical within each directory) and are prefixed with folder.
// If nameFilter is not empty, only files whose base name contains it are kept. If extensionFilter is
// not empty, only files whose name ends with it are kept.
//
// It returns an error if folder doesn't exist or is not a directory.
func ListFiles(fs afero.Fs, folder, nameFilter, extensionFilter string) ([]string, error) {
	if fs == nil {
		fs = OsFs
	}
	isDir, err := IsDir(fs, folder)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, errors.Errorf("%q is not a folder", folder)
	}
	var files []string
	err = afero.Walk(fs, folder, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		name := info.Name()
		if nameFilter != "" && !strings.Contains(name, nameFilter) {
			return nil
		}
		if extensionFilter != "" && !strings.HasSuffix(name, extensionFilter) {
			return nil
		}
		files = append(files, filePath)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list files in %q", folder)
	}
	return files, nil
}
