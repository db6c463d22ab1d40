// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package segmentation

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode selects which on-disk split a Dataset reads from.
//
// The zero value is not a valid mode.
type Mode int

const (
	InvalidMode Mode = iota
	Train
	Val
	Test
)

// ErrUnsupportedMode is returned whenever a mode is not one of train, val or test.
var ErrUnsupportedMode = errors.New("unexpected dataset mode, supported modes are: train, val and test")

// Modes lists the valid modes, in order.
var Modes = []Mode{Train, Val, Test}

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Train:
		return "train"
	case Val:
		return "val"
	case Test:
		return "test"
	}
	return "invalid"
}

// IsValid returns whether m is one of Train, Val or Test.
func (m Mode) IsValid() bool {
	return m == Train || m == Val || m == Test
}

// ParseMode converts "train", "val" or "test" (case-insensitive) to a Mode.
// Anything else returns an error wrapping ErrUnsupportedMode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "train":
		return Train, nil
	case "val":
		return Val, nil
	case "test":
		return Test, nil
	}
	return InvalidMode, errors.WithMessagef(ErrUnsupportedMode, "mode %q", s)
}
