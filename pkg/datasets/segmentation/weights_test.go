// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package segmentation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassCounts(t *testing.T) {
	cc := NewClassCounts(3)
	// 4 pixels: 3 of class 0, 1 of class 1.
	cc.Add(maskOf(2, 2, func(x, y int) uint8 {
		if x == 1 && y == 1 {
			return 1
		}
		return 0
	}))
	// 4 pixels: 2 of class 1, 1 of class 2, 1 out of range.
	cc.Add(maskOf(2, 2, func(x, y int) uint8 { return []uint8{1, 1, 2, 200}[2*y+x] }))

	assert.Equal(t, []int64{3, 3, 1}, cc.Counts)
	assert.Equal(t, []int64{4, 8, 4}, cc.Totals)
	assert.Equal(t, int64(8), cc.Pixels)
	assert.Equal(t, int64(1), cc.Overflow)
	assert.Equal(t, 2, cc.Labels)
	assert.Equal(t, 3, cc.NumClasses())

	enet := ENetWeighing(cc, DefaultENetC)
	require.Len(t, enet, 3)
	assert.InDelta(t, 1/math.Log(1.02+3.0/8), enet[0], 1e-9)
	assert.InDelta(t, 1/math.Log(1.02+1.0/8), enet[2], 1e-9)
	// Rarer classes get larger weights.
	assert.Greater(t, enet[2], enet[0])

	// freqs: 3/4, 3/8, 1/4; median 3/8.
	mfb := MedianFrequencyBalancing(cc)
	assert.InDelta(t, 0.5, mfb[0], 1e-9)
	assert.InDelta(t, 1.0, mfb[1], 1e-9)
	assert.InDelta(t, 1.5, mfb[2], 1e-9)

	assert.Equal(t, []float64{0.5, 0, 1.5}, ZeroClass([]float64{0.5, 1, 1.5}, 1))
	assert.Equal(t, []float64{1, 2}, ZeroClass([]float64{1, 2}, 5))
}

func TestMedianFrequencyBalancingAbsentClasses(t *testing.T) {
	cc := NewClassCounts(4)
	cc.Add(maskOf(2, 1, func(x, y int) uint8 { return uint8(x) }))
	mfb := MedianFrequencyBalancing(cc)
	// Classes 0 and 1 have frequency 1/2, median is 1/2.
	assert.Equal(t, []float64{1, 1, 0, 0}, mfb)

	assert.Equal(t, []float64{0, 0}, MedianFrequencyBalancing(NewClassCounts(2)))
}

func TestCountClasses(t *testing.T) {
	fs := newFixtureFs(t)
	ds, err := Build("/data", "train").Fs(fs).LabelTransform(ToMask()).IgnoreLabel(255, 19).Done()
	require.NoError(t, err)
	cc, err := CountClasses(ds, 20)
	require.NoError(t, err)
	// Labels a (value 1) and b (value 2), each 4x2 with one pixel remapped to 19.
	assert.Equal(t, int64(16), cc.Pixels)
	assert.Equal(t, int64(0), cc.Overflow)
	assert.Equal(t, int64(7), cc.Counts[1])
	assert.Equal(t, int64(7), cc.Counts[2])
	assert.Equal(t, int64(2), cc.Counts[19])
	assert.Equal(t, int64(16), cc.Totals[19])

	_, err = CountClasses(ds, 0)
	require.Error(t, err)
}
