// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package segmentation

import (
	"image"
	"math"
	"slices"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultENetC is the default c of ENetWeighing, it bounds the weights to [1, ~50].
const DefaultENetC = 1.02

// ClassCounts holds the pixel statistics of the labels of a dataset, used to compute class weights.
type ClassCounts struct {
	// Counts is the number of pixels of each class.
	Counts []int64

	// Totals is, for each class, the total number of pixels of the labels where the class is present.
	Totals []int64

	// Pixels is the total number of label pixels seen, including Overflow.
	Pixels int64

	// Overflow is the number of pixels whose value is not a class index (>= number of classes).
	Overflow int64

	// Labels is the number of labels added.
	Labels int
}

// NewClassCounts creates empty counts for numClasses classes.
func NewClassCounts(numClasses int) *ClassCounts {
	return &ClassCounts{
		Counts: make([]int64, numClasses),
		Totals: make([]int64, numClasses),
	}
}

// NumClasses returns the number of classes counted.
func (cc *ClassCounts) NumClasses() int { return len(cc.Counts) }

// Add the pixels of one label mask to the counts. The mask is read as in ToMask.
func (cc *ClassCounts) Add(label image.Image) {
	gray := toGray(label)
	size := gray.Bounds().Size()
	numClasses := len(cc.Counts)
	local := make([]int64, numClasses)
	for y := 0; y < size.Y; y++ {
		for _, v := range gray.Pix[y*gray.Stride : y*gray.Stride+size.X] {
			if int(v) >= numClasses {
				cc.Overflow++
				continue
			}
			local[v]++
		}
	}
	numPixels := int64(size.X * size.Y)
	cc.Pixels += numPixels
	for class, count := range local {
		if count > 0 {
			cc.Counts[class] += count
			cc.Totals[class] += numPixels
		}
	}
	cc.Labels++
}

// CountClasses loads every label of ds (with its transforms and remap) and counts its class pixels.
func CountClasses(ds *Dataset, numClasses int) (*ClassCounts, error) {
	if numClasses <= 0 {
		return nil, errors.Errorf("CountClasses requires a positive number of classes, got %d", numClasses)
	}
	cc := NewClassCounts(numClasses)
	for ii := range ds.Len() {
		_, label, err := ds.Item(ii)
		if err != nil {
			return nil, err
		}
		cc.Add(label)
	}
	if cc.Overflow > 0 {
		klog.Warningf("dataset %q: %d pixels out of %d have values >= %d classes", ds.Name(), cc.Overflow, cc.Pixels, numClasses)
	}
	return cc, nil
}

// ENetWeighing returns the class weights `1 / ln(c + p_class)`, where p_class is the fraction
// of all pixels belonging to the class. See DefaultENetC for c.
func ENetWeighing(cc *ClassCounts, c float64) []float64 {
	weights := make([]float64, len(cc.Counts))
	for class, count := range cc.Counts {
		var p float64
		if cc.Pixels > 0 {
			p = float64(count) / float64(cc.Pixels)
		}
		weights[class] = 1.0 / math.Log(c+p)
	}
	return weights
}

// MedianFrequencyBalancing returns the class weights `median_freq / freq_class`, where freq_class
// is the number of pixels of the class divided by the total pixels of the labels where it is present.
//
// Classes never present get weight 0, and they don't participate in the median.
func MedianFrequencyBalancing(cc *ClassCounts) []float64 {
	freqs := make([]float64, len(cc.Counts))
	present := make([]float64, 0, len(cc.Counts))
	for class, count := range cc.Counts {
		if count == 0 || cc.Totals[class] == 0 {
			continue
		}
		freqs[class] = float64(count) / float64(cc.Totals[class])
		present = append(present, freqs[class])
	}
	weights := make([]float64, len(cc.Counts))
	if len(present) == 0 {
		return weights
	}
	median := medianOf(present)
	for class, freq := range freqs {
		if freq > 0 {
			weights[class] = median / freq
		}
	}
	return weights
}

// medianOf returns the median of values, averaging the two middle ones for even lengths.
// It sorts values in place.
func medianOf(values []float64) float64 {
	slices.Sort(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

// ZeroClass sets the weight of class idx to 0, typically for the "unlabeled" class. Out of range indices are ignored.
func ZeroClass(weights []float64, idx int) []float64 {
	if idx >= 0 && idx < len(weights) {
		weights[idx] = 0
	}
	return weights
}
