// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/gomlx/pkg/ml/datasets"
	"github.com/gomlx/gomlx/pkg/ml/train"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"github.com/roadseg/segdata/pkg/datasets/segmentation"
)

// checkResult summarizes a pass over the dataset tensors.
type checkResult struct {
	batches, examples int
	bytes             uintptr
	imagesShape       []int
	elapsed           time.Duration
}

// parseLabelRemap parses a "from:to" pair of label values.
func parseLabelRemap(remap string) (from, to int, err error) {
	fromStr, toStr, found := strings.Cut(remap, ":")
	if !found {
		return 0, 0, errors.Errorf("invalid label remap %q, expected \"from:to\"", remap)
	}
	if from, err = strconv.Atoi(strings.TrimSpace(fromStr)); err == nil {
		to, err = strconv.Atoi(strings.TrimSpace(toStr))
	}
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid label remap %q", remap)
	}
	return from, to, nil
}

// checkTensors reads one epoch of ds as tensors, in batches of batchSize, with parallelism goroutines
// (0 for the number of cores), the same way a training loop would.
//
// If labelRemap is not empty, it is parsed by parseLabelRemap and applied to the labels tensors.
func checkTensors(ds *segmentation.Dataset, batchSize, parallelism int, labelRemap string) (*checkResult, error) {
	if batchSize <= 0 {
		return nil, errors.Errorf("invalid batch size %d", batchSize)
	}
	yielder := segmentation.NewYielder(ds, batchSize).DType(dtypes.Float32)
	if labelRemap != "" {
		from, to, err := parseLabelRemap(labelRemap)
		if err != nil {
			return nil, err
		}
		yielder.RemapLabels(from, to)
	}
	var tds train.Dataset = yielder
	if parallelism != 1 {
		tds = datasets.CustomParallel(tds).Parallelism(parallelism).Start()
	}
	result := &checkResult{}
	start := time.Now()
	for {
		_, inputs, labels, err := tds.Yield()
		if err == io.EOF {
			break
		}
		// No Done on errors: the failing worker already stopped the parallel reader and closed its
		// stop channel, which Done would close again.
		if err != nil {
			return nil, err
		}
		if len(inputs) == 0 || len(labels) == 0 {
			// The parallel reader stops without returning the worker error, it is only logged.
			return nil, errors.Errorf("dataset %q: reading stopped after %d batches, see the logged error", ds.Name(), result.batches)
		}
		images := inputs[0]
		result.batches++
		result.examples += images.Shape().Dimensions[0]
		result.bytes += images.Shape().Memory() + labels[0].Shape().Memory()
		if result.imagesShape == nil {
			result.imagesShape = images.Shape().Dimensions[1:]
		}
		images.FinalizeAll()
		labels[0].FinalizeAll()
	}
	result.elapsed = time.Since(start)
	return result, nil
}

// reportCheck prints the result of checkTensors.
func reportCheck(w io.Writer, result *checkResult) {
	fmt.Fprintln(w, titleStyle.Render("Tensors"))
	table := newTable(lipgloss.Right, lipgloss.Left)
	table.Row(false, "batches", humanize.Comma(int64(result.batches)))
	table.Row(result.examples == 0, "examples", humanize.Comma(int64(result.examples)))
	table.Row(false, "image shape", fmt.Sprintf("%v", result.imagesShape))
	table.Row(false, "tensors size", humanize.Bytes(uint64(result.bytes)))
	table.Row(false, "elapsed", result.elapsed.Round(time.Millisecond).String())
	if result.elapsed > 0 {
		table.Row(false, "examples/s", humanize.CommafWithDigits(float64(result.examples)/result.elapsed.Seconds(), 1))
	}
	fmt.Fprintln(w, table.Table.Render())
}
