// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"github.com/roadseg/segdata/pkg/datasets/segmentation"
	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"k8s.io/klog/v2"
)

// Column names of the statistics table.
const (
	ColClass     = "class"
	ColPixels    = "pixels"
	ColFrequency = "frequency"
	ColENet      = "enet_weight"
	ColMFB       = "mfb_weight"
)

// countClasses counts the classes of all labels of ds, showing a progress bar in w.
func countClasses(w io.Writer, ds *segmentation.Dataset) (*segmentation.ClassCounts, error) {
	numClasses := ds.Encoding().Len()
	if numClasses == 0 {
		return nil, errors.Errorf("dataset %q has no class table", ds.Name())
	}
	cc := segmentation.NewClassCounts(numClasses)
	bar := newProgressBar(w, ds.Len(), "Counting classes")
	for ii := range ds.Len() {
		_, label, err := ds.Item(ii)
		if err != nil {
			return nil, err
		}
		cc.Add(label)
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Fprintln(w)
	if cc.Overflow > 0 {
		klog.Warningf("%d pixels out of %d have values not in the class table", cc.Overflow, cc.Pixels)
	}
	return cc, nil
}

// statsDataFrame organizes the class statistics and both weighting schemes in a DataFrame, one row per class.
//
// If ignoreClass >= 0 its weights are set to 0.
func statsDataFrame(encoding segmentation.ColorEncoding, cc *segmentation.ClassCounts, enetC float64, ignoreClass int) dataframe.DataFrame {
	pixels := make([]int, cc.NumClasses())
	frequencies := make([]float64, cc.NumClasses())
	for class, count := range cc.Counts {
		pixels[class] = int(count)
		if cc.Pixels > 0 {
			frequencies[class] = float64(count) / float64(cc.Pixels)
		}
	}
	enet := segmentation.ZeroClass(segmentation.ENetWeighing(cc, enetC), ignoreClass)
	mfb := segmentation.ZeroClass(segmentation.MedianFrequencyBalancing(cc), ignoreClass)
	return dataframe.New(
		series.New(encoding.Names()[:cc.NumClasses()], series.String, ColClass),
		series.New(pixels, series.Int, ColPixels),
		series.New(frequencies, series.Float, ColFrequency),
		series.New(enet, series.Float, ColENet),
		series.New(mfb, series.Float, ColMFB),
	)
}

// reportStats prints the statistics table. Classes never seen are highlighted.
func reportStats(w io.Writer, df dataframe.DataFrame, cc *segmentation.ClassCounts) {
	fmt.Fprintln(w, titleStyle.Render("Class statistics"))
	summary := newTable(lipgloss.Right, lipgloss.Left)
	summary.Row(false, "labels", humanize.Comma(int64(cc.Labels)))
	summary.Row(false, "pixels", humanize.Comma(cc.Pixels))
	summary.Row(cc.Overflow > 0, "out of table", humanize.Comma(cc.Overflow))
	fmt.Fprintln(w, summary.Table.Render())

	table := newTable(lipgloss.Left, lipgloss.Right)
	table.Table.Headers("Class", "Pixels", "Frequency", "ENet", "MFB")
	classes := df.Col(ColClass).Records()
	pixels := df.Col(ColPixels).Float()
	frequencies := df.Col(ColFrequency).Float()
	enet := df.Col(ColENet).Float()
	mfb := df.Col(ColMFB).Float()
	for ii := range df.Nrow() {
		table.Row(pixels[ii] == 0,
			classes[ii],
			humanize.Comma(int64(pixels[ii])),
			strconv.FormatFloat(100*frequencies[ii], 'f', 2, 64)+"%",
			strconv.FormatFloat(enet[ii], 'f', 4, 64),
			strconv.FormatFloat(mfb[ii], 'f', 4, 64))
	}
	fmt.Fprintln(w, table.Table.Render())
}

// saveStatsCSV writes the statistics table to filePath.
func saveStatsCSV(df dataframe.DataFrame, filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", filePath)
	}
	if err = df.WriteCSV(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write statistics to %q", filePath)
	}
	return errors.Wrapf(f.Close(), "failed to close %q", filePath)
}

// saveFrequencyPlot saves a bar chart of the class frequencies (in %) to filePath, the image format
// is taken from the extension (.png, .svg, .pdf, ...).
func saveFrequencyPlot(df dataframe.DataFrame, title, filePath string) error {
	frequencies := df.Col(ColFrequency).Float()
	values := make(plotter.Values, len(frequencies))
	for ii, f := range frequencies {
		values[ii] = 100 * f
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "% of pixels"
	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return errors.Wrap(err, "failed to create bar chart")
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(df.Col(ColClass).Records()...)
	p.X.Tick.Label.Rotation = 1.2
	p.X.Tick.Label.XAlign = -1.0
	p.Add(plotter.NewGrid())
	if err = p.Save(10*vg.Inch, 5*vg.Inch, filePath); err != nil {
		return errors.Wrapf(err, "failed to save plot to %q", filePath)
	}
	return nil
}

// newProgressBar creates a progress bar over numItems writing to w.
func newProgressBar(w io.Writer, numItems int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(numItems,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
	)
}
