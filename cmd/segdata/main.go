// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// segdata inspects segmentation datasets (CamVid, Cityscapes, DeepDrive layouts).
//
// Select the dataset with -dataset, -root and -mode, and the reports with the remaining flags. Example:
//
//	segdata -dataset=deepdrive -root=~/data/bdd100k/seg -mode=val -info -stats -plot=/tmp/freqs.png
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"github.com/roadseg/segdata/pkg/datasets/segmentation"
	"k8s.io/klog/v2"
)

var (
	flagInfo    = flag.Bool("info", true, "Display a summary of the dataset split.")
	flagClasses = flag.Bool("classes", false, "Lists the classes of the dataset, with their colors.")
	flagYAML    = flag.Bool("yaml", false, "Together with -classes, output the class table as YAML.")

	flagStats  = flag.Bool("stats", false, "Counts the pixels of each class and computes class weights.")
	flagENetC  = flag.Float64("enet_c", segmentation.DefaultENetC, "Constant c of the ENet class weighing 1/ln(c+p).")
	flagIgnore = flag.Int("ignore_class", -1, "Class index whose weights are set to 0 in -stats, -1 for none.")
	flagCSV    = flag.String("csv", "", "If set, -stats also saves the statistics table as CSV to this file.")
	flagPlot   = flag.String("plot", "", "If set, -stats also saves a plot of the class frequencies to this file (.png, .svg, .pdf).")

	flagColorize = flag.String("colorize", "", "If set, saves the labels rendered with the class colors to this directory.")
	flagMax      = flag.Int("max", 0, "Maximum number of labels to colorize, 0 for all.")
	flagBlend    = flag.Float64("blend", 0, "If in (0, 1], -colorize blends the colored labels over the images with this opacity.")

	flagCheck       = flag.Bool("check", false, "Reads one epoch as batches of tensors, as a training loop would.")
	flagBatchSize   = flag.Int("batch", 8, "Batch size used by -check.")
	flagParallelism = flag.Int("parallelism", 0, "Number of goroutines reading batches in -check, 0 for the number of cores.")
	flagLabelRemap  = flag.String("label_remap", "", "Remap of the labels tensor in -check, as \"from:to\", e.g. \"19:-1\".")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if len(flag.Args()) > 0 {
		klog.Errorf("Unexpected arguments %q. See 'segdata -help'.", flag.Args())
		os.Exit(1)
	}

	b, err := newBuilder(configFromFlags())
	if err != nil {
		klog.Fatalf("Invalid configuration: %+v", err)
	}
	ds := must.M1(b.Done())
	out := os.Stdout

	if *flagInfo {
		reportInfo(ds)
	}
	if *flagClasses {
		if *flagYAML {
			must.M(writeClassesYAML(out, ds.Encoding()))
		} else {
			reportClasses(out, ds.Encoding())
		}
	}
	if *flagStats {
		cc := must.M1(countClasses(os.Stderr, ds))
		df := statsDataFrame(ds.Encoding(), cc, *flagENetC, *flagIgnore)
		reportStats(out, df, cc)
		if *flagCSV != "" {
			must.M(saveStatsCSV(df, *flagCSV))
		}
		if *flagPlot != "" {
			must.M(saveFrequencyPlot(df, fmt.Sprintf("%s (%s): class frequencies", ds.Name(), ds.Mode()), *flagPlot))
		}
	}
	if *flagColorize != "" {
		outputs := must.M1(colorizeLabels(os.Stderr, ds, *flagColorize, *flagMax, *flagBlend))
		fmt.Fprintf(out, "\nSaved %s colorized labels to %q\n", humanize.Comma(int64(len(outputs))), *flagColorize)
	}
	if *flagCheck {
		reportCheck(out, must.M1(checkTensors(ds, *flagBatchSize, *flagParallelism, *flagLabelRemap)))
	}
}

// reportInfo prints a summary of the dataset split.
func reportInfo(ds *segmentation.Dataset) {
	fmt.Println(titleStyle.Render("Dataset"))
	table := newTable(lipgloss.Right, lipgloss.Left)
	table.Row(false, "dataset", ds.Name())
	table.Row(false, "root", ds.Root())
	table.Row(false, "mode", ds.Mode().String())
	imageDir := ds.Layout().ImageDir(ds.Root(), ds.Mode())
	labelDir := ds.Layout().LabelDir(ds.Root(), ds.Mode())
	if ds.Mode() == segmentation.Test && ds.Layout().TestReusesVal() {
		imageDir += " (same as val)"
	}
	table.Row(false, "images", imageDir)
	table.Row(false, "labels", labelDir)
	numLabels := len(ds.LabelPaths())
	table.Row(false, "# pairs", humanize.Comma(int64(ds.Len())))
	table.Row(numLabels != ds.Len(), "# labels", humanize.Comma(int64(numLabels)))
	table.Row(false, "# classes", humanize.Comma(int64(ds.Encoding().Len())))
	remap := "none"
	if r := ds.Remap(); r != nil {
		remap = fmt.Sprintf("%d -> %d", r.From, r.To)
		if !ds.RemapsLabels() {
			remap += " (inactive without label transform, set -width and -height)"
		}
	}
	table.Row(false, "label remap", remap)
	fmt.Println(table.Table.Render())
}
