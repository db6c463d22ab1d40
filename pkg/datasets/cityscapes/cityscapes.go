// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package cityscapes configures the segmentation dataset adapter for the Cityscapes dataset.
//
// The dataset root is expected to hold `images/{train,val,test}` and `labels/{train,val,test}`.
// Label masks hold the full Cityscapes label ids (0 to 33), see Encoding. For the reduced
// 19 classes (plus "unlabeled") used for training and evaluation, see TrainIDEncoding.
package cityscapes

import (
	"image/color"

	"github.com/roadseg/segdata/pkg/datasets/segmentation"
)

// Name of the dataset, used in logs.
const Name = "Cityscapes"

// Layout of Cityscapes, with dedicated test folders.
var Layout = segmentation.DefaultLayout

// LicensePlate is the index of "license plate" in Encoding. It has no label id in
// Cityscapes (-1) and is only used for visualization.
const LicensePlate = 34

// Encoding is the table of all Cityscapes labels, indexed by label id.
var Encoding = segmentation.ColorEncoding{
	{Name: "unlabeled", Color: rgb(0, 0, 0)},
	{Name: "ego vehicle", Color: rgb(0, 0, 0)},
	{Name: "rectification border", Color: rgb(0, 0, 0)},
	{Name: "out of roi", Color: rgb(0, 0, 0)},
	{Name: "static", Color: rgb(0, 0, 0)},
	{Name: "dynamic", Color: rgb(111, 74, 0)},
	{Name: "ground", Color: rgb(81, 0, 81)},
	{Name: "road", Color: rgb(128, 64, 128)},
	{Name: "sidewalk", Color: rgb(244, 35, 232)},
	{Name: "parking", Color: rgb(250, 170, 160)},
	{Name: "rail track", Color: rgb(230, 150, 140)},
	{Name: "building", Color: rgb(70, 70, 70)},
	{Name: "wall", Color: rgb(102, 102, 156)},
	{Name: "fence", Color: rgb(190, 153, 153)},
	{Name: "guard rail", Color: rgb(180, 165, 180)},
	{Name: "bridge", Color: rgb(150, 100, 100)},
	{Name: "tunnel", Color: rgb(150, 120, 90)},
	{Name: "pole", Color: rgb(153, 153, 153)},
	{Name: "polegroup", Color: rgb(153, 153, 153)},
	{Name: "traffic light", Color: rgb(250, 170, 30)},
	{Name: "traffic sign", Color: rgb(220, 220, 0)},
	{Name: "vegetation", Color: rgb(107, 142, 35)},
	{Name: "terrain", Color: rgb(152, 251, 152)},
	{Name: "sky", Color: rgb(70, 130, 180)},
	{Name: "person", Color: rgb(220, 20, 60)},
	{Name: "rider", Color: rgb(255, 0, 0)},
	{Name: "car", Color: rgb(0, 0, 142)},
	{Name: "truck", Color: rgb(0, 0, 70)},
	{Name: "bus", Color: rgb(0, 60, 100)},
	{Name: "caravan", Color: rgb(0, 0, 90)},
	{Name: "trailer", Color: rgb(0, 0, 110)},
	{Name: "train", Color: rgb(0, 80, 100)},
	{Name: "motorcycle", Color: rgb(0, 0, 230)},
	{Name: "bicycle", Color: rgb(119, 11, 32)},
	{Name: "license plate", Color: rgb(0, 0, 142)},
}

// Unlabeled is the index of "unlabeled" in TrainIDEncoding, where the ignore value 255 is folded into.
const Unlabeled = 19

// TrainIDEncoding is the table of the 19 Cityscapes evaluation classes, indexed by train id,
// followed by "unlabeled".
var TrainIDEncoding = segmentation.ColorEncoding{
	{Name: "road", Color: rgb(128, 64, 128)},
	{Name: "sidewalk", Color: rgb(244, 35, 232)},
	{Name: "building", Color: rgb(70, 70, 70)},
	{Name: "wall", Color: rgb(102, 102, 156)},
	{Name: "fence", Color: rgb(190, 153, 153)},
	{Name: "pole", Color: rgb(153, 153, 153)},
	{Name: "traffic light", Color: rgb(250, 170, 30)},
	{Name: "traffic sign", Color: rgb(220, 220, 0)},
	{Name: "vegetation", Color: rgb(107, 142, 35)},
	{Name: "terrain", Color: rgb(152, 251, 152)},
	{Name: "sky", Color: rgb(70, 130, 180)},
	{Name: "person", Color: rgb(220, 20, 60)},
	{Name: "rider", Color: rgb(255, 0, 0)},
	{Name: "car", Color: rgb(0, 0, 142)},
	{Name: "truck", Color: rgb(0, 0, 70)},
	{Name: "bus", Color: rgb(0, 60, 100)},
	{Name: "train", Color: rgb(0, 80, 100)},
	{Name: "motorcycle", Color: rgb(0, 0, 230)},
	{Name: "bicycle", Color: rgb(119, 11, 32)},
	{Name: "unlabeled", Color: rgb(0, 0, 0)},
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xFF} }

// New returns a builder for the Cityscapes split mode under root.
//
// It can be further configured (transforms, loader, etc.) before calling Done.
func New(root, mode string) *segmentation.Builder {
	return segmentation.Build(root, mode).
		Name(Name).
		Layout(Layout).
		Encoding(Encoding)
}
