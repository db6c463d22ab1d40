// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package segmentation

import (
	"image"
	"io"
	"math/rand"
	"sync"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/gomlx/gomlx/pkg/ml/train"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// Yielder adapts a Dataset to GoMLX's train.Dataset, yielding batches of tensors.
//
// Yield returns as inputs the images batch shaped `[batch_size, height, width, 3]` and as labels
// the class indices shaped `[batch_size, height, width]` (Int32). The transforms of the Dataset
// must produce images and labels of a fixed size.
//
// Only the selection of indices is serialized, images are loaded outside the lock. So it can be
// wrapped with datasets.Parallel to load batches from multiple goroutines.
type Yielder struct {
	ds        *Dataset
	batchSize int
	dtype     dtypes.DType

	infinite, dropIncompleteBatch bool
	tensorRemap                   *[2]int

	// muSelection protects shuffle, next and selection.
	muSelection sync.Mutex
	shuffle     *rand.Rand
	next        int
	selection   []int
}

var _ train.Dataset = (*Yielder)(nil)

// NewYielder creates a train.Dataset over ds, yielding batchSize pairs per call to Yield.
//
// By default, it yields in order, once (io.EOF at the end of the epoch), with images as Float32.
// Use the configuration methods to change that.
func NewYielder(ds *Dataset, batchSize int) *Yielder {
	y := &Yielder{
		ds:        ds,
		batchSize: batchSize,
		dtype:     dtypes.Float32,
	}
	y.Reset()
	return y
}

// Shuffle sets the random number generator used to shuffle the order at every Reset.
// If infinite, pairs are sampled with replacement. Nil disables shuffling.
//
// It returns the Yielder, so configuration calls can be chained.
func (y *Yielder) Shuffle(rng *rand.Rand) *Yielder {
	y.shuffle = rng
	y.Reset()
	return y
}

// Infinite makes the Yielder loop over the dataset indefinitely, never returning io.EOF.
//
// It returns the Yielder, so configuration calls can be chained.
func (y *Yielder) Infinite(infinite bool) *Yielder {
	y.infinite = infinite
	y.Reset()
	return y
}

// DropIncompleteBatch makes the Yielder return io.EOF instead of a last batch smaller than batchSize.
//
// It returns the Yielder, so configuration calls can be chained.
func (y *Yielder) DropIncompleteBatch(drop bool) *Yielder {
	y.dropIncompleteBatch = drop
	return y
}

// DType sets the dtype of the images tensor. Default is Float32.
//
// It returns the Yielder, so configuration calls can be chained.
func (y *Yielder) DType(dtype dtypes.DType) *Yielder {
	y.dtype = dtype
	return y
}

// RemapLabels replaces label values from with to in the yielded labels tensor. Since labels are
// Int32 the target can be outside of the uint8 range of the masks, e.g. -1 for an ignored class.
//
// It returns the Yielder, so configuration calls can be chained.
func (y *Yielder) RemapLabels(from, to int) *Yielder {
	y.tensorRemap = &[2]int{from, to}
	return y
}

// Name implements train.Dataset.
func (y *Yielder) Name() string { return y.ds.Name() }

// Reset implements train.Dataset. It restarts the epoch, reshuffling if configured.
func (y *Yielder) Reset() {
	y.muSelection.Lock()
	defer y.muSelection.Unlock()
	y.next = 0
	if y.infinite || y.shuffle == nil {
		y.selection = nil
		return
	}
	y.selection = y.shuffle.Perm(y.ds.Len())
}

// yieldIndices selects the indices of the next batch.
func (y *Yielder) yieldIndices() (indices []int, err error) {
	y.muSelection.Lock()
	defer y.muSelection.Unlock()

	numItems := y.ds.Len()
	if numItems == 0 {
		return nil, io.EOF
	}
	indices = make([]int, 0, y.batchSize)
	for len(indices) < y.batchSize {
		var idx int
		if y.infinite {
			if y.shuffle != nil {
				idx = y.shuffle.Intn(numItems)
			} else {
				idx = y.next
				y.next = (y.next + 1) % numItems
			}
		} else {
			if y.next >= numItems {
				break
			}
			idx = y.next
			if y.selection != nil {
				idx = y.selection[y.next]
			}
			y.next++
		}
		indices = append(indices, idx)
	}
	if len(indices) == 0 || (y.dropIncompleteBatch && len(indices) < y.batchSize) {
		return nil, io.EOF
	}
	return indices, nil
}

// YieldImages returns the next batch of images, labels and their indices in the Dataset,
// before conversion to tensors.
func (y *Yielder) YieldImages() (images, labels []image.Image, indices []int, err error) {
	indices, err = y.yieldIndices()
	if err != nil {
		return
	}
	images = make([]image.Image, len(indices))
	labels = make([]image.Image, len(indices))
	for ii, idx := range indices {
		images[ii], labels[ii], err = y.ds.Item(idx)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return
}

// Yield implements train.Dataset. It returns:
//
//   - spec: the Yielder itself.
//   - inputs: the images batch, shaped `[batch_size, height, width, 3]`.
//   - labels: the class indices, shaped `[batch_size, height, width]` of Int32.
func (y *Yielder) Yield() (spec any, inputs, labels []*tensors.Tensor, err error) {
	spec = y
	images, labelImages, _, err := y.YieldImages()
	if err != nil {
		return
	}
	imagesT, err := ImagesToTensor(images, y.dtype, true)
	if err != nil {
		return nil, nil, nil, errors.WithMessagef(err, "dataset %q", y.ds.Name())
	}
	labelsT, err := LabelsToTensor(labelImages)
	if err != nil {
		return nil, nil, nil, errors.WithMessagef(err, "dataset %q", y.ds.Name())
	}
	if y.tensorRemap != nil {
		if _, err = RemapLabelTensor(labelsT, y.tensorRemap[0], y.tensorRemap[1]); err != nil {
			return nil, nil, nil, errors.WithMessagef(err, "dataset %q", y.ds.Name())
		}
	}
	inputs = []*tensors.Tensor{imagesT}
	labels = []*tensors.Tensor{labelsT}
	return
}
