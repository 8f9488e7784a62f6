package arrow

import (
	"github.com/kokes/colexec/internal/bitmap"
	"github.com/kokes/colexec/internal/types"
)

// BoolArray is a bit-packed Boolean column, grounded on the teacher's
// ChunkBools (which also backs its data as a bitmap rather than a
// []bool, since booleans already are bits).
type BoolArray struct {
	data        *bitmap.Bitmap
	nullability *bitmap.Bitmap
	length      int
}

// NewBoolArray wraps a bitmap of truth values as a column of the given length.
func NewBoolArray(data *bitmap.Bitmap, length int, nullability *bitmap.Bitmap) *BoolArray {
	return &BoolArray{data: data, nullability: nullability, length: length}
}

// NewBoolArrayFromBools builds a BoolArray from a plain Go slice.
func NewBoolArrayFromBools(vals []bool, nullability *bitmap.Bitmap) *BoolArray {
	return &BoolArray{data: bitmap.NewBitmapFromBools(vals), nullability: nullability, length: len(vals)}
}

func (a *BoolArray) Len() int                    { return a.length }
func (a *BoolArray) Dtype() types.Dtype          { return types.DtypeBoolean }
func (a *BoolArray) Nullability() *bitmap.Bitmap { return a.nullability }
func (a *BoolArray) Get(i int) bool              { return a.data.Get(i) }
func (a *BoolArray) Data() *bitmap.Bitmap        { return a.data }
func (a *BoolArray) IsNull(i int) bool           { return a.nullability.Get(i) }

func (a *BoolArray) Clone() Array {
	return &BoolArray{data: a.data.Clone(), nullability: a.nullability.Clone(), length: a.length}
}

// Truths returns a bitmap with a bit set for every row that is true and
// not-null - the selection mask consumed by the Filter operator.
func (a *BoolArray) Truths() *bitmap.Bitmap {
	bm := a.data.Clone()
	bm.AndNot(a.nullability)
	return bm
}

func (a *BoolArray) Take(indices []int) Array {
	out := make([]bool, len(indices))
	var nb *bitmap.Bitmap
	for i, idx := range indices {
		out[i] = a.data.Get(idx)
		if a.nullability.Get(idx) {
			if nb == nil {
				nb = bitmap.NewBitmap(len(indices))
			}
			nb.Set(i, true)
		}
	}
	return NewBoolArrayFromBools(out, nb)
}
