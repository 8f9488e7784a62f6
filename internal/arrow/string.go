package arrow

import (
	"github.com/kokes/colexec/internal/bitmap"
	"github.com/kokes/colexec/internal/types"
)

// StringArray is a UTF-8 text column stored as a single contiguous byte
// buffer plus N+1 offsets, grounded on the teacher's ChunkStrings.
type StringArray struct {
	data        []byte
	offsets     []uint32
	nullability *bitmap.Bitmap
}

// NewStringArray builds a StringArray from plain Go strings.
func NewStringArray(values []string, nullability *bitmap.Bitmap) *StringArray {
	offsets := make([]uint32, len(values)+1)
	var total int
	for _, v := range values {
		total += len(v)
	}
	data := make([]byte, 0, total)
	for i, v := range values {
		data = append(data, v...)
		offsets[i+1] = uint32(len(data))
	}
	return &StringArray{data: data, offsets: offsets, nullability: nullability}
}

func (a *StringArray) Len() int                    { return len(a.offsets) - 1 }
func (a *StringArray) Dtype() types.Dtype          { return types.DtypeUtf8 }
func (a *StringArray) Nullability() *bitmap.Bitmap { return a.nullability }
func (a *StringArray) IsNull(i int) bool           { return a.nullability.Get(i) }

// Get returns the i-th value. Note equality/comparison kernels must use
// byte equality, not a locale-aware string comparison.
func (a *StringArray) Get(i int) string {
	return string(a.data[a.offsets[i]:a.offsets[i+1]])
}

// GetBytes returns the i-th value without copying into a string header.
func (a *StringArray) GetBytes(i int) []byte {
	return a.data[a.offsets[i]:a.offsets[i+1]]
}

func (a *StringArray) Clone() Array {
	data := make([]byte, len(a.data))
	copy(data, a.data)
	offsets := make([]uint32, len(a.offsets))
	copy(offsets, a.offsets)
	return &StringArray{data: data, offsets: offsets, nullability: a.nullability.Clone()}
}

func (a *StringArray) Take(indices []int) Array {
	vals := make([]string, len(indices))
	var nb *bitmap.Bitmap
	for i, idx := range indices {
		vals[i] = a.Get(idx)
		if a.nullability.Get(idx) {
			if nb == nil {
				nb = bitmap.NewBitmap(len(indices))
			}
			nb.Set(i, true)
		}
	}
	return NewStringArray(vals, nb)
}
