package bitmap

import (
	"math/bits"
	"testing"
)

func TestBitmapSetsGets(t *testing.T) {
	vals := []bool{true, false, false, false, true, true, false}
	bm := NewBitmap(0)
	for j, v := range vals {
		bm.Set(j, v)
	}
	for j, v := range vals {
		if bm.Get(j) != v {
			t.Fatalf("position %v: expected %v, got %v", j, v, bm.Get(j))
		}
	}
}

func TestBitmapCount(t *testing.T) {
	tests := []struct {
		length int
		set    []int
	}{
		{0, nil},
		{1, nil},
		{1, []int{0}},
		{32, []int{12, 14, 16}},
		{64, []int{12, 14, 16}},
		{65, []int{12, 14, 64}},
		{300, []int{12, 14, 200, 245, 244, 299}},
	}
	for _, test := range tests {
		bm := NewBitmap(test.length)
		for _, pos := range test.set {
			bm.Set(pos, true)
		}
		if bm.Count() != len(test.set) {
			t.Errorf("expected %v set bits, got %v", len(test.set), bm.Count())
		}
	}
}

func TestBitmapKeepFirstN(t *testing.T) {
	bm := NewBitmapFromBools([]bool{true, true, false, true, true, true})
	bm.KeepFirstN(2)
	if bm.Count() != 2 {
		t.Fatalf("expected 2 bits left set, got %v", bm.Count())
	}
	if !bm.Get(0) || !bm.Get(1) {
		t.Fatalf("expected the first two set bits to survive")
	}
	if bm.Get(3) || bm.Get(4) {
		t.Fatalf("expected later set bits to be cleared")
	}
}

func TestBitmapOrNilTolerant(t *testing.T) {
	bm := NewBitmapFromBools([]bool{true, false, true})
	if Or(nil, nil) != nil {
		t.Fatalf("Or(nil, nil) should be nil")
	}
	if Or(bm, nil).Count() != bm.Count() {
		t.Fatalf("Or(bm, nil) should behave like a clone of bm")
	}
	if Or(nil, bm).Count() != bm.Count() {
		t.Fatalf("Or(nil, bm) should behave like a clone of bm")
	}
}

func TestBitmapAndNot(t *testing.T) {
	a := NewBitmapFromBools([]bool{true, true, true, false})
	b := NewBitmapFromBools([]bool{true, false, true, false})
	a.AndNot(b)
	want := []bool{false, true, false, false}
	for i, w := range want {
		if a.Get(i) != w {
			t.Errorf("position %d: expected %v, got %v", i, w, a.Get(i))
		}
	}
}

func TestBitmapInvert(t *testing.T) {
	bm := NewBitmapFromBools([]bool{true, false, true, false, true})
	bm.Invert()
	want := []bool{false, true, false, true, false}
	for i, w := range want {
		if bm.Get(i) != w {
			t.Errorf("position %d: expected %v, got %v", i, w, bm.Get(i))
		}
	}
}

func TestBitmapIndices(t *testing.T) {
	bm := NewBitmapFromBools([]bool{false, true, false, true, true})
	got := bm.Indices()
	want := []int{1, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("position %d: expected %v, got %v", i, w, got[i])
		}
	}
}

func ones(data []uint64) int {
	sum := 0
	for _, el := range data {
		sum += bits.OnesCount64(el)
	}
	return sum
}

func TestBitmapDataConsistentWithCount(t *testing.T) {
	bm := NewBitmap(200)
	for _, pos := range []int{12, 14, 199} {
		bm.Set(pos, true)
	}
	if ones(bm.Data()) != bm.Count() {
		t.Fatalf("Data() word population should match Count()")
	}
}
