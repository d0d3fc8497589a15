package core

import "testing"

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("RNGs with equal seeds diverged at step %d", i)
		}
	}
}

func TestRNGRanges(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		if n := r.Intn(4); n < 0 || n >= 4 {
			t.Fatalf("Intn(4) = %d", n)
		}
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64() = %f", f)
		}
		if s := r.Signed(); s < -1 || s >= 1 {
			t.Fatalf("Signed() = %f", s)
		}
	}
	if r.Intn(0) != 0 {
		t.Error("Intn(0) should return 0")
	}
}

func TestRNGZeroSeed(t *testing.T) {
	if NewRNG(0).State() != 1 {
		t.Error("zero seed should be replaced with 1")
	}
}
