package fusion

import (
	"math"
	"testing"
)

func TestFuseStaysStrictlyBounded(t *testing.T) {
	series := [][]float64{
		{0.0},
		{0.2, -0.1, 0.05},
		{0.99, 0.99, 0.99},
		{-0.99, -0.98, -0.97},
		{0.9, -0.9, 0.9, -0.9},
		{5.0, -7.0, 100.0}, // out-of-range inputs clamp, never escape
	}
	for _, s := range series {
		a, err := Fuse(s, nil, DefaultEpsA, DefaultEpsW)
		if err != nil {
			t.Fatalf("fuse %v: %v", s, err)
		}
		if !(a > -1.0 && a < 1.0) {
			t.Fatalf("fuse %v = %v, expected strictly inside (-1,1)", s, a)
		}
	}
}

func TestFuseOrderInvariance(t *testing.T) {
	seq := []float64{0.7, -0.2, 0.1, 0.6, -0.5, 0.3}
	rev := make([]float64, len(seq))
	for i, v := range seq {
		rev[len(seq)-1-i] = v
	}

	a, err := Fuse(seq, nil, DefaultEpsA, DefaultEpsW)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Fuse(rev, nil, DefaultEpsA, DefaultEpsW)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a-b) >= 1e-12 {
		t.Fatalf("forward %v vs reversed %v differ by %v", a, b, math.Abs(a-b))
	}
}

func TestFuseEmptySeriesRejected(t *testing.T) {
	if _, err := Fuse(nil, nil, DefaultEpsA, DefaultEpsW); err == nil {
		t.Fatal("expected error for empty series")
	}
	if _, err := Fuse([]float64{}, nil, DefaultEpsA, DefaultEpsW); err == nil {
		t.Fatal("expected error for empty series")
	}
}

func TestFuseWeightLengthMismatchRejected(t *testing.T) {
	_, err := Fuse([]float64{0.1, 0.2, 0.3}, []float64{1, 2}, DefaultEpsA, DefaultEpsW)
	if err == nil {
		t.Fatal("expected error for mismatched weights")
	}
}

func TestFuseUniformWeightsMatchNilWeights(t *testing.T) {
	seq := []float64{0.4, -0.3, 0.2}
	a, err := Fuse(seq, nil, DefaultEpsA, DefaultEpsW)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Fuse(seq, []float64{1, 1, 1}, DefaultEpsA, DefaultEpsW)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("nil weights %v != uniform weights %v", a, b)
	}
}

func TestFuseWeightsShiftResult(t *testing.T) {
	seq := []float64{-0.8, 0.8}
	a, err := Fuse(seq, []float64{10, 1}, DefaultEpsA, DefaultEpsW)
	if err != nil {
		t.Fatal(err)
	}
	if a >= 0 {
		t.Fatalf("heavily negative-weighted series fused to %v, expected < 0", a)
	}
}

func TestFuseConstantSeriesRecoversValue(t *testing.T) {
	// atanh/tanh are inverses, so a constant series fuses back to itself.
	for _, v := range []float64{-0.62, -0.1, 0.0, 0.45, 0.9} {
		a, err := Fuse([]float64{v, v, v}, nil, DefaultEpsA, DefaultEpsW)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(a-v) > 1e-9 {
			t.Fatalf("constant series at %v fused to %v", v, a)
		}
	}
}

func TestFuseSaturatedSeriesStaysBelowOne(t *testing.T) {
	a, err := Fuse([]float64{0.99, 0.99, 0.99}, nil, DefaultEpsA, DefaultEpsW)
	if err != nil {
		t.Fatal(err)
	}
	if !(a > 0.9 && a < 1.0) {
		t.Fatalf("saturated series fused to %v, expected close to but below 1", a)
	}
}
