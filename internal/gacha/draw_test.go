package gacha

import (
	"errors"
	"math"
	"testing"
)

func TestDrawBounds(t *testing.T) {
	tests := []struct {
		p       float64
		want    bool
		wantErr bool
	}{
		{p: 0, want: false},
		{p: 1, want: true},
		{p: -0.1, wantErr: true},
		{p: 1.1, wantErr: true},
		{p: math.NaN(), wantErr: true},
		{p: math.Inf(1), wantErr: true},
	}
	for _, tc := range tests {
		got, err := Draw(tc.p, NewSeededRNG(1))
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidProb) {
				t.Errorf("p=%v: err=%v want ErrInvalidProb", tc.p, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("p=%v: got=%v err=%v", tc.p, got, err)
		}
	}
}

func TestDrawStatApprox(t *testing.T) {
	const p = 0.3
	const n = 100000
	rng := NewSeededRNG(42)
	hit := 0
	for i := 0; i < n; i++ {
		ok, err := Draw(p, rng)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			hit++
		}
	}
	freq := float64(hit) / float64(n)
	if diff := freq - p; diff > 0.01 || diff < -0.01 {
		t.Fatalf("freq=%f not close to p=%f", freq, p)
	}
}

func TestStreamRNGsDiffer(t *testing.T) {
	a, b := NewStreamRNG(7, 0), NewStreamRNG(7, 1)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same > 0 {
		t.Fatalf("streams overlap in %d of 100 draws", same)
	}
	if NewSeededRNG(7).Float64() != NewStreamRNG(7, 0).Float64() {
		t.Fatalf("seeded source should be stream 0")
	}
}

func TestDefaultRNGRange(t *testing.T) {
	rng := DefaultRNG()
	var sum float64
	const n = 10000
	for range n {
		v := rng.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("value %v outside [0,1)", v)
		}
		sum += v
	}
	if mean := sum / n; mean < 0.45 || mean > 0.55 {
		t.Fatalf("mean %v far from 0.5", mean)
	}
}
