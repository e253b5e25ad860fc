// internal/utils/prng_test.go
package utils

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := NewPRNG(42)
	b := NewPRNG(42)

	for i := 0; i < 100; i++ {
		if av, bv := a.Float64(), b.Float64(); av != bv {
			t.Fatalf("draw %d diverged: %v vs %v", i, av, bv)
		}
		if av, bv := a.Intn(1000), b.Intn(1000); av != bv {
			t.Fatalf("int draw %d diverged: %d vs %d", i, av, bv)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := NewPRNG(1)
	b := NewPRNG(2)

	same := true
	for i := 0; i < 16; i++ {
		if a.Float64() != b.Float64() {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical prefixes")
	}
}

func TestChanceBounds(t *testing.T) {
	p := NewPRNG(7)

	for i := 0; i < 100; i++ {
		if p.Chance(0) {
			t.Fatal("zero chance fired")
		}
		if p.Chance(-0.5) {
			t.Fatal("negative chance fired")
		}
		if !p.Chance(1) {
			t.Fatal("certain chance missed")
		}
		if !p.Chance(1.5) {
			t.Fatal("overshooting chance missed")
		}
	}
}

func TestIntnStaysInRange(t *testing.T) {
	p := NewPRNG(3)
	for i := 0; i < 1000; i++ {
		if v := p.Intn(10); v < 0 || v >= 10 {
			t.Fatalf("Intn(10) = %d", v)
		}
	}
}
