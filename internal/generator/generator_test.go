package generator

import "testing"

func TestPickStaysInSet(t *testing.T) {
	gen := NewSeeded(1)
	labels := []string{"cat", "dog"}
	for i := 0; i < 50; i++ {
		got := gen.Pick(labels)
		if got != "cat" && got != "dog" {
			t.Fatalf("unexpected label %q", got)
		}
	}
}

func TestWeightedFavorsWeakLabels(t *testing.T) {
	gen := NewSeeded(3)
	picker := gen.Weighted(map[string]struct{}{"giraffe": {}}, 9)
	labels := []string{"elephant", "giraffe"}
	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		counts[picker.Pick(labels)]++
	}
	if counts["giraffe"] < counts["elephant"]*4 {
		t.Fatalf("expected weak label to dominate, got %v", counts)
	}
}
