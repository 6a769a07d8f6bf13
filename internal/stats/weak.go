package stats

import (
	"sort"

	"github.com/verte-zerg/wordfall/internal/model"
)

// SelectWeakWords selects the lowest-accuracy words from aggregates.
func SelectWeakWords(aggs []model.WordAggregate, top int) map[string]struct{} {
	weakSet := map[string]struct{}{}
	if len(aggs) == 0 {
		return weakSet
	}
	candidates := make([]model.WordAggregate, len(aggs))
	copy(candidates, aggs)
	sort.Slice(candidates, func(i, j int) bool {
		ai := accuracy(candidates[i])
		aj := accuracy(candidates[j])
		if ai == aj {
			return candidates[i].Word < candidates[j].Word
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for i := 0; i < top; i++ {
		if accuracy(candidates[i]) >= 1 {
			break
		}
		weakSet[candidates[i].Word] = struct{}{}
	}
	return weakSet
}

func accuracy(agg model.WordAggregate) float64 {
	total := agg.Caught + agg.Missed
	if total == 0 {
		return 1.0
	}
	return float64(agg.Caught) / float64(total)
}
