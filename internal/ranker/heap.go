package ranker

import (
	"container/heap"
	"sort"

	"github.com/Totarae/TopLogURLs/internal/model"
)

// TopN даёт тот же результат, что Top(Rank(records), n), но сортирует
// только n лучших записей: остальные отсекаются min-кучей размера n.
func TopN(records []model.RequestRecord, n int) model.RankedResult {
	return SelectTop(Aggregate(records), n)
}

// SelectTop выбирает n лучших URL из уже посчитанных сумм.
func SelectTop(totals map[string]int64, n int) model.RankedResult {
	if n <= 0 {
		return model.RankedResult{}
	}

	h := make(entryHeap, 0, min(n, len(totals)))
	for url, total := range totals {
		e := model.RankedEntry{URL: url, TotalBytes: total}
		if len(h) < n {
			heap.Push(&h, e)
			continue
		}
		if ranksHigher(e, h[0]) {
			h[0] = e
			heap.Fix(&h, 0)
		}
	}

	result := model.RankedResult(h)
	sort.Slice(result, func(i, j int) bool {
		return ranksHigher(result[i], result[j])
	})
	return result
}

// A min heap: the root is the entry that ranks lowest.
type entryHeap []model.RankedEntry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	return ranksHigher(h[j], h[i])
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *entryHeap) Push(e interface{}) {
	*h = append(*h, e.(model.RankedEntry))
}

func (h *entryHeap) Pop() interface{} {
	prev := *h
	n := len(prev)
	it := prev[n-1]
	*h = prev[0 : n-1]
	return it
}
