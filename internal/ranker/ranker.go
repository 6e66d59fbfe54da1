// Package ranker агрегирует байты по URL и строит рейтинг.
package ranker

import (
	"math"
	"sort"

	"github.com/Totarae/TopLogURLs/internal/model"
)

// Aggregate суммирует ByteCount по URL для успешных GET-запросов.
// URL сравниваются как есть, без нормализации.
func Aggregate(records []model.RequestRecord) map[string]int64 {
	totals := make(map[string]int64)
	for _, rec := range records {
		if !rec.IsSuccessfulGet() {
			continue
		}
		sum := totals[rec.URL] // ноль, если URL ещё не встречался
		totals[rec.URL] = addSaturating(sum, rec.ByteCount)
	}
	return totals
}

// addSaturating складывает неотрицательные счётчики, упираясь в MaxInt64
// вместо переполнения.
func addSaturating(sum, n int64) int64 {
	if n > math.MaxInt64-sum {
		return math.MaxInt64
	}
	return sum + n
}

// Rank возвращает все URL, упорядоченные по убыванию суммарных байт.
func Rank(records []model.RequestRecord) model.RankedResult {
	totals := Aggregate(records)

	result := make(model.RankedResult, 0, len(totals))
	for url, total := range totals {
		result = append(result, model.RankedEntry{URL: url, TotalBytes: total})
	}
	sort.Slice(result, func(i, j int) bool {
		return ranksHigher(result[i], result[j])
	})
	return result
}

// Top возвращает первые n записей рейтинга. При n <= 0 результат пустой.
func Top(result model.RankedResult, n int) model.RankedResult {
	if n <= 0 {
		return model.RankedResult{}
	}
	if n > len(result) {
		n = len(result)
	}
	return result[:n:n]
}

// ranksHigher задаёт порядок рейтинга: больше байт выше, при равенстве URL
// по возрастанию. Порядок полный, результат детерминирован.
func ranksHigher(a, b model.RankedEntry) bool {
	if a.TotalBytes != b.TotalBytes {
		return a.TotalBytes > b.TotalBytes
	}
	return a.URL < b.URL
}
