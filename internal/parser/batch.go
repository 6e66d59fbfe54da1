package parser

import (
	"errors"
	"strings"

	"github.com/Totarae/TopLogURLs/internal/model"
)

// ParseText разбирает весь текст лога. Строки разделяются "\n" или "\r\n",
// пустые строки отбрасываются. Битые строки пропускаются и считаются в
// ParseStats.Skipped; их ошибки (с номером строки) возвращаются для логирования.
func ParseText(text string) ([]model.RequestRecord, model.ParseStats, []error) {
	var (
		records []model.RequestRecord
		stats   model.ParseStats
		errs    []error
	)

	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		stats.Lines++

		rec, err := Parse(line)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = n + 1
			}
			stats.Skipped++
			errs = append(errs, err)
			continue
		}
		stats.Parsed++
		records = append(records, rec)
	}
	return records, stats, errs
}
