// Package output выводит рейтинг: текстом в консоль или в Parquet-файл.
package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Totarae/TopLogURLs/internal/model"
	"github.com/Totarae/TopLogURLs/internal/ranker"
)

// WriteText пишет первые n записей строками "<url> <totalBytes>".
func WriteText(w io.Writer, result model.RankedResult, n int) error {
	out := bufio.NewWriter(w)
	for _, e := range ranker.Top(result, n) {
		if _, err := fmt.Fprintf(out, "%s %d\n", e.URL, e.TotalBytes); err != nil {
			return err
		}
	}
	return out.Flush()
}
