package model

// RankedEntry представляет URL и суммарный объём переданных байт.
type RankedEntry struct {
	URL        string `json:"url"`
	TotalBytes int64  `json:"total_bytes"`
}

// RankedResult упорядочен по TotalBytes по убыванию, при равенстве по URL.
type RankedResult []RankedEntry
