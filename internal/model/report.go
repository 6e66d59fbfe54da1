package model

import "time"

// Report is one stored analysis run.
type Report struct {
	ID      string       `json:"id"`
	Source  string       `json:"source"`
	Created time.Time    `json:"created"`
	TopN    int          `json:"top_n"`
	Stats   ParseStats   `json:"stats"`
	Entries RankedResult `json:"entries"`
}
