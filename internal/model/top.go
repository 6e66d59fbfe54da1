package model

// TopResponse представляет JSON-ответ POST /api/top.
type TopResponse struct {
	ID      string       `json:"id"`
	Source  string       `json:"source"`
	TopN    int          `json:"top_n"`
	Stats   ParseStats   `json:"stats"`
	Entries RankedResult `json:"entries"`
}

// NewTopResponse собирает ответ из сохранённого отчёта.
func NewTopResponse(r *Report) TopResponse {
	entries := r.Entries
	if entries == nil {
		entries = RankedResult{}
	}
	return TopResponse{
		ID:      r.ID,
		Source:  r.Source,
		TopN:    r.TopN,
		Stats:   r.Stats,
		Entries: entries,
	}
}
