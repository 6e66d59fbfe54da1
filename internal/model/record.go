package model

// RequestRecord представляет разобранную строку access-лога.
// Date не разбирается в time.Time и хранится как есть.
type RequestRecord struct {
	Date       string `json:"date"`
	Method     string `json:"method"`
	URL        string `json:"url"`
	HTTPStatus int    `json:"http_status"`
	ByteCount  int64  `json:"byte_count"`
}

// IsSuccessfulGet сообщает, участвует ли запись в рейтинге.
func (r RequestRecord) IsSuccessfulGet() bool {
	return r.Method == "GET" && r.HTTPStatus >= 200 && r.HTTPStatus <= 299
}

// ParseStats считает строки пакетного разбора.
type ParseStats struct {
	Lines   int `json:"lines"`
	Parsed  int `json:"parsed"`
	Skipped int `json:"skipped"`
}
