// Package parser разбирает строки access-лога в формате common log format:
//
//	host ident user [date] "METHOD PATH PROTOCOL" status bytes ...
//
// Разбор идёт однопроходным токенизатором без регулярных выражений.
package parser

import (
	"strconv"
	"strings"

	"github.com/Totarae/TopLogURLs/internal/model"
)

// Parse превращает одну строку лога в RequestRecord.
// Ошибка всегда *ParseError и совпадает с ErrParse.
func Parse(line string) (model.RequestRecord, error) {
	var (
		date, request         string
		haveDate, haveRequest bool
		afterRequest          []string
	)

	for i := 0; i < len(line); {
		// всё нужное собрано, хвост строки (referer, user agent) не разбираем
		if haveDate && haveRequest && len(afterRequest) == 2 {
			break
		}
		switch c := line[i]; {
		case c == '[':
			end := strings.IndexByte(line[i+1:], ']')
			if end < 0 {
				return model.RequestRecord{}, fail("unterminated '['")
			}
			if !haveDate {
				date, haveDate = line[i+1:i+1+end], true
			}
			i += end + 2
		case c == '"':
			end := strings.IndexByte(line[i+1:], '"')
			if end < 0 {
				return model.RequestRecord{}, fail("unterminated quote")
			}
			if !haveRequest {
				request, haveRequest = line[i+1:i+1+end], true
			}
			i += end + 2
		case isSpace(c):
			i++
		default:
			j := i
			for j < len(line) && !isSpace(line[j]) && line[j] != '[' && line[j] != '"' {
				j++
			}
			// статус и размер: два токена сразу за запросом
			if haveRequest && len(afterRequest) < 2 {
				afterRequest = append(afterRequest, line[i:j])
			}
			i = j
		}
	}

	if !haveDate {
		return model.RequestRecord{}, fail("no [date] section")
	}
	if !haveRequest {
		return model.RequestRecord{}, fail("no quoted request")
	}
	fields := strings.Fields(request)
	if len(fields) < 2 {
		return model.RequestRecord{}, fail("request has no method and path")
	}
	if len(afterRequest) < 2 {
		return model.RequestRecord{}, fail("missing status or byte count")
	}

	status, ok := parseNumber(afterRequest[0])
	if !ok {
		return model.RequestRecord{}, fail("non-numeric status " + strconv.Quote(afterRequest[0]))
	}
	if status < 100 || status > 599 {
		return model.RequestRecord{}, fail("status out of range " + afterRequest[0])
	}
	bytes, ok := parseNumber(afterRequest[1])
	if !ok {
		return model.RequestRecord{}, fail("non-numeric byte count " + strconv.Quote(afterRequest[1]))
	}

	return model.RequestRecord{
		Date:       date,
		Method:     fields[0],
		URL:        fields[1],
		HTTPStatus: int(status),
		ByteCount:  bytes,
	}, nil
}

// parseNumber принимает только непустую строку из ASCII-цифр, влезающую в int64.
func parseNumber(tok string) (int64, bool) {
	if tok == "" {
		return 0, false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
