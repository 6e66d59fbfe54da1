// Package main запускает multichecker с проверками для toplog.
//
// Он включает:
//   - анализаторы go/analysis/passes: printf, shadow, structtag, nilness,
//     errorsas, httpresponse, lostcancel, sortslice, copylock, unusedresult
//   - все SA-анализаторы staticcheck и упрощения S1 (simple)
//   - U1000 (неиспользуемый код)
//   - публичный анализатор bodyclose
//   - собственный анализатор nostdout (вывод в stdout только из пакета main)
//
// fieldalignment не подключён: порядок полей моделей повторяет JSON и SQL.
//
// Запуск:
//
//	go run ./cmd/staticlint ./...
package main

import (
	"strings"

	"github.com/timakin/bodyclose/passes/bodyclose"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/sortslice"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/unused"

	"github.com/Totarae/TopLogURLs/cmd/staticlint/nostdout"
)

func main() {
	multichecker.Main(analyzers()...)
}

func analyzers() []*analysis.Analyzer {
	list := []*analysis.Analyzer{
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer, // json и parquet теги моделей
		nilness.Analyzer,
		errorsas.Analyzer, // errors.As с *ParseError и *http.MaxBytesError
		httpresponse.Analyzer,
		lostcancel.Analyzer, // таймауты Ping и Shutdown
		sortslice.Analyzer,  // сортировка рейтинга
		copylock.Analyzer,   // репозиторий с RWMutex
		unusedresult.Analyzer,
	}

	// SA-анализаторы
	for _, a := range staticcheck.Analyzers {
		if strings.HasPrefix(a.Analyzer.Name, "SA") {
			list = append(list, a.Analyzer)
		}
	}

	// упрощения
	for _, a := range simple.Analyzers {
		if strings.HasPrefix(a.Analyzer.Name, "S1") {
			list = append(list, a.Analyzer)
		}
	}

	list = append(list, unused.Analyzer.Analyzer)

	// публичный анализатор (не из staticcheck)
	list = append(list, bodyclose.Analyzer)

	// собственный анализатор
	list = append(list, nostdout.Analyzer)
	return list
}
