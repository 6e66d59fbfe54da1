// Package nostdout содержит анализатор, который запрещает писать в stdout
// в обход io.Writer. Вывод рейтинга идёт только через переданный writer,
// служебные сообщения через zap; пакет main и тесты не проверяются.
package nostdout

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer сообщает о fmt.Print*, print/println и os.Stdout вне пакета main.
var Analyzer = &analysis.Analyzer{
	Name: "nostdout",
	Doc:  "запрещает прямой вывод в stdout вне пакета main",
	Run:  run,
}

var stdoutFuncs = map[string]bool{
	"fmt.Print":   true,
	"fmt.Printf":  true,
	"fmt.Println": true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() == "main" {
		return nil, nil
	}

	for _, file := range pass.Files {
		if strings.HasSuffix(pass.Fset.File(file.Pos()).Name(), "_test.go") {
			continue
		}

		ast.Inspect(file, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.CallExpr:
				if id, ok := node.Fun.(*ast.Ident); ok {
					if b, ok := pass.TypesInfo.Uses[id].(*types.Builtin); ok && (b.Name() == "print" || b.Name() == "println") {
						pass.Reportf(node.Pos(), "встроенный %s пишет в stderr, используйте логгер", b.Name())
					}
				}
			case *ast.SelectorExpr:
				switch obj := pass.TypesInfo.Uses[node.Sel].(type) {
				case *types.Func:
					if stdoutFuncs[obj.FullName()] {
						pass.Reportf(node.Pos(), "вызов %s вне пакета main, передайте io.Writer", obj.FullName())
					}
				case *types.Var:
					if obj.Pkg() != nil && obj.Pkg().Path() == "os" && obj.Name() == "Stdout" {
						pass.Reportf(node.Pos(), "os.Stdout вне пакета main, передайте io.Writer")
					}
				}
			}
			return true
		})
	}
	return nil, nil
}
