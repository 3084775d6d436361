// Effectvet reports suspicious uses of the effect package.
//
// Find returns nil when no handler of the searched kind is visible, and
// YieldTo panics on a nil handler; passing the result of Find straight to
// YieldTo turns a missing handler into a runtime crash at the yield site.
// Effectvet flags those call sites so the nil case is handled where the
// effect is performed.
//
// Usage:
//
//	effectvet ./...
package main

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/analysis/singlechecker"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

const effectPkg = "github.com/dispatchrun/effect"

var analyzer = &analysis.Analyzer{
	Name:     "effectvet",
	Doc:      "report yields to handlers that may be nil",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	ins := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	ins.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		if !isEffectFunc(pass, call, "YieldTo") && !isEffectFunc(pass, call, "MYieldTo") {
			return
		}
		if len(call.Args) == 0 {
			return
		}
		arg, ok := call.Args[0].(*ast.CallExpr)
		if !ok || !isEffectFunc(pass, arg, "Find") {
			return
		}
		pass.Reportf(arg.Pos(), "result of effect.Find may be nil; check it before yielding")
	})
	return nil, nil
}

func isEffectFunc(pass *analysis.Pass, call *ast.CallExpr, name string) bool {
	fn := typeutil.StaticCallee(pass.TypesInfo, call)
	return fn != nil && fn.Pkg() != nil && fn.Pkg().Path() == effectPkg && fn.Name() == name
}

func main() {
	singlechecker.Main(analyzer)
}
