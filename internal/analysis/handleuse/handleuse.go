// Package handleuse defines an Analyzer that reports a one-shot handle used
// after it was consumed.
//
// A oneshot.Sender is always consumed by Send, a oneshot.Receiver by
// Receive, and any handle by Close. ReceiveContext, Wait and WaitWith
// consume only on success (a cancelled wait may be retried), and TryReceive
// only once a value or ErrSenderClosed arrives. The analyzer reports a
// send or receive call on a handle variable that an earlier consuming call
// in the same function already used on every path, for example:
//
//	s.Send(1)
//	s.Send(2) // reported
//
// It also reports copies made by dereferencing a handle pointer (v := *s):
// a copy would let the same right be used twice.
//
// Calls in different branches of an if or switch are not reported, and
// reassigning the variable (s, r = ch.Split()) starts it afresh.
package handleuse

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// PkgPath is the import path of the package whose handles are checked.
const PkgPath = "github.com/randomizedcoder/go-oneshot"

const doc = `report one-shot handles used after being consumed

A oneshot.Sender, Receiver or PollReceiver may be used once. This check
reports a send or receive on a handle variable that was already consumed
on every path within the function, and copies of handles made by
dereferencing.`

// Analyzer is the handleuse analysis.
var Analyzer = &analysis.Analyzer{
	Name:     "handleuse",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// consuming lists, per handle type, the methods that always consume the
// handle.
var consuming = map[string]map[string]bool{
	"Sender":       {"Send": true, "Close": true},
	"Receiver":     {"Receive": true, "Close": true},
	"PollReceiver": {"Close": true},
}

// using lists, per handle type, the methods that must not be called on a
// consumed handle.
var using = map[string]map[string]bool{
	"Sender":       {"Send": true},
	"Receiver":     {"Receive": true, "ReceiveContext": true},
	"PollReceiver": {"TryReceive": true, "Wait": true, "WaitWith": true},
}

// use is a consuming call already seen for a handle variable.
type use struct {
	method string
	pos    token.Pos
	block  ast.Node
}

type funcKey struct {
	fn  ast.Node
	obj types.Object
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	seen := make(map[funcKey]use)

	filter := []ast.Node{
		(*ast.CallExpr)(nil),
		(*ast.AssignStmt)(nil),
		(*ast.StarExpr)(nil),
	}
	insp.WithStack(filter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		fn := enclosingFunc(stack)
		if fn == nil {
			return true
		}

		switch n := n.(type) {
		case *ast.AssignStmt:
			for _, lhs := range n.Lhs {
				if id, ok := lhs.(*ast.Ident); ok {
					if obj := pass.TypesInfo.ObjectOf(id); obj != nil {
						delete(seen, funcKey{fn, obj})
					}
				}
			}

		case *ast.StarExpr:
			tv, ok := pass.TypesInfo.Types[n]
			if !ok || !tv.IsValue() {
				return true
			}
			if name := handleName(tv.Type); name != "" {
				pass.Reportf(n.Pos(), "copy of oneshot.%s: use the handle through its pointer", name)
			}

		case *ast.CallExpr:
			checkCall(pass, n, fn, stack, seen)
		}
		return true
	})
	return nil, nil
}

func checkCall(pass *analysis.Pass, call *ast.CallExpr, fn ast.Node, stack []ast.Node, seen map[funcKey]use) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return
	}
	id, ok := sel.X.(*ast.Ident)
	if !ok {
		return
	}
	obj := pass.TypesInfo.ObjectOf(id)
	if obj == nil {
		return
	}
	name := handleName(obj.Type())
	if name == "" {
		return
	}

	key := funcKey{fn, obj}
	method := sel.Sel.Name
	prev, ok := seen[key]
	if ok && dominates(prev.block, stack) {
		// Close after a consuming call is a documented no-op.
		if using[name][method] {
			pass.Reportf(call.Pos(), "%s.%s on a consumed oneshot.%s (consumed by %s at %v)",
				id.Name, method, name, prev.method, pass.Fset.Position(prev.pos))
		}
		return
	}
	if consuming[name][method] {
		seen[key] = use{method: method, pos: call.Pos(), block: innermostBlock(stack)}
	}
}

// handleName returns "Sender", "Receiver" or "PollReceiver" if t is a
// handle type or a pointer to one, and "" otherwise.
func handleName(t types.Type) string {
	if p, ok := types.Unalias(t).(*types.Pointer); ok {
		t = p.Elem()
	}
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return ""
	}
	obj := named.Origin().Obj()
	if obj.Pkg() == nil || obj.Pkg().Path() != PkgPath {
		return ""
	}
	if _, ok := consuming[obj.Name()]; !ok {
		return ""
	}
	return obj.Name()
}

// enclosingFunc returns the innermost function declaration or literal on
// the stack.
func enclosingFunc(stack []ast.Node) ast.Node {
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i].(type) {
		case *ast.FuncDecl, *ast.FuncLit:
			return stack[i]
		}
	}
	return nil
}

// innermostBlock returns the closest statement list holding the node on top
// of stack.
func innermostBlock(stack []ast.Node) ast.Node {
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i].(type) {
		case *ast.BlockStmt, *ast.CaseClause, *ast.CommClause:
			return stack[i]
		}
	}
	return nil
}

// dominates reports whether block, the statement list of an earlier call,
// encloses the current node. Source order within a function plus enclosure
// means the earlier call runs on every path to this one.
func dominates(block ast.Node, stack []ast.Node) bool {
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i].(type) {
		case *ast.FuncDecl, *ast.FuncLit:
			return false
		}
		if stack[i] == block {
			return true
		}
	}
	return false
}
