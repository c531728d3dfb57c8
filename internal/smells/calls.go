package smells

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"github.com/nao1215/smellscan/internal/model"
)

// Default thresholds for the call and control-flow detectors.
const (
	DefaultMaxCalls = 1
	DefaultMaxDepth = 1
)

// DuplicateMethodCall reports method calls whose exact text repeats within
// one function more often than the limit.
type DuplicateMethodCall struct {
	max int
}

func (d *DuplicateMethodCall) SmellType() string { return "DuplicateMethodCall" }
func (d *DuplicateMethodCall) Category() string  { return "Duplication" }

func (d *DuplicateMethodCall) Configure(cfg model.DetectorConfig) error {
	d.max = limit(cfg.Max, DefaultMaxCalls)
	return nil
}

func (d *DuplicateMethodCall) Examine(ctx *Context) []*model.SmellWarning {
	var warnings []*model.SmellWarning
	ctx.EachFunc(func(fd *ast.FuncDecl) {
		var order []string
		positions := make(map[string][]token.Pos)
		ast.Inspect(fd.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			if _, ok := call.Fun.(*ast.SelectorExpr); !ok {
				return true
			}
			text := types.ExprString(call)
			if _, seen := positions[text]; !seen {
				order = append(order, text)
			}
			positions[text] = append(positions[text], call.Pos())
			return true
		})

		for _, text := range order {
			count := len(positions[text])
			if count <= d.max {
				continue
			}
			warnings = append(warnings, ctx.Warn(d, FuncContext(fd), positions[text],
				fmt.Sprintf("calls %s %d times", text, count),
				model.D("name", text),
				model.D("count", count)))
		}
	})
	return warnings
}

// NestedIterators reports functions whose loops nest deeper than the limit.
type NestedIterators struct {
	max int
}

func (d *NestedIterators) SmellType() string { return "NestedIterators" }
func (d *NestedIterators) Category() string  { return "NestedIterators" }

func (d *NestedIterators) Configure(cfg model.DetectorConfig) error {
	d.max = limit(cfg.Max, DefaultMaxDepth)
	return nil
}

func (d *NestedIterators) Examine(ctx *Context) []*model.SmellWarning {
	var warnings []*model.SmellWarning
	ctx.EachFunc(func(fd *ast.FuncDecl) {
		depth, pos := loopDepth(fd.Body)
		if depth <= d.max {
			return
		}
		warnings = append(warnings, ctx.Warn(d, FuncContext(fd), []token.Pos{pos},
			fmt.Sprintf("contains iterators nested %d deep", depth),
			model.D("depth", depth)))
	})
	return warnings
}

// loopDepth returns the deepest for/range nesting in root and the position
// of the innermost loop at that depth.
func loopDepth(root ast.Node) (int, token.Pos) {
	deepest, at := 0, token.NoPos
	var visit func(n ast.Node, depth int)
	visit = func(n ast.Node, depth int) {
		ast.Inspect(n, func(child ast.Node) bool {
			if child == n {
				return true
			}
			switch child.(type) {
			case *ast.ForStmt, *ast.RangeStmt:
				d := depth + 1
				if d > deepest {
					deepest, at = d, child.Pos()
				}
				visit(child, d)
				return false
			}
			return true
		})
	}
	visit(root, 0)
	return deepest, at
}

// BooleanParameter reports parameters of type bool, which usually switch a
// function between two behaviours.
type BooleanParameter struct{}

func (d *BooleanParameter) SmellType() string                      { return "BooleanParameter" }
func (d *BooleanParameter) Category() string                       { return "ControlCouple" }
func (d *BooleanParameter) Configure(_ model.DetectorConfig) error { return nil }

func (d *BooleanParameter) Examine(ctx *Context) []*model.SmellWarning {
	var warnings []*model.SmellWarning
	ctx.EachFunc(func(fd *ast.FuncDecl) {
		if fd.Type.Params == nil {
			return
		}
		for _, field := range fd.Type.Params.List {
			ident, ok := field.Type.(*ast.Ident)
			if !ok || ident.Name != "bool" {
				continue
			}
			for _, name := range field.Names {
				if name.Name == "_" {
					continue
				}
				warnings = append(warnings, ctx.Warn(d, FuncContext(fd), []token.Pos{name.Pos()},
					fmt.Sprintf("has boolean parameter '%s'", name.Name),
					model.D("name", name.Name)))
			}
		}
	})
	return warnings
}
