package smells

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/nao1215/smellscan/internal/model"
)

// references counts how often each identifier is used as a value in body.
// Field and method names after a selector dot are not references, and
// neither are the field keys of struct literals.
func references(body *ast.BlockStmt) (map[string]int, map[string][]token.Pos) {
	r := &refCounter{
		counts:    make(map[string]int),
		positions: make(map[string][]token.Pos),
	}
	r.walk(body, nil)
	return r.counts, r.positions
}

type refCounter struct {
	counts    map[string]int
	positions map[string][]token.Pos
}

func (r *refCounter) add(ident *ast.Ident) {
	r.counts[ident.Name]++
	r.positions[ident.Name] = append(r.positions[ident.Name], ident.Pos())
}

// walk counts the references in n. elided is the type of a composite
// literal in n that omits its own, as elements of a slice or map may.
func (r *refCounter) walk(n ast.Node, elided ast.Expr) {
	ast.Inspect(n, func(node ast.Node) bool {
		switch e := node.(type) {
		case *ast.SelectorExpr:
			r.walk(e.X, nil)
			return false
		case *ast.CompositeLit:
			r.compositeLit(e, elided)
			return false
		case *ast.Ident:
			r.add(e)
		}
		return true
	})
}

// compositeLit counts the references in lit. Keys of map and array
// literals are values; identifier keys of any other literal name fields.
// A literal whose type is only a name is assumed to be a struct.
func (r *refCounter) compositeLit(lit *ast.CompositeLit, elided ast.Expr) {
	typ := lit.Type
	if typ != nil {
		r.walk(typ, nil)
	} else {
		typ = elided
	}
	if star, ok := typ.(*ast.StarExpr); ok {
		typ = star.X
	}

	var keyType, elemType ast.Expr
	keysAreValues := false
	switch t := typ.(type) {
	case *ast.MapType:
		keyType, elemType, keysAreValues = t.Key, t.Value, true
	case *ast.ArrayType:
		elemType, keysAreValues = t.Elt, true
	}

	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			r.walk(elt, elemType)
			continue
		}
		if _, field := kv.Key.(*ast.Ident); keysAreValues || !field {
			r.walk(kv.Key, keyType)
		}
		r.walk(kv.Value, elemType)
	}
}

// FeatureEnvy reports methods that use one of their parameters more than
// their own receiver.
type FeatureEnvy struct{}

func (d *FeatureEnvy) SmellType() string                      { return "FeatureEnvy" }
func (d *FeatureEnvy) Category() string                       { return "LowCohesion" }
func (d *FeatureEnvy) Configure(_ model.DetectorConfig) error { return nil }

func (d *FeatureEnvy) Examine(ctx *Context) []*model.SmellWarning {
	var warnings []*model.SmellWarning
	ctx.EachFunc(func(fd *ast.FuncDecl) {
		recv := receiverName(fd)
		if recv == "" {
			return
		}
		counts, positions := references(fd.Body)
		selfRefs := counts[recv]
		if selfRefs == 0 {
			return
		}

		envied, most := "", selfRefs
		for _, param := range params(fd) {
			if param.Name == "_" || param.Name == recv {
				continue
			}
			if c := counts[param.Name]; c > most {
				envied, most = param.Name, c
			}
		}
		if envied == "" {
			return
		}
		warnings = append(warnings, ctx.Warn(d, FuncContext(fd), positions[envied],
			fmt.Sprintf("refers to %s more than self (maybe move it to another type?)", envied),
			model.D("name", envied),
			model.D("count", most)))
	})
	return warnings
}

// UtilityFunction reports methods that never touch their receiver.
type UtilityFunction struct{}

func (d *UtilityFunction) SmellType() string                      { return "UtilityFunction" }
func (d *UtilityFunction) Category() string                       { return "LowCohesion" }
func (d *UtilityFunction) Configure(_ model.DetectorConfig) error { return nil }

func (d *UtilityFunction) Examine(ctx *Context) []*model.SmellWarning {
	var warnings []*model.SmellWarning
	ctx.EachFunc(func(fd *ast.FuncDecl) {
		recv := receiverName(fd)
		if recv == "" || len(fd.Body.List) == 0 {
			return
		}
		counts, _ := references(fd.Body)
		if counts[recv] > 0 {
			return
		}
		warnings = append(warnings, ctx.Warn(d, FuncContext(fd), []token.Pos{fd.Name.Pos()},
			"doesn't depend on receiver state (maybe move it to another type?)",
			model.D("name", fd.Name.Name)))
	})
	return warnings
}
