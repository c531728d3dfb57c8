package smells

import (
	"fmt"
	"go/ast"
	"go/token"
	"regexp"
	"slices"

	"github.com/nao1215/smellscan/internal/model"
)

// Default naming rules. Single letters that are idiomatic in Go stay
// accepted; "a" or "x2" do not.
var (
	defaultRejectPatterns = []string{`^.$`, `[0-9]$`}
	defaultAcceptNames    = []string{"_", "b", "i", "j", "k", "n", "r", "t", "w"}
)

// nameRules decides whether an identifier is uncommunicative.
type nameRules struct {
	accept []string
	reject []*regexp.Regexp
}

func (r *nameRules) configure(cfg model.DetectorConfig) error {
	r.accept = defaultAcceptNames
	if len(cfg.Accept) > 0 {
		r.accept = cfg.Accept
	}
	patterns := defaultRejectPatterns
	if len(cfg.Reject) > 0 {
		patterns = cfg.Reject
	}
	r.reject = make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("invalid reject pattern %q: %w", p, err)
		}
		r.reject = append(r.reject, re)
	}
	return nil
}

func (r *nameRules) uncommunicative(name string) bool {
	if name == "_" || slices.Contains(r.accept, name) {
		return false
	}
	for _, re := range r.reject {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// UncommunicativeMethodName reports function and method names that say
// nothing about what the function does.
type UncommunicativeMethodName struct {
	rules nameRules
}

func (d *UncommunicativeMethodName) SmellType() string { return "UncommunicativeMethodName" }
func (d *UncommunicativeMethodName) Category() string  { return "UncommunicativeName" }

func (d *UncommunicativeMethodName) Configure(cfg model.DetectorConfig) error {
	return d.rules.configure(cfg)
}

func (d *UncommunicativeMethodName) Examine(ctx *Context) []*model.SmellWarning {
	var warnings []*model.SmellWarning
	ctx.EachFunc(func(fd *ast.FuncDecl) {
		name := fd.Name.Name
		if !d.rules.uncommunicative(name) {
			return
		}
		warnings = append(warnings, ctx.Warn(d, FuncContext(fd), []token.Pos{fd.Name.Pos()},
			fmt.Sprintf("has the name '%s'", name),
			model.D("name", name)))
	})
	return warnings
}

// UncommunicativeParameterName reports parameter names that say nothing
// about the value they hold.
type UncommunicativeParameterName struct {
	rules nameRules
}

func (d *UncommunicativeParameterName) SmellType() string { return "UncommunicativeParameterName" }
func (d *UncommunicativeParameterName) Category() string  { return "UncommunicativeName" }

func (d *UncommunicativeParameterName) Configure(cfg model.DetectorConfig) error {
	return d.rules.configure(cfg)
}

func (d *UncommunicativeParameterName) Examine(ctx *Context) []*model.SmellWarning {
	var warnings []*model.SmellWarning
	ctx.EachFunc(func(fd *ast.FuncDecl) {
		for _, param := range params(fd) {
			if !d.rules.uncommunicative(param.Name) {
				continue
			}
			warnings = append(warnings, ctx.Warn(d, FuncContext(fd), []token.Pos{param.Pos()},
				fmt.Sprintf("has the parameter name '%s'", param.Name),
				model.D("name", param.Name)))
		}
	})
	return warnings
}

// UncommunicativeVariableName reports local variable names that say
// nothing about the value they hold. Each name is reported once per
// function with every line it is declared on.
type UncommunicativeVariableName struct {
	rules nameRules
}

func (d *UncommunicativeVariableName) SmellType() string { return "UncommunicativeVariableName" }
func (d *UncommunicativeVariableName) Category() string  { return "UncommunicativeName" }

func (d *UncommunicativeVariableName) Configure(cfg model.DetectorConfig) error {
	return d.rules.configure(cfg)
}

func (d *UncommunicativeVariableName) Examine(ctx *Context) []*model.SmellWarning {
	var warnings []*model.SmellWarning
	ctx.EachFunc(func(fd *ast.FuncDecl) {
		var order []string
		positions := make(map[string][]token.Pos)
		for _, ident := range localDeclarations(fd.Body) {
			if !d.rules.uncommunicative(ident.Name) {
				continue
			}
			if _, seen := positions[ident.Name]; !seen {
				order = append(order, ident.Name)
			}
			positions[ident.Name] = append(positions[ident.Name], ident.Pos())
		}
		for _, name := range order {
			warnings = append(warnings, ctx.Warn(d, FuncContext(fd), positions[name],
				fmt.Sprintf("has the variable name '%s'", name),
				model.D("name", name)))
		}
	})
	return warnings
}

// localDeclarations returns identifiers introduced by :=, var and range
// clauses inside body, in source order.
func localDeclarations(body *ast.BlockStmt) []*ast.Ident {
	var idents []*ast.Ident
	ast.Inspect(body, func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.AssignStmt:
			if s.Tok != token.DEFINE {
				return true
			}
			for _, lhs := range s.Lhs {
				if ident, ok := lhs.(*ast.Ident); ok {
					idents = append(idents, ident)
				}
			}
		case *ast.RangeStmt:
			if s.Tok != token.DEFINE {
				return true
			}
			for _, expr := range []ast.Expr{s.Key, s.Value} {
				if ident, ok := expr.(*ast.Ident); ok {
					idents = append(idents, ident)
				}
			}
		case *ast.GenDecl:
			if s.Tok != token.VAR {
				return true
			}
			for _, spec := range s.Specs {
				if vs, ok := spec.(*ast.ValueSpec); ok {
					idents = append(idents, vs.Names...)
				}
			}
		}
		return true
	})
	return idents
}
