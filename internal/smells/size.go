package smells

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/nao1215/smellscan/internal/model"
)

// Default thresholds for the size detectors.
const (
	DefaultMaxStatements = 10
	DefaultMaxParams     = 4
	DefaultMaxMethods    = 15
)

// TooManyStatements reports functions whose bodies hold more statements
// than the limit. Blocks and case clauses are containers and do not count.
type TooManyStatements struct {
	max int
}

func (d *TooManyStatements) SmellType() string { return "TooManyStatements" }
func (d *TooManyStatements) Category() string  { return "LongMethod" }

func (d *TooManyStatements) Configure(cfg model.DetectorConfig) error {
	d.max = limit(cfg.Max, DefaultMaxStatements)
	return nil
}

func (d *TooManyStatements) Examine(ctx *Context) []*model.SmellWarning {
	var warnings []*model.SmellWarning
	ctx.EachFunc(func(fd *ast.FuncDecl) {
		count := countStatements(fd.Body)
		if count <= d.max {
			return
		}
		warnings = append(warnings, ctx.Warn(d, FuncContext(fd), []token.Pos{fd.Name.Pos()},
			fmt.Sprintf("has approx %d statements", count),
			model.D("count", count)))
	})
	return warnings
}

func countStatements(body *ast.BlockStmt) int {
	count := 0
	ast.Inspect(body, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.BlockStmt, *ast.CaseClause, *ast.CommClause, *ast.LabeledStmt, *ast.EmptyStmt:
		case ast.Stmt:
			count++
		}
		return true
	})
	return count
}

// LongParameterList reports functions that take more parameters than the
// limit.
type LongParameterList struct {
	max int
}

func (d *LongParameterList) SmellType() string { return "LongParameterList" }
func (d *LongParameterList) Category() string  { return "LongParameterList" }

func (d *LongParameterList) Configure(cfg model.DetectorConfig) error {
	d.max = limit(cfg.Max, DefaultMaxParams)
	return nil
}

func (d *LongParameterList) Examine(ctx *Context) []*model.SmellWarning {
	var warnings []*model.SmellWarning
	ctx.EachFunc(func(fd *ast.FuncDecl) {
		count := paramCount(fd)
		if count <= d.max {
			return
		}
		warnings = append(warnings, ctx.Warn(d, FuncContext(fd), []token.Pos{fd.Type.Params.Pos()},
			fmt.Sprintf("has %d parameters", count),
			model.D("count", count)))
	})
	return warnings
}

// TooManyMethods reports receiver types that declare more methods than
// the limit within one source.
type TooManyMethods struct {
	max int
}

func (d *TooManyMethods) SmellType() string { return "TooManyMethods" }
func (d *TooManyMethods) Category() string  { return "LargeClass" }

func (d *TooManyMethods) Configure(cfg model.DetectorConfig) error {
	d.max = limit(cfg.Max, DefaultMaxMethods)
	return nil
}

func (d *TooManyMethods) Examine(ctx *Context) []*model.SmellWarning {
	var order []string
	first := make(map[string]token.Pos)
	counts := make(map[string]int)

	for _, decl := range ctx.File.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
			continue
		}
		typeName := receiverTypeName(fd.Recv.List[0].Type)
		if _, seen := counts[typeName]; !seen {
			order = append(order, typeName)
			first[typeName] = fd.Pos()
		}
		counts[typeName]++
	}

	var warnings []*model.SmellWarning
	for _, typeName := range order {
		if counts[typeName] <= d.max {
			continue
		}
		warnings = append(warnings, ctx.Warn(d, typeName, []token.Pos{first[typeName]},
			fmt.Sprintf("has at least %d methods", counts[typeName]),
			model.D("count", counts[typeName])))
	}
	return warnings
}
