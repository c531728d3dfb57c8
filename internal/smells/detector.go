package smells

import (
	"fmt"
	"go/ast"
	"go/token"
	"slices"

	"github.com/nao1215/smellscan/internal/model"
	"golang.org/x/tools/go/ast/inspector"
)

// Detector finds one type of smell in a parsed file.
type Detector interface {
	// SmellType is the concrete smell name, e.g. "FeatureEnvy".
	SmellType() string

	// Category is the smell family, e.g. "LowCohesion".
	Category() string

	// Configure applies user settings. Zero values keep the defaults.
	Configure(cfg model.DetectorConfig) error

	// Examine returns the smells found in the file, in source order.
	Examine(ctx *Context) []*model.SmellWarning
}

// Context is one parsed file handed to every detector.
type Context struct {
	// Source is the description of the examined input.
	Source string

	// File is the parsed syntax tree.
	File *ast.File

	// Fset resolves positions in File.
	Fset *token.FileSet

	inspector *inspector.Inspector
}

// NewContext prepares a parsed file for detectors.
func NewContext(source string, fset *token.FileSet, file *ast.File) *Context {
	return &Context{
		Source:    source,
		File:      file,
		Fset:      fset,
		inspector: inspector.New([]*ast.File{file}),
	}
}

// EachFunc calls fn for every function and method declaration with a body.
func (c *Context) EachFunc(fn func(fd *ast.FuncDecl)) {
	c.inspector.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		fd := n.(*ast.FuncDecl)
		if fd.Body == nil {
			return
		}
		fn(fd)
	})
}

// Warn builds a warning raised by d at the given positions.
func (c *Context) Warn(d Detector, context string, positions []token.Pos, message string, details ...model.Detail) *model.SmellWarning {
	lines := make([]int, 0, len(positions))
	for _, p := range positions {
		line := c.Fset.Position(p).Line
		if !slices.Contains(lines, line) {
			lines = append(lines, line)
		}
	}
	return &model.SmellWarning{
		SmellType: d.SmellType(),
		Category:  d.Category(),
		Context:   context,
		Message:   message,
		Lines:     lines,
		Source:    c.Source,
		Details:   details,
	}
}

// FuncContext names a function the way warnings report it:
// "name" for functions, "T.name" or "(*T).name" for methods.
func FuncContext(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return fd.Name.Name
	}
	recv := fd.Recv.List[0].Type
	if star, ok := recv.(*ast.StarExpr); ok {
		return fmt.Sprintf("(*%s).%s", receiverTypeName(star.X), fd.Name.Name)
	}
	return receiverTypeName(recv) + "." + fd.Name.Name
}

// receiverTypeName strips pointers and type parameters from a receiver type.
func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	default:
		return "?"
	}
}

// receiverName returns the method's receiver variable, or "" when the
// function has no receiver or leaves it unnamed.
func receiverName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 || len(fd.Recv.List[0].Names) == 0 {
		return ""
	}
	name := fd.Recv.List[0].Names[0].Name
	if name == "_" {
		return ""
	}
	return name
}

// params flattens a parameter list into its named identifiers.
func params(fd *ast.FuncDecl) []*ast.Ident {
	var idents []*ast.Ident
	if fd.Type.Params == nil {
		return idents
	}
	for _, field := range fd.Type.Params.List {
		idents = append(idents, field.Names...)
	}
	return idents
}

// paramCount counts parameters, including unnamed ones.
func paramCount(fd *ast.FuncDecl) int {
	if fd.Type.Params == nil {
		return 0
	}
	n := 0
	for _, field := range fd.Type.Params.List {
		if len(field.Names) == 0 {
			n++
			continue
		}
		n += len(field.Names)
	}
	return n
}

type registration struct {
	smellType string
	create    func() Detector
}

// registry fixes detector order so warnings come out in a stable order.
var registry = []registration{
	{"UncommunicativeMethodName", func() Detector { return &UncommunicativeMethodName{} }},
	{"UncommunicativeParameterName", func() Detector { return &UncommunicativeParameterName{} }},
	{"UncommunicativeVariableName", func() Detector { return &UncommunicativeVariableName{} }},
	{"LongParameterList", func() Detector { return &LongParameterList{} }},
	{"BooleanParameter", func() Detector { return &BooleanParameter{} }},
	{"FeatureEnvy", func() Detector { return &FeatureEnvy{} }},
	{"UtilityFunction", func() Detector { return &UtilityFunction{} }},
	{"TooManyStatements", func() Detector { return &TooManyStatements{} }},
	{"DuplicateMethodCall", func() Detector { return &DuplicateMethodCall{} }},
	{"NestedIterators", func() Detector { return &NestedIterators{} }},
	{"TooManyMethods", func() Detector { return &TooManyMethods{} }},
}

// SmellTypes lists every known smell type in registry order.
func SmellTypes() []string {
	names := make([]string, 0, len(registry))
	for _, r := range registry {
		names = append(names, r.smellType)
	}
	return names
}

// Known reports whether smellType names a registered detector.
func Known(smellType string) bool {
	return slices.ContainsFunc(registry, func(r registration) bool {
		return r.smellType == smellType
	})
}

// Build creates every enabled detector, configured by configFor.
// A nil configFor keeps all defaults.
func Build(configFor func(smellType string) model.DetectorConfig) ([]Detector, error) {
	detectors := make([]Detector, 0, len(registry))
	for _, r := range registry {
		cfg := model.DetectorConfig{}
		if configFor != nil {
			cfg = configFor(r.smellType)
		}
		if !cfg.IsEnabled() {
			continue
		}
		d := r.create()
		if err := d.Configure(cfg); err != nil {
			return nil, fmt.Errorf("invalid configuration for %s: %w", r.smellType, err)
		}
		detectors = append(detectors, d)
	}
	return detectors, nil
}

// limit returns configured when set, otherwise fallback.
func limit(configured, fallback int) int {
	if configured > 0 {
		return configured
	}
	return fallback
}
