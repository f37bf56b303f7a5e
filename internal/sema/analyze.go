package sema

import (
	"playscript/internal/ast"
)

// AnalyzeOptions extends Options with pass selection.
type AnalyzeOptions struct {
	Options
	Mode Mode
	// CheckCycles enables the inheritance cycle check after pass 2.
	CheckCycles bool
}

// Analyze runs both passes over tree and returns the populated context.
func Analyze(tree *ast.Tree, opts AnalyzeOptions) *Context {
	c := NewContext(tree, opts.Options)
	BuildScopes(c)
	ResolveTypes(c, opts.Mode)
	if opts.CheckCycles {
		CheckInheritanceCycles(c)
	}
	return c
}
