package sema

import (
	"fmt"
	"slices"
	"strings"

	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/fix"
	"playscript/internal/source"
	"playscript/internal/symbols"
	"playscript/internal/token"
	"playscript/internal/trace"
	"playscript/internal/types"
)

// Mode selects which variable declarations the resolver binds.
type Mode uint8

const (
	// ModeFieldsOnly binds class fields and function parameters. Locals are
	// left to the reference-resolution walk.
	ModeFieldsOnly Mode = iota
	// ModeFieldsAndLocals also binds local variables, including for-loop
	// and enhanced-for variables.
	ModeFieldsAndLocals
)

func (m Mode) String() string {
	if m == ModeFieldsAndLocals {
		return "locals"
	}
	return "fields"
}

// ParseMode accepts "fields" and "locals".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "fields":
		return ModeFieldsOnly, nil
	case "locals":
		return ModeFieldsAndLocals, nil
	default:
		return ModeFieldsOnly, fmt.Errorf("invalid analysis mode: %q (expected: fields|locals)", s)
	}
}

// ResolveTypes runs the second pass. BuildScopes must have completed.
func ResolveTypes(c *Context, mode Mode) {
	if c == nil || c.Tree == nil || !c.Tree.Root.IsValid() {
		return
	}
	span := trace.Begin(c.tracer, trace.ScopePass, "types", c.traceParent)
	ast.Walk(c.Tree, c.Tree.Root, NewTypeResolver(c, mode))
	span.WithExtra("mode", mode.String()).
		WithExtra("types", fmt.Sprint(len(c.allTypes))).
		End("")
}

// TypeResolver is the ast.Listener behind ResolveTypes. A reference
// resolver walking statements may forward declaration nodes to it in
// ModeFieldsAndLocals so locals become visible as they are declared.
// Binding is idempotent per node.
type TypeResolver struct {
	ctx  *Context
	mode Mode
}

// NewTypeResolver returns a resolver over c in mode.
func NewTypeResolver(c *Context, mode Mode) *TypeResolver {
	return &TypeResolver{ctx: c, mode: mode}
}

func (r *TypeResolver) Enter(id ast.NodeID) {
	switch r.ctx.Tree.Kind(id) {
	case ast.KindVarDeclaratorID:
		r.enterVarDeclaratorID(id)
	case ast.KindClassDecl:
		r.enterClassDecl(id)
	case ast.KindClassOrInterfaceType:
		r.enterClassOrInterfaceType(id)
	}
}

func (r *TypeResolver) Exit(id ast.NodeID) {
	switch r.ctx.Tree.Kind(id) {
	case ast.KindVarDeclarators:
		r.exitVarDeclarators(id)
	case ast.KindFormalParameter:
		r.exitFormalParameter(id)
	case ast.KindEnhancedForControl:
		r.exitEnhancedForControl(id)
	case ast.KindFunctionDecl:
		r.exitFunctionDecl(id)
	case ast.KindPrimitiveType:
		r.exitPrimitiveType(id)
	case ast.KindTypeType:
		r.exitTypeType(id)
	case ast.KindTypeTypeOrVoid:
		r.exitTypeTypeOrVoid(id)
	case ast.KindFunctionType:
		r.exitFunctionType(id)
	}
}

// bindsIn reports whether declarations directly in scope are entered.
func (r *TypeResolver) bindsIn(scope *symbols.Scope) bool {
	return scope != nil && (scope.Kind == symbols.ScopeClass || r.mode == ModeFieldsAndLocals)
}

func (r *TypeResolver) enterVarDeclaratorID(id ast.NodeID) {
	c := r.ctx
	if _, done := c.SymbolOf(id); done {
		return
	}
	scopeID := c.EnclosingScope(id)
	scope := c.Table.Scopes.Get(scopeID)
	if scope == nil {
		return
	}
	param := c.Tree.Kind(c.Tree.Parent(id)) == ast.KindFormalParameter
	if !param && !r.bindsIn(scope) {
		return
	}
	n := c.Tree.Node(id)
	if prev := c.findVariable(scopeID, id); prev.IsValid() {
		name := c.Tree.Name(id)
		c.logPrevious(diag.SemaDuplicateVariable, id, c.Table.Symbols.Get(prev).Decl,
			fmt.Sprintf("variable or parameter already declared: %s", name),
			fmt.Sprintf("previous declaration of '%s' is here", name))
	}
	sym := c.Table.Declare(symbols.Symbol{
		Name:  n.Name,
		Kind:  symbols.SymbolVariable,
		Scope: scopeID,
		Decl:  id,
	})
	c.RecordSymbol(id, sym)
}

func (r *TypeResolver) exitVarDeclarators(id ast.NodeID) {
	c := r.ctx
	if !r.bindsIn(c.Table.Scopes.Get(c.EnclosingScope(id))) {
		return
	}
	typ, _ := c.TypeOf(c.Tree.Child(id, ast.KindTypeType))
	for _, decl := range c.Tree.ChildrenOf(id, ast.KindVarDeclarator) {
		r.setVariableType(c.Tree.Child(decl, ast.KindVarDeclaratorID), typ)
	}
}

func (r *TypeResolver) exitFormalParameter(id ast.NodeID) {
	c := r.ctx
	typ, _ := c.TypeOf(c.Tree.Child(id, ast.KindTypeType))
	idNode := c.Tree.Child(id, ast.KindVarDeclaratorID)
	sym, ok := c.SymbolOf(idNode)
	if !ok {
		return
	}
	r.setVariableType(idNode, typ)

	scope := c.Table.Scopes.Get(c.EnclosingScope(id))
	if scope != nil && scope.Kind == symbols.ScopeFunction && !slices.Contains(scope.Params, sym) {
		scope.Params = append(scope.Params, sym)
	}
}

func (r *TypeResolver) exitEnhancedForControl(id ast.NodeID) {
	if r.mode != ModeFieldsAndLocals {
		return
	}
	c := r.ctx
	typ, _ := c.TypeOf(c.Tree.Child(id, ast.KindTypeType))
	r.setVariableType(c.Tree.Child(id, ast.KindVarDeclaratorID), typ)
}

func (r *TypeResolver) setVariableType(idNode ast.NodeID, typ types.TypeID) {
	sym, ok := r.ctx.SymbolOf(idNode)
	if !ok {
		return
	}
	if v := r.ctx.Table.Symbols.Get(sym); v != nil {
		v.Type = typ
	}
}

func (r *TypeResolver) exitFunctionDecl(id ast.NodeID) {
	c := r.ctx
	fnID, ok := c.ScopeOf(id)
	fn := c.Table.Scopes.Get(fnID)
	if !ok || fn == nil {
		return
	}
	if ret := c.Tree.Child(id, ast.KindTypeTypeOrVoid); ret.IsValid() {
		fn.Result, _ = c.TypeOf(ret)
	}

	// Only earlier declarations are compared, so a pair is reported once.
	params := c.ParamTypes(fnID)
	for _, other := range c.Table.LookupLocal(fn.Parent, fn.Name) {
		if other == fn.Symbol {
			break
		}
		sym := c.Table.Symbols.Get(other)
		if sym == nil || sym.Kind != symbols.SymbolFunction {
			continue
		}
		if types.SameParams(c.ParamTypes(sym.Inner), params) {
			name := c.Tree.Name(id)
			c.logPrevious(diag.SemaDuplicateFunction, id, sym.Decl,
				fmt.Sprintf("function or method already declared: %s", r.signature(name, params)),
				fmt.Sprintf("previous declaration of '%s' is here", name))
			break
		}
	}
}

func (r *TypeResolver) signature(name string, params []types.TypeID) string {
	labels := make([]string, len(params))
	for i, p := range params {
		labels[i] = types.Label(r.ctx.Types, p)
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(labels, ", "))
}

func (r *TypeResolver) enterClassDecl(id ast.NodeID) {
	c := r.ctx
	clsID, ok := c.ScopeOf(id)
	cls := c.Table.Scopes.Get(clsID)
	ext := c.Tree.Child(id, ast.KindTypeType)
	if !ok || cls == nil || !ext.IsValid() {
		return
	}
	name := ast.Text(c.Tree, ext)
	if parent := c.ClassOf(c.LookupType(name)); parent.IsValid() {
		cls.ParentClass = parent
		return
	}
	d := diag.NewError(diag.SemaUnknownParentClass, c.spanOf(id), fmt.Sprintf("unknown class: %s", name))
	if span, ok := extendsClauseSpan(c.Tree, ext); ok {
		d.Fixes = append(d.Fixes, fix.DeleteSpan("remove `extends "+name+"`", span))
	}
	c.emit(id, d)
}

// extendsClauseSpan covers the extends clause whose type node is ext, from
// the end of the class name through the parent type.
func extendsClauseSpan(tree *ast.Tree, ext ast.NodeID) (source.Span, bool) {
	n := tree.Node(ext)
	if n == nil || n.First < 2 || n.Last <= n.First || int(n.Last) > len(tree.Tokens) {
		return source.Span{}, false
	}
	if tree.Tokens[n.First-1].Kind != token.KwExtends {
		return source.Span{}, false
	}
	return source.Span{
		File:  tree.File,
		Start: tree.Tokens[n.First-2].Span.End,
		End:   tree.Tokens[n.Last-1].Span.End,
	}, true
}

func (r *TypeResolver) enterClassOrInterfaceType(id ast.NodeID) {
	c := r.ctx
	typ := types.NoTypeID
	if cls := c.Table.Scopes.Get(c.LookupClass(c.EnclosingScope(id), c.Tree.Name(id))); cls != nil {
		typ = cls.Type
	}
	c.RecordType(id, typ)
}

var primitiveKinds = map[token.Kind]types.Kind{
	token.KwBoolean: types.KindBoolean,
	token.KwInt:     types.KindInteger,
	token.KwLong:    types.KindLong,
	token.KwFloat:   types.KindFloat,
	token.KwDouble:  types.KindDouble,
	token.KwByte:    types.KindByte,
	token.KwShort:   types.KindShort,
	token.KwChar:    types.KindChar,
	token.KwString:  types.KindString,
}

func (r *TypeResolver) exitPrimitiveType(id ast.NodeID) {
	n := r.ctx.Tree.Node(id)
	r.ctx.RecordType(id, r.ctx.Types.Primitive(primitiveKinds[n.Tok]))
}

func (r *TypeResolver) exitTypeType(id ast.NodeID) {
	c := r.ctx
	for _, ch := range c.Tree.Node(id).Children {
		switch c.Tree.Kind(ch) {
		case ast.KindClassOrInterfaceType, ast.KindFunctionType, ast.KindPrimitiveType:
			if typ, ok := c.TypeOf(ch); ok {
				c.RecordType(id, typ)
			}
			return
		}
	}
}

func (r *TypeResolver) exitTypeTypeOrVoid(id ast.NodeID) {
	c := r.ctx
	if c.Tree.Node(id).Tok == token.KwVoid {
		c.RecordType(id, c.Types.Builtins().Void)
		return
	}
	if typ, ok := c.TypeOf(c.Tree.Child(id, ast.KindTypeType)); ok {
		c.RecordType(id, typ)
	}
}

func (r *TypeResolver) exitFunctionType(id ast.NodeID) {
	c := r.ctx
	result, _ := c.TypeOf(c.Tree.Child(id, ast.KindTypeTypeOrVoid))
	var params []types.TypeID
	if list := c.Tree.Child(id, ast.KindTypeList); list.IsValid() {
		for _, p := range c.Tree.ChildrenOf(list, ast.KindTypeType) {
			typ, _ := c.TypeOf(p)
			params = append(params, typ)
		}
	}
	typ := c.Types.NewFuncType(params, result)
	c.RegisterType(typ)
	c.RecordType(id, typ)
}
