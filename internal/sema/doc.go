// Package sema builds the scope graph of a PlayScript compilation unit and
// resolves the types of its declarations.
//
// Analysis runs in two passes over one ast.Tree that share a Context:
//
//	BuildScopes   creates one scope per namespace, class, function, block
//	              and for-loop, and binds class and function names.
//	ResolveTypes  types fields, parameters, return values and function type
//	              expressions, links classes to their parents and reports
//	              duplicate declarations.
//
// Every finding is a non-fatal diagnostic; both passes always complete.
// A type recorded as types.NoTypeID means "unresolved, already handled".
package sema
