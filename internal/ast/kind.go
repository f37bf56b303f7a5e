package ast

// Kind classifies parse-tree nodes. The set mirrors the PlayScript grammar
// productions that later phases care about.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindProg
	KindBlock
	KindLocalVarDecl
	KindStatement
	KindForControl
	KindEnhancedForControl
	KindForInit
	KindExprList
	KindFunctionDecl
	KindFunctionBody
	KindFormalParameters
	KindFormalParameter
	KindClassDecl
	KindClassBody
	KindFieldDecl
	KindVarDeclarators
	KindVarDeclarator
	KindVarDeclaratorID
	KindTypeType
	KindTypeTypeOrVoid
	KindPrimitiveType
	KindClassOrInterfaceType
	KindFunctionType
	KindTypeList
	KindModifier

	// expressions
	KindIdent
	KindLiteral
	KindThis
	KindSuper
	KindParen
	KindBinary
	KindUnary
	KindPostfix
	KindAssign
	KindTernary
	KindCall
	KindMember
	KindIndex
	KindNew
	KindArrayInit

	// KindError wraps tokens skipped during error recovery.
	KindError
)

var kindNames = [...]string{
	KindInvalid:              "Invalid",
	KindProg:                 "Prog",
	KindBlock:                "Block",
	KindLocalVarDecl:         "LocalVarDecl",
	KindStatement:            "Statement",
	KindForControl:           "ForControl",
	KindEnhancedForControl:   "EnhancedForControl",
	KindForInit:              "ForInit",
	KindExprList:             "ExprList",
	KindFunctionDecl:         "FunctionDecl",
	KindFunctionBody:         "FunctionBody",
	KindFormalParameters:     "FormalParameters",
	KindFormalParameter:      "FormalParameter",
	KindClassDecl:            "ClassDecl",
	KindClassBody:            "ClassBody",
	KindFieldDecl:            "FieldDecl",
	KindVarDeclarators:       "VarDeclarators",
	KindVarDeclarator:        "VarDeclarator",
	KindVarDeclaratorID:      "VarDeclaratorID",
	KindTypeType:             "TypeType",
	KindTypeTypeOrVoid:       "TypeTypeOrVoid",
	KindPrimitiveType:        "PrimitiveType",
	KindClassOrInterfaceType: "ClassOrInterfaceType",
	KindFunctionType:         "FunctionType",
	KindTypeList:             "TypeList",
	KindModifier:             "Modifier",
	KindIdent:                "Ident",
	KindLiteral:              "Literal",
	KindThis:                 "This",
	KindSuper:                "Super",
	KindParen:                "Paren",
	KindBinary:               "Binary",
	KindUnary:                "Unary",
	KindPostfix:              "Postfix",
	KindAssign:               "Assign",
	KindTernary:              "Ternary",
	KindCall:                 "Call",
	KindMember:               "Member",
	KindIndex:                "Index",
	KindNew:                  "New",
	KindArrayInit:            "ArrayInit",
	KindError:                "Error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsExpr reports whether nodes of kind k are expressions.
func (k Kind) IsExpr() bool {
	return k >= KindIdent && k <= KindArrayInit
}

// StmtKind refines KindStatement nodes.
type StmtKind uint8

const (
	StmtNone StmtKind = iota
	StmtBlock
	StmtIf
	StmtFor
	StmtWhile
	StmtDo
	StmtReturn
	StmtBreak
	StmtContinue
	StmtEmpty
	StmtExpr
	StmtLabeled
)

var stmtNames = [...]string{
	StmtNone:     "",
	StmtBlock:    "block",
	StmtIf:       "if",
	StmtFor:      "for",
	StmtWhile:    "while",
	StmtDo:       "do",
	StmtReturn:   "return",
	StmtBreak:    "break",
	StmtContinue: "continue",
	StmtEmpty:    "empty",
	StmtExpr:     "expr",
	StmtLabeled:  "labeled",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtNames) {
		return stmtNames[k]
	}
	return "stmt(?)"
}

// Flags carries small per-node facts the parser already knows.
type Flags uint8

const (
	// FlagArray marks a TypeType or VarDeclaratorID followed by '[' ']' dimensions.
	FlagArray Flags = 1 << iota
	// FlagFunctionKeyword marks a declaration written as `function f(...)`.
	FlagFunctionKeyword
	// FlagTrailingReturn marks `function (...): T` / `function f(...): T` forms.
	FlagTrailingReturn
)
