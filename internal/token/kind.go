package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident

	// literals
	IntLit
	FloatLit
	StringLit
	CharLit

	// keywords
	KwClass
	KwExtends
	KwFunction
	KwVoid
	KwBoolean
	KwChar
	KwByte
	KwShort
	KwInt
	KwLong
	KwFloat
	KwDouble
	KwString
	KwIf
	KwElse
	KwFor
	KwWhile
	KwDo
	KwReturn
	KwBreak
	KwContinue
	KwTrue
	KwFalse
	KwNull
	KwThis
	KwSuper
	KwNew
	KwPublic
	KwPrivate
	KwProtected
	KwStatic
	KwFinal

	// operators and punctuation
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	EqEq
	Bang
	BangEq
	Lt
	LtEq
	Gt
	GtEq
	AndAnd
	OrOr
	Amp
	Pipe
	Caret
	Tilde
	Inc
	Dec
	Question
	Colon
	Semicolon
	Comma
	Dot
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	CharLit:       "CharLit",
	KwClass:       "class",
	KwExtends:     "extends",
	KwFunction:    "function",
	KwVoid:        "void",
	KwBoolean:     "boolean",
	KwChar:        "char",
	KwByte:        "byte",
	KwShort:       "short",
	KwInt:         "int",
	KwLong:        "long",
	KwFloat:       "float",
	KwDouble:      "double",
	KwString:      "string",
	KwIf:          "if",
	KwElse:        "else",
	KwFor:         "for",
	KwWhile:       "while",
	KwDo:          "do",
	KwReturn:      "return",
	KwBreak:       "break",
	KwContinue:    "continue",
	KwTrue:        "true",
	KwFalse:       "false",
	KwNull:        "null",
	KwThis:        "this",
	KwSuper:       "super",
	KwNew:         "new",
	KwPublic:      "public",
	KwPrivate:     "private",
	KwProtected:   "protected",
	KwStatic:      "static",
	KwFinal:       "final",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	EqEq:          "==",
	Bang:          "!",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	AndAnd:        "&&",
	OrOr:          "||",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	Tilde:         "~",
	Inc:           "++",
	Dec:           "--",
	Question:      "?",
	Colon:         ":",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
