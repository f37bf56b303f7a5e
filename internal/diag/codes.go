package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectExpression   Code = 2005
	SynUnclosedParen      Code = 2006
	SynUnclosedBrace      Code = 2007
	SynUnclosedBracket    Code = 2008
	SynUnexpectedTopLevel Code = 2009
	SynForBadHeader       Code = 2010

	// Семантические
	SemaInfo               Code = 3000
	SemaDuplicateClassName Code = 3001
	SemaDuplicateVariable  Code = 3002
	SemaDuplicateFunction  Code = 3003
	SemaUnknownParentClass Code = 3004
	SemaInheritanceCycle   Code = 3005
	SemaScopeMismatch      Code = 3006
	SemaTableInvariant     Code = 3007

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Ошибки проекта
	ProjInfo            Code = 5000
	ProjInvalidManifest Code = 5001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexUnterminatedChar:         "Unterminated character literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expect semicolon",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectType:               "Expect type",
	SynExpectExpression:         "Expect expression",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynUnexpectedTopLevel:       "Unexpected top level",
	SynForBadHeader:             "Malformed for-loop header",
	SemaInfo:                    "Semantic information",
	SemaDuplicateClassName:      "Duplicate class name",
	SemaDuplicateVariable:       "Variable or parameter already declared",
	SemaDuplicateFunction:       "Function or method already declared",
	SemaUnknownParentClass:      "Unknown parent class",
	SemaInheritanceCycle:        "Inheritance cycle",
	SemaScopeMismatch:           "Scope stack mismatch",
	SemaTableInvariant:          "Symbol table invariant violated",
	IOLoadFileError:             "I/O load file error",
	ProjInfo:                    "Project information",
	ProjInvalidManifest:         "Invalid project manifest",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
