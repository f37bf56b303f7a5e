package token

var keywords = map[string]Kind{
	"class":     KwClass,
	"extends":   KwExtends,
	"function":  KwFunction,
	"void":      KwVoid,
	"boolean":   KwBoolean,
	"char":      KwChar,
	"byte":      KwByte,
	"short":     KwShort,
	"int":       KwInt,
	"long":      KwLong,
	"float":     KwFloat,
	"double":    KwDouble,
	"string":    KwString,
	"if":        KwIf,
	"else":      KwElse,
	"for":       KwFor,
	"while":     KwWhile,
	"do":        KwDo,
	"return":    KwReturn,
	"break":     KwBreak,
	"continue":  KwContinue,
	"true":      KwTrue,
	"false":     KwFalse,
	"null":      KwNull,
	"this":      KwThis,
	"super":     KwSuper,
	"new":       KwNew,
	"public":    KwPublic,
	"private":   KwPrivate,
	"protected": KwProtected,
	"static":    KwStatic,
	"final":     KwFinal,
}

// LookupKeyword reports whether ident is a keyword and which one.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
