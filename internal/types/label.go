package types

import (
	"strings"
)

// Label returns a user-friendly label for a TypeID: primitive names
// ("Integer"), class and function names, or the shape of a structural
// function type ("function (Integer, Integer): Integer"). Unknown → "?".
func Label(typesIn *Interner, id TypeID) string {
	return labelDepth(typesIn, id, 0)
}

func labelDepth(typesIn *Interner, id TypeID, depth int) string {
	if id == NoTypeID || typesIn == nil {
		return "?"
	}
	if depth > 6 {
		return "..."
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case KindClass, KindFunction:
		name, _ := typesIn.Strings.Lookup(tt.Name)
		if name == "" {
			name = "<anon>"
		}
		if tt.Kind == KindFunction {
			return "function " + name
		}
		return name
	case KindFuncType:
		info, ok := typesIn.FnInfo(id)
		if !ok {
			return "function ?"
		}
		var b strings.Builder
		b.WriteString("function (")
		for i, p := range info.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(labelDepth(typesIn, p, depth+1))
		}
		b.WriteString("): ")
		b.WriteString(labelDepth(typesIn, info.Result, depth+1))
		return b.String()
	default:
		return tt.Kind.String()
	}
}
