package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"class":    KwClass,
		"extends":  KwExtends,
		"function": KwFunction,
		"string":   KwString,
		"void":     KwVoid,
	}
	for text, want := range cases {
		got, ok := LookupKeyword(text)
		if !ok || got != want {
			t.Fatalf("%q: got %v (ok=%v), want %v", text, got, ok, want)
		}
	}
	if _, ok := LookupKeyword("Class"); ok {
		t.Fatalf("keywords must be case-sensitive")
	}
}

func TestPrimitiveClassification(t *testing.T) {
	for _, k := range []Kind{KwBoolean, KwChar, KwByte, KwShort, KwInt, KwLong, KwFloat, KwDouble, KwString} {
		if !IsPrimitive(k) {
			t.Fatalf("%v must be primitive", k)
		}
	}
	if IsPrimitive(KwVoid) || IsPrimitive(Ident) {
		t.Fatalf("void and identifiers are not primitive types")
	}
}

func TestKindStringCoversAllKinds(t *testing.T) {
	for k := Invalid; k <= RBracket; k++ {
		if k.String() == "Kind(?)" {
			t.Fatalf("kind %d has no name", k)
		}
	}
}
