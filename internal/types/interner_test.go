package types

import (
	"testing"

	"playscript/internal/source"
)

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner(nil)
	b := in.Builtins()
	if b.Integer == NoTypeID || b.Void == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	if in.Primitive(KindInteger) != b.Integer || in.Primitive(KindVoid) != b.Void {
		t.Fatalf("Primitive must return the singletons")
	}
	if in.KindOf(b.String) != KindString || !KindString.IsPrimitive() || KindVoid.IsPrimitive() {
		t.Fatalf("unexpected kind classification")
	}
}

func TestNominalTypesAreFresh(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)
	name := strs.Intern("A")
	a1 := in.RegisterClass(name, 7)
	a2 := in.RegisterClass(name, 9)
	if a1 == a2 {
		t.Fatalf("two declarations of the same name must yield distinct types")
	}
	if tt := in.MustLookup(a2); tt.Payload != 9 || !tt.Kind.IsNominal() {
		t.Fatalf("unexpected descriptor %+v", tt)
	}
	if Label(in, a1) != "A" {
		t.Fatalf("unexpected label %q", Label(in, a1))
	}
	fn := in.RegisterFunction(strs.Intern("f"), 3)
	if Label(in, fn) != "function f" {
		t.Fatalf("unexpected label %q", Label(in, fn))
	}
}

func TestFuncTypesAreNotDeduplicated(t *testing.T) {
	in := NewInterner(nil)
	i := in.Builtins().Integer
	f1 := in.NewFuncType([]TypeID{i, i}, i)
	f2 := in.NewFuncType([]TypeID{i, i}, i)
	if f1 == f2 {
		t.Fatalf("each occurrence owns its structural type")
	}
	info, ok := in.FnInfo(f1)
	if !ok || len(info.Params) != 2 || info.Result != i {
		t.Fatalf("unexpected fn info %+v", info)
	}
	if got := Label(in, f1); got != "function (Integer, Integer): Integer" {
		t.Fatalf("unexpected label %q", got)
	}
	if !SameParams(info.Params, []TypeID{i, i}) || SameParams(info.Params, []TypeID{i}) {
		t.Fatalf("SameParams compares ordered identity")
	}
}

func TestLabelUnknown(t *testing.T) {
	in := NewInterner(nil)
	if Label(in, NoTypeID) != "?" || Label(in, TypeID(999)) != "?" {
		t.Fatalf("unknown types render as ?")
	}
}
