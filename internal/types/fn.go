package types //nolint:revive

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// FnInfo stores metadata for structural function types.
type FnInfo struct {
	Params []TypeID // Parameter types (in order)
	Result TypeID   // Return type
}

// NewFuncType always allocates a new structural function type, even when an
// identical shape exists: every syntax occurrence owns its instance.
func (in *Interner) NewFuncType(params []TypeID, result TypeID) TypeID {
	in.fns = append(in.fns, FnInfo{
		Params: slices.Clone(params),
		Result: result,
	})
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindFuncType, Payload: slot})
}

// FnInfo retrieves structural function metadata by TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFuncType {
		return nil, false
	}
	if int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}

// SameParams compares two ordered parameter lists by TypeID identity.
// Unresolved entries (NoTypeID) only match each other.
func SameParams(a, b []TypeID) bool {
	return slices.Equal(a, b)
}
