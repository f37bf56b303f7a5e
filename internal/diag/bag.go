package diag

import (
	"cmp"
	"slices"

	"playscript/internal/source"
)

// Bag collects diagnostics up to a limit. Diagnostics past the limit are
// counted, not kept, so output can say how many were cut.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

// NewBag keeps at most limit diagnostics; a non-positive limit keeps all.
func NewBag(limit int) *Bag {
	b := &Bag{limit: limit}
	if limit > 0 {
		b.items = make([]Diagnostic, 0, min(limit, 64))
	}
	return b
}

// Add reports false when d was dropped because the bag is full.
func (b *Bag) Add(d Diagnostic) bool {
	if b.limit > 0 && len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Dropped() int { return b.dropped }

func (b *Bag) Len() int { return len(b.items) }

// Items возвращает внутренний срез: не модифицировать.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool { return b.CountBySeverity(SevError) > 0 }

// CountBySeverity counts diagnostics of exactly sev.
func (b *Bag) CountBySeverity(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

// Filter drops every diagnostic keep rejects. Dropped is not affected.
func (b *Bag) Filter(keep func(Diagnostic) bool) {
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool { return !keep(d) })
}

// Transform rewrites every diagnostic in place, e.g. for --werror.
func (b *Bag) Transform(fn func(Diagnostic) Diagnostic) {
	for i, d := range b.items {
		b.items[i] = fn(d)
	}
}

// Sort orders by file and span, then errors before warnings, then code.
// Equal keys keep their report order.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first of diagnostics sharing code, primary span and
// message.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
		msg  string
	}
	seen := make(map[key]bool, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary, d.Message}
		if seen[k] {
			return true
		}
		seen[k] = true
		return false
	})
}
