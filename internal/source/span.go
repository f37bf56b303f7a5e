package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one file. The zero
// Span belongs to FileID 0, which is a valid file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Empty spans mark insertion points and end-of-file.
func (s Span) Empty() bool { return s.End <= s.Start }

func (s Span) Len() uint32 {
	if s.Empty() {
		return 0
	}
	return s.End - s.Start
}

// String prints file:start-end, for debugging and test failures only.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover widens s to include other. A span of another file leaves s as is.
func (s Span) Cover(other Span) Span {
	if s.File == other.File {
		s.Start, s.End = min(s.Start, other.Start), max(s.End, other.End)
	}
	return s
}

// Contains reports whether other lies within s. An empty span at s.End is
// contained.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}
