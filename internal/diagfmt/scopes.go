package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"playscript/internal/sema"
)

// ScopesPretty prints the scope graph as an indented tree. Variables of a
// scope come first, nested scopes follow in declaration order:
//
//	namespace
//	└─ class B extends A
//	   ├─ var x: Integer
//	   └─ function f(a: Integer): Void
func ScopesPretty(w io.Writer, snap *sema.Snapshot, showTypes bool) error {
	if _, err := fmt.Fprintln(w, scopeHeader(&snap.Root)); err != nil {
		return err
	}
	writeScopeBody(w, &snap.Root, "")
	if showTypes && len(snap.Types) > 0 {
		fmt.Fprintln(w, "\ntypes:")
		for i, t := range snap.Types {
			fmt.Fprintf(w, "  #%d %s\n", i+1, t)
		}
	}
	if len(snap.Diagnostics) > 0 {
		fmt.Fprintln(w, "\ndiagnostics:")
		for _, d := range snap.Diagnostics {
			fmt.Fprintf(w, "  %s\n", d)
		}
	}
	return nil
}

func writeScopeBody(w io.Writer, s *sema.ScopeSnapshot, prefix string) {
	var vars []sema.MemberSnapshot
	for _, m := range s.Members {
		if m.Kind == "variable" {
			vars = append(vars, m)
		}
	}
	total := len(vars) + len(s.Children)
	idx := 0
	branch := func() (string, string) {
		idx++
		if idx == total {
			return "└─ ", "   "
		}
		return "├─ ", "│  "
	}
	for _, v := range vars {
		b, _ := branch()
		fmt.Fprintf(w, "%s%svar %s: %s\n", prefix, b, v.Name, v.Type)
	}
	for i := range s.Children {
		ch := &s.Children[i]
		b, next := branch()
		fmt.Fprintf(w, "%s%s%s\n", prefix, b, scopeHeader(ch))
		writeScopeBody(w, ch, prefix+next)
	}
}

func scopeHeader(s *sema.ScopeSnapshot) string {
	var b strings.Builder
	b.WriteString(s.Kind)
	if s.Name != "" {
		b.WriteByte(' ')
		b.WriteString(s.Name)
	}
	if s.Kind == "function" {
		b.WriteByte('(')
		for i, p := range s.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", p.Name, p.Type)
		}
		b.WriteByte(')')
		if s.Result != "" {
			b.WriteString(": ")
			b.WriteString(s.Result)
		}
	}
	if s.ParentClass != "" {
		b.WriteString(" extends ")
		b.WriteString(s.ParentClass)
	}
	return b.String()
}

// ScopesJSON writes the snapshot as indented JSON.
func ScopesJSON(w io.Writer, snap *sema.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}

// ScopesYAML writes the snapshot as YAML.
func ScopesYAML(w io.Writer, snap *sema.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return err
	}
	return enc.Close()
}
