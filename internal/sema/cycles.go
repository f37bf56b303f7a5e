package sema

import (
	"strings"

	"playscript/internal/diag"
	"playscript/internal/symbols"
)

// CheckInheritanceCycles reports every cycle of ParentClass links once, as a
// warning on the class with the lowest scope ID in the cycle. Returns the
// number of cycles found.
func CheckInheritanceCycles(c *Context) int {
	if c == nil {
		return 0
	}
	const (
		unvisited = iota
		onPath
		done
	)
	state := make(map[symbols.ScopeID]uint8)
	found := 0
	for idx := 1; idx <= c.Table.Scopes.Len(); idx++ {
		start := symbols.ScopeID(uint32(idx)) //nolint:gosec // bounded by arena length
		if c.Table.Scopes.Get(start).Kind != symbols.ScopeClass || state[start] != unvisited {
			continue
		}
		var path []symbols.ScopeID
		cur := start
		for cur.IsValid() && state[cur] == unvisited {
			state[cur] = onPath
			path = append(path, cur)
			cur = c.Table.Scopes.Get(cur).ParentClass
		}
		if cur.IsValid() && state[cur] == onPath {
			at := 0
			for path[at] != cur {
				at++
			}
			c.reportCycle(path[at:])
			found++
		}
		for _, id := range path {
			state[id] = done
		}
	}
	return found
}

func (c *Context) reportCycle(cycle []symbols.ScopeID) {
	low := 0
	for i, id := range cycle {
		if id < cycle[low] {
			low = i
		}
	}
	names := make([]string, 0, len(cycle)+1)
	for i := range cycle {
		names = append(names, c.Table.ScopeName(cycle[(low+i)%len(cycle)]))
	}
	names = append(names, names[0])
	node := c.Table.Scopes.Get(cycle[low]).Node
	c.Warn(diag.SemaInheritanceCycle, node, "inheritance cycle: "+strings.Join(names, " -> "))
}
