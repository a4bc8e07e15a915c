package sat

import "strings"

// Clause is an ordered list of literals. Order is irrelevant to semantics
// but fixed at creation. Original (parsed) and learned (derived) clauses
// share the same index space and representation.
type Clause struct {
	Literals []Literal
}

// clausePool is the append-only store of clauses, shared by original and
// learned clauses alike: a single index space with no runtime tag.
type clausePool struct {
	clauses []Clause
}

func newClausePool() *clausePool {
	return &clausePool{}
}

// add appends a new clause and returns its index.
func (cp *clausePool) add(literals []Literal) int {
	idx := len(cp.clauses)
	lits := make([]Literal, len(literals))
	copy(lits, literals)
	cp.clauses = append(cp.clauses, Clause{Literals: lits})
	return idx
}

func (cp *clausePool) get(k int) Clause {
	return cp.clauses[k]
}

func (cp *clausePool) len() int {
	return len(cp.clauses)
}

func (c Clause) String() string {
	sb := strings.Builder{}
	sb.WriteByte('(')
	for i, l := range c.Literals {
		if i > 0 {
			sb.WriteString(" ∨ ")
		}
		sb.WriteString(l.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
