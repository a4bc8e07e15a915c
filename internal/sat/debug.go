package sat

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
)

// DumpTrail writes a formatted dump of the current trail to w, one entry
// per line, for use with -verbose runs and for debugging stuck searches.
func (s *Solver) DumpTrail(w io.Writer) {
	for i, e := range s.trail.entries {
		kind := "decision"
		if e.IsUnit {
			kind = "unit"
		}
		fmt.Fprintf(w, "%3d: var=%s sign=%v level=%d kind=%s antecedent=%d\n",
			i, s.vars.name(e.Var), e.Sign, e.Level, kind, e.Antecedent)
	}
}

// DumpConflictSet writes the conflict set recorded for variable v, using
// kr/pretty for the underlying slice so nested structure prints legibly.
func (s *Solver) DumpConflictSet(w io.Writer, v int) {
	fmt.Fprintf(w, "conflict set for %s:\n%s", s.vars.name(v), pretty.Sprint(s.conflicts.list[v]))
}
