package sat

import "fmt"

// Verify rescans every clause ever added (including tautologies) against
// the solver's final assignment and reports the first one it finds
// unsatisfied. It returns nil when the assignment genuinely satisfies the
// whole instance, and is meant to be called after Solve returns
// Satisfiable as a cheap independent check that the search's bookkeeping
// (unsatSet, varClauses) didn't drift from the actual clause contents.
// Learned clauses are included in the scan: they are entailed by the
// original clauses, so any correct model satisfies them too, and a learned
// clause a model violates is exactly the kind of drift this catches.
func (s *Solver) Verify() error {
	for c := 0; c < s.clauses.len(); c++ {
		cl := s.clauses.get(c)
		satisfied := false
		for _, l := range cl.Literals {
			if l.satisfiedBy(s.vars.value(l.Var)) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return fmt.Errorf("sat: verify: clause %d (%v) is not satisfied by the final assignment", c, cl)
		}
	}
	return nil
}
