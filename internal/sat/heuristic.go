package sat

// unassignedCount returns the number of literals in clause c whose variable
// is currently unassigned. A count of zero cannot survive to a decision
// point (it would already have been reported as a conflict), but a count of
// one can: a learned clause registered mid-backtrack becomes unit without
// any of its variables being the one whose assignment scan would have
// noticed it.
func (s *Solver) unassignedCount(c int) int {
	n := 0
	for _, l := range s.clauses.get(c).Literals {
		if s.vars.value(l.Var) == Unassigned {
			n++
		}
	}
	return n
}

// pickBranchVariable chooses the next assignment: scan the global
// unsatisfied-clause set for the clauses tied at the fewest unassigned
// literals (the most constrained), break ties between the unassigned
// variables across all of them by degree (the variable touching the most
// currently-unsatisfied clauses, first encountered wins), and choose the
// polarity by a least-constraining-value score. A clause down to a single
// unassigned literal short-circuits the scan: that literal is forced, and
// isUnit=true tells the driver to route it through the propagation queue
// rather than open a decision level. Returns ok=false only when the
// unsatisfied set is empty, meaning the current assignment already
// satisfies every clause.
func (s *Solver) pickBranchVariable() (lit Literal, isUnit bool, ok bool) {
	var minClauses []int
	minCount := 0

	s.unsat.each(func(c int) {
		if len(minClauses) > 0 && minCount == 1 {
			return
		}
		n := s.unassignedCount(c)
		switch {
		case len(minClauses) == 0 || n < minCount:
			minClauses = append(minClauses[:0], c)
			minCount = n
		case n == minCount:
			minClauses = append(minClauses, c)
		}
	})

	if len(minClauses) == 0 {
		return Literal{}, false, false
	}

	if minCount == 1 {
		forced, count := soleUnassigned(s.clauses.get(minClauses[0]), s.vars)
		invariant(count == 1, "clause %d no longer unit at decision time", minClauses[0])
		return forced, true, true
	}

	bestVar := -1
	bestDegree := -1
	for _, c := range minClauses {
		for _, l := range s.clauses.get(c).Literals {
			if s.vars.value(l.Var) != Unassigned {
				continue
			}
			d := s.varClauses.degree(l.Var)
			if d > bestDegree {
				bestDegree = d
				bestVar = l.Var
			}
		}
	}
	invariant(bestVar != -1, "minimum-count clauses have no unassigned literal")

	return Literal{Var: bestVar, Sign: s.leastConstrainingSign(bestVar)}, false, true
}

// leastConstrainingSign scores each polarity of v by how many currently
// unsatisfied clauses mentioning v it would immediately satisfy, and
// returns the higher-scoring polarity (fewer clauses left constrained by
// the choice). Ties favor true.
func (s *Solver) leastConstrainingSign(v int) bool {
	var posScore, negScore int
	s.varClauses.each(v, func(c int) {
		for _, l := range s.clauses.get(c).Literals {
			if l.Var != v {
				continue
			}
			if l.Sign {
				posScore++
			} else {
				negScore++
			}
		}
	})
	return posScore >= negScore
}
