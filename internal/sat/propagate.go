package sat

// conflict describes a clause found fully falsified under the current
// assignment.
type conflict struct {
	clause int
}

// assign records a new assignment, updates the global unsatisfied set and
// every affected variable's clause list, and returns either a unit literal
// queue to propagate next or a conflict. It does not itself recurse: the
// caller (propagateFixpoint) drives the work queue.
//
// Each clause in v's list is classified as satisfied, falsified, or still
// open; satisfied clauses leave the indexes immediately so later scans never
// revisit them.
func (s *Solver) assign(e *trailEntry) ([]Literal, *conflict) {
	v, sign := e.Var, e.Sign
	s.vars.set(v, signToAssignment(sign))

	var toPropagate []Literal

	var affected []int
	s.varClauses.each(v, func(c int) {
		affected = append(affected, c)
	})

	for _, c := range affected {
		if !s.unsat.contains(c) {
			continue
		}
		cl := s.clauses.get(c)
		s.Stats.ConnectionsChecked += len(cl.Literals)

		lit, found := findLiteral(cl, v)
		invariant(found, "clause %d indexed under variable %d without mentioning it", c, v)

		if lit.Sign == sign {
			s.satisfyClause(c, e)
			continue
		}

		unassigned, count := soleUnassigned(cl, s.vars)
		switch count {
		case 0:
			return nil, &conflict{clause: c}
		case 1:
			toPropagate = append(toPropagate, unassigned)
		}
	}

	return toPropagate, nil
}

// satisfyClause removes c from the global unsatisfied set and from every
// variable's clause list that mentions it, logging the removal onto e so
// that undoAssign can reverse it exactly.
func (s *Solver) satisfyClause(c int, e *trailEntry) {
	s.unsat.remove(c)
	for _, l := range s.clauses.get(c).Literals {
		if s.varClauses.contains(l.Var, c) {
			s.varClauses.remove(l.Var, c)
		}
	}
	e.RemovedClauses = append(e.RemovedClauses, c)
}

// undoAssign reverses assign's bookkeeping: unassigns the variable and
// restores every clause it had satisfied back to the unsatisfied set and to
// every mentioned variable's list.
func (s *Solver) undoAssign(e trailEntry) {
	s.vars.set(e.Var, Unassigned)
	for _, c := range e.RemovedClauses {
		s.unsat.insert(c)
		for _, l := range s.clauses.get(c).Literals {
			// The contains guard mirrors AddClause: a clause listing the
			// same variable twice still occupies one slot per variable.
			if !s.varClauses.contains(l.Var, c) {
				s.varClauses.insert(l.Var, c)
			}
		}
	}
}

// propagateFixpoint repeatedly assigns forced literals until either no unit
// clause remains or a conflict is found. Each propagated literal is pushed
// onto the trail as a non-decision entry with the triggering clause as its
// antecedent, at the same decision level as the assignment that forced it.
func (s *Solver) propagateFixpoint(queue []Literal) *conflict {
	for len(queue) > 0 {
		lit := queue[0]
		queue = queue[1:]

		if s.vars.value(lit.Var) != Unassigned {
			continue
		}

		antecedent := s.unitAntecedent(lit)
		e := trailEntry{
			Var:        lit.Var,
			Sign:       lit.Sign,
			Level:      s.trail.level,
			IsUnit:     true,
			Antecedent: antecedent,
		}
		pos := s.trail.push(e)
		more, cf := s.assign(&s.trail.entries[pos])
		if cf != nil {
			return cf
		}
		queue = append(queue, more...)
	}
	return nil
}

// unitAntecedent finds the clause that currently forces lit: the clause in
// lit's variable's unsatisfied list with exactly one unassigned literal,
// namely lit itself. Used only to label the trail entry for later clause
// learning.
func (s *Solver) unitAntecedent(lit Literal) int {
	found := -1
	s.varClauses.each(lit.Var, func(c int) {
		if found != -1 {
			return
		}
		cl := s.clauses.get(c)
		u, count := soleUnassigned(cl, s.vars)
		if count == 1 && u == lit {
			found = c
		}
	})
	invariant(found != -1, "no antecedent clause found for forced literal %v", lit)
	return found
}

func signToAssignment(sign bool) Assignment {
	if sign {
		return AssignedTrue
	}
	return AssignedFalse
}

func findLiteral(c Clause, v int) (Literal, bool) {
	for _, l := range c.Literals {
		if l.Var == v {
			return l, true
		}
	}
	return Literal{}, false
}

// soleUnassigned scans c and returns the single unassigned literal plus the
// total count of unassigned literals found. When count != 1 the returned
// literal is meaningless.
func soleUnassigned(c Clause, vars *variableStore) (Literal, int) {
	var sole Literal
	count := 0
	for _, l := range c.Literals {
		if vars.value(l.Var) == Unassigned {
			sole = l
			count++
		}
	}
	return sole, count
}
