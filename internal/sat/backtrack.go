package sat

// resolveConflict performs conflict analysis followed by a
// non-chronological backjump. Apart from a full restart (fullRestart), it
// is the only place decision levels and the trail shrink.
//
// The search has no explicit assertion-level computation (unlike a
// watched-literal MiniSat-style solver): instead, each conflict charges the
// decisions it implicates to the conflict set of the current decision, and
// unwinding consults those sets. An exhausted decision, one whose second
// polarity has also led to conflict, has its conflict set collapsed into
// the nearest related decision below it, and every unrelated decision in
// between is bypassed: undone without trying its other polarity, since the
// conflicts that exhausted the decision above cannot involve it. A related
// decision tried only once is flipped in place. The trail only ever truly
// shrinks when a decision is popped for good, either exhausted or bypassed.
//
// A learned unit clause is a level-0 fact regardless of where the conflict
// was found, so it forces an unconditional unwind of the entire trail
// rather than participating in the flip/collapse dance.
func (s *Solver) resolveConflict(cf conflict) (propQueue []Literal, unsat bool) {
	for {
		// A conflict reached with no decision on the trail is derived
		// purely from unit propagation: the formula's level-0 facts are
		// self-contradictory regardless of any choice the search could
		// make, so the instance is unsatisfiable outright. Without this
		// check, analyzeConflict's first-UIP stopping rule degenerates: a
		// one-literal conflicting clause at level 0 immediately satisfies
		// "at most one literal at the current level" before any
		// resolution happens, re-deriving the same already-true unit
		// clause forever instead of resolving it away to the empty set.
		if s.trail.level == 0 {
			return nil, true
		}

		s.populateConflictSet(cf)
		learned := s.analyzeConflict(cf)
		if len(learned) == 0 {
			return nil, true
		}
		s.blameConflict(learned)

		key := canonicalKey(learned)
		if !s.learnedKeys[key] {
			s.learnedKeys[key] = true
			idx := s.clauses.add(learned)
			s.unsat.insert(idx)
			for _, l := range learned {
				s.varClauses.insert(l.Var, idx)
			}
			s.Stats.LearnedClauses++
		}

		if len(learned) == 1 {
			for !s.trail.isEmpty() {
				e := s.trail.pop()
				if !e.IsUnit {
					s.Stats.Backtracks++
				}
				s.undoAssign(e)
			}
			s.trail.level = 0
			return []Literal{learned[0]}, false
		}

		queue, cf2, failed := s.unwindToNextTry()
		if failed {
			return nil, true
		}
		if cf2 == nil {
			return queue, false
		}
		cf = *cf2
	}
}

// unwindToNextTry pops propagated entries and walks down the decision
// stack. The first decision reached is handled on its own merits; once an
// exhausted decision has been popped, its conflict set takes over as the
// blame for the failure being unwound, and every decision below is checked
// against it:
//
//   - a decision absent from the blame set is bypassed: the conflicts that
//     exhausted the decision above did not involve it, so trying its other
//     polarity would only replay the same failures;
//   - a related decision inherits the blame (the collapse) and is then
//     flipped if its second polarity is still untried, or popped and made
//     the new blame owner if it too is exhausted.
//
// If flipping the chosen decision itself conflicts, the new conflict is
// reported for another round of analyzeConflict. failed reports that the
// trail ran out entirely, meaning the formula is unsatisfiable.
func (s *Solver) unwindToNextTry() (propQueue []Literal, cf *conflict, failed bool) {
	blameOwner := -1
	for {
		if s.trail.isEmpty() {
			return nil, nil, true
		}

		top := s.trail.top()
		if top.IsUnit {
			s.undoAssign(s.trail.pop())
			continue
		}

		if blameOwner != -1 && !s.conflicts.contains(blameOwner, top.Var) {
			popped := s.trail.pop()
			s.undoAssign(popped)
			s.trail.level--
			s.Stats.Backtracks++
			continue
		}

		if !top.TriedSecond {
			if blameOwner != -1 {
				s.conflicts.mergeInto(blameOwner, top.Var)
			}
			popped := s.trail.pop()
			s.undoAssign(popped)
			s.Stats.Backtracks++

			flipped := trailEntry{
				Var:         popped.Var,
				Sign:        !popped.Sign,
				Level:       popped.Level,
				IsUnit:      false,
				Antecedent:  -1,
				TriedSecond: true,
			}
			s.noteLevelDecision(flipped.Level, flipped.Var)
			pos := s.trail.push(flipped)
			more, conflicted := s.assign(&s.trail.entries[pos])
			if conflicted != nil {
				return nil, conflicted, false
			}
			return more, nil, false
		}

		// Both polarities of this decision have now failed: it is
		// exhausted. Fold the blame accumulated so far into it and make it
		// the blame owner for the rest of the walk down.
		popped := s.trail.pop()
		s.undoAssign(popped)
		s.trail.level--
		s.Stats.Backtracks++
		if blameOwner != -1 {
			s.conflicts.mergeInto(blameOwner, popped.Var)
		}
		blameOwner = popped.Var
	}
}

// blameConflict charges the conflict to the current decision: every level a
// learned-clause literal was assigned at names a decision whose choice the
// conflict depends on, and those decisions enter the current decision's
// conflict set. Level-0 literals are permanent facts and carry no blame.
// Tracing blame through the learned clause rather than the conflicting
// clause alone is what lets the unwind skip a decision safely: a propagated
// literal in the conflicting clause may be forced by decisions well below
// its own level, and the resolution in analyzeConflict has already expanded
// exactly those dependencies.
func (s *Solver) blameConflict(learned []Literal) {
	owner := s.levelDecision[s.trail.level]
	for _, l := range learned {
		lv := s.trailEntryLevel(s.trail.positionOf(l.Var))
		if lv <= 0 {
			continue
		}
		s.conflicts.add(owner, s.levelDecision[lv])
	}
}

// populateConflictSet updates the conflict set at the conflicting variable
// from the conflicting clause's other literals. The conflicting variable is
// the one assigned latest among the clause's literals, since it is the
// assignment that completed the falsification; every other literal's
// variable is recorded as having participated in that conflict.
func (s *Solver) populateConflictSet(cf conflict) {
	cl := s.clauses.get(cf.clause)

	anchor := cl.Literals[0].Var
	anchorPos := s.trail.positionOf(anchor)
	for _, l := range cl.Literals[1:] {
		if pos := s.trail.positionOf(l.Var); pos > anchorPos {
			anchorPos = pos
			anchor = l.Var
		}
	}

	for _, l := range cl.Literals {
		if l.Var != anchor {
			s.conflicts.add(anchor, l.Var)
		}
	}
}
