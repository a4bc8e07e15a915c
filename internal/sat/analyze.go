package sat

import "sort"

// analyzeConflict derives a learned clause from a conflict by resolving
// backward through the implication graph until at most one literal at the
// current decision level remains (a first-UIP cut).
//
// A frontier of literals not yet resolved away is worked latest-assigned
// first: a propagated literal is replaced by its antecedent's other
// literals, a decision literal is simply retired. learned and frontier are
// kept as two distinct sets rather than one, because a decision literal
// retired from the frontier must still survive into the final clause as its
// asserting literal.
func (s *Solver) analyzeConflict(cf conflict) []Literal {
	// learned holds clause literals, all currently falsified; the final
	// clause is their disjunction.
	learned := map[Literal]bool{}
	frontier := map[Literal]bool{}
	for _, l := range s.clauses.get(cf.clause).Literals {
		learned[l] = true
		frontier[l] = true
	}

	level := s.trail.level

	for {
		atLevel := 0
		for l := range learned {
			if s.trailEntryLevel(s.trail.positionOf(l.Var)) == level {
				atLevel++
			}
		}
		if atLevel <= 1 || len(frontier) == 0 {
			break
		}

		var latest Literal
		latestPos := -1
		for l := range frontier {
			if pos := s.trail.positionOf(l.Var); pos > latestPos {
				latestPos = pos
				latest = l
			}
		}
		delete(frontier, latest)

		e := s.trail.entries[latestPos]
		if !e.IsUnit {
			// Decision literal: nothing more can be resolved about it, but
			// it stays in the learned set as its asserting literal.
			continue
		}

		// Resolve on the pivot: the pivot's occurrences (latest here, the
		// forced literal in the antecedent) cancel, and the antecedent's
		// remaining literals, all falsified, join the learned set.
		delete(learned, latest)
		ante := s.clauses.get(e.Antecedent)
		for _, l := range ante.Literals {
			if l.Var == e.Var {
				continue
			}
			switch {
			case learned[l]:
				// Same polarity already present: no change.
			case learned[l.Opposite()]:
				// Opposite polarity present: the pair cancels.
				delete(learned, l.Opposite())
				delete(frontier, l.Opposite())
			default:
				learned[l] = true
				frontier[l] = true
			}
		}
	}

	result := make([]Literal, 0, len(learned))
	for l := range learned {
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Var != result[j].Var {
			return result[i].Var < result[j].Var
		}
		return !result[i].Sign && result[j].Sign
	})
	return result
}

// trailEntryLevel returns the decision level of the trail entry at pos, or
// -1 if pos lies outside the current trail (as for a variable that was never
// assigned). A stale posOf entry that still falls inside the trail is not
// detected: it yields the level of whatever entry now occupies that slot.
func (s *Solver) trailEntryLevel(pos int) int {
	if pos < 0 || pos >= len(s.trail.entries) {
		return -1
	}
	return s.trail.entries[pos].Level
}

// canonicalKey produces a sorted signature for a clause so the solver can
// reject re-learning a clause it already holds.
func canonicalKey(lits []Literal) string {
	sorted := append([]Literal(nil), lits...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Var != sorted[j].Var {
			return sorted[i].Var < sorted[j].Var
		}
		return !sorted[i].Sign && sorted[j].Sign
	})
	b := make([]byte, 0, len(sorted)*5)
	for _, l := range sorted {
		b = append(b, []byte(l.String())...)
		b = append(b, ',')
	}
	return string(b)
}
