package sat

// conflictSets is the per-variable adjacency of variables whose decisions
// participated in a conflict at this variable. It backs the
// non-chronological backjump in backtrack.go: when an exhausted decision is
// undone, its conflict set is merged into the decision below it if the two
// are related, propagating the blame chain backward.
//
// Membership is an NxN dense boolean matrix plus a compacted per-row list
// for iteration. The matrix is quadratic in the variable count, so the
// solver caps registration at maxVariables rather than letting it grow
// without bound; AddVariable reports the overflow as a
// CapacityExceededError.
type conflictSets struct {
	member [][]bool // member[v][v'] == v' is in v's conflict set
	list   [][]int  // compacted list of v's conflict-set members
}

// maxVariables bounds the conflict-set matrix at 64M booleans.
const maxVariables = 1 << 13

func newConflictSets() *conflictSets {
	return &conflictSets{}
}

// addVar appends the row/column for a newly added variable, keeping the
// matrix square. Variable indices are assigned in order, so this must be
// called exactly once per AddVariable.
func (cs *conflictSets) addVar() {
	n := len(cs.member) + 1
	for v := range cs.member {
		cs.member[v] = append(cs.member[v], false)
	}
	cs.member = append(cs.member, make([]bool, n))
	cs.list = append(cs.list, nil)
}

func (cs *conflictSets) contains(v, vp int) bool {
	return cs.member[v][vp]
}

// add records that v' participated in a conflict involving v.
func (cs *conflictSets) add(v, vp int) {
	if v == vp || cs.member[v][vp] {
		return
	}
	cs.member[v][vp] = true
	cs.list[v] = append(cs.list[v], vp)
}

// mergeInto merges v's entire conflict set (and v itself) into v'.
func (cs *conflictSets) mergeInto(v, vp int) {
	cs.add(vp, v)
	for _, m := range cs.list[v] {
		cs.add(vp, m)
	}
}

// clear empties v's conflict set. Used when a restart discards the trail
// the set was accumulated against.
func (cs *conflictSets) clear(v int) {
	for _, m := range cs.list[v] {
		cs.member[v][m] = false
	}
	cs.list[v] = cs.list[v][:0]
}
