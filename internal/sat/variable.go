package sat

// Assignment is the three-valued state of a variable.
type Assignment int8

const (
	Unassigned    Assignment = 0
	AssignedTrue  Assignment = 1
	AssignedFalse Assignment = -1
)

func (a Assignment) String() string {
	switch a {
	case AssignedTrue:
		return "true"
	case AssignedFalse:
		return "false"
	default:
		return "unassigned"
	}
}

// Variable is a single boolean-valued slot. It carries a stable index (its
// position in the solver's variable store) and an original textual name used
// only for printing. Variables are created once during parsing and mutated
// only by the search driver; they are never destroyed.
type Variable struct {
	Name  string
	Value Assignment
}

// variableStore is the dense array of variables owned by the solver.
type variableStore struct {
	vars []Variable
}

func newVariableStore() *variableStore {
	return &variableStore{}
}

// add appends a new variable with the given name and returns its index.
func (vs *variableStore) add(name string) int {
	idx := len(vs.vars)
	vs.vars = append(vs.vars, Variable{Name: name})
	return idx
}

func (vs *variableStore) len() int {
	return len(vs.vars)
}

func (vs *variableStore) value(v int) Assignment {
	return vs.vars[v].Value
}

func (vs *variableStore) set(v int, a Assignment) {
	vs.vars[v].Value = a
}

func (vs *variableStore) name(v int) string {
	return vs.vars[v].Name
}
