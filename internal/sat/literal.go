package sat

import "fmt"

// Literal is a variable together with a polarity: a positive occurrence or
// its negation. Literals are immutable once created.
type Literal struct {
	Var  int
	Sign bool // true: the variable itself; false: its negation
}

// PosLiteral returns the positive literal of variable v.
func PosLiteral(v int) Literal {
	return Literal{Var: v, Sign: true}
}

// NegLiteral returns the negative literal of variable v.
func NegLiteral(v int) Literal {
	return Literal{Var: v, Sign: false}
}

// Opposite returns the literal's negation.
func (l Literal) Opposite() Literal {
	return Literal{Var: l.Var, Sign: !l.Sign}
}

// satisfiedBy reports whether the literal is satisfied given the variable's
// current assignment.
func (l Literal) satisfiedBy(a Assignment) bool {
	switch a {
	case AssignedTrue:
		return l.Sign
	case AssignedFalse:
		return !l.Sign
	default:
		return false
	}
}

// falsifiedBy reports whether the literal is falsified given the variable's
// current assignment.
func (l Literal) falsifiedBy(a Assignment) bool {
	switch a {
	case AssignedTrue:
		return !l.Sign
	case AssignedFalse:
		return l.Sign
	default:
		return false
	}
}

func (l Literal) String() string {
	if l.Sign {
		return fmt.Sprintf("%d", l.Var+1)
	}
	return fmt.Sprintf("-%d", l.Var+1)
}
