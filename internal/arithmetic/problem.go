package arithmetic

import (
	"fmt"
	"math/rand/v2"
)

// Op is an arithmetic operator.
type Op string

const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "×"
)

// Problem is one arithmetic question. Operand ranges keep answers mental:
// addition and subtraction draw from [1,20] (subtraction ordered so the
// result is never negative), multiplication from [1,12].
type Problem struct {
	A, B   int
	Op     Op
	Answer int
}

// NewProblem generates a random problem from rng.
func NewProblem(rng *rand.Rand) Problem {
	switch rng.IntN(3) {
	case 0:
		a, b := rng.IntN(20)+1, rng.IntN(20)+1
		return Problem{A: a, B: b, Op: OpAdd, Answer: a + b}
	case 1:
		a, b := rng.IntN(20)+1, rng.IntN(20)+1
		if a < b {
			a, b = b, a
		}
		return Problem{A: a, B: b, Op: OpSub, Answer: a - b}
	default:
		a, b := rng.IntN(12)+1, rng.IntN(12)+1
		return Problem{A: a, B: b, Op: OpMul, Answer: a * b}
	}
}

// String renders the problem for display, e.g. "7 × 8".
func (p Problem) String() string {
	return fmt.Sprintf("%d %s %d", p.A, p.Op, p.B)
}
