package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/planarsim/internal/dynamo"
)

// LinearSystem is the time-invariant law dx = A·x + B·u.
type LinearSystem struct {
	A *mat.Dense
	B *mat.Dense
}

func NewLinearSystem(A, B *mat.Dense) (*LinearSystem, error) {
	if A == nil || B == nil {
		return nil, fmt.Errorf("models: linear system needs both A and B: %w", dynamo.ErrDimensionMismatch)
	}
	ar, ac := A.Dims()
	br, _ := B.Dims()
	if ar != ac {
		return nil, fmt.Errorf("models: A must be square, got %dx%d: %w", ar, ac, dynamo.ErrDimensionMismatch)
	}
	if br != ar {
		return nil, fmt.Errorf("models: B has %d rows, want %d: %w", br, ar, dynamo.ErrDimensionMismatch)
	}
	return &LinearSystem{A: A, B: B}, nil
}

func (l *LinearSystem) Validate(n, m int) error {
	ar, _ := l.A.Dims()
	_, bc := l.B.Dims()
	if ar != n {
		return fmt.Errorf("models: A is %dx%d but state dim is %d: %w", ar, ar, n, dynamo.ErrDimensionMismatch)
	}
	if bc != m {
		return fmt.Errorf("models: B has %d columns but control dim is %d: %w", bc, m, dynamo.ErrDimensionMismatch)
	}
	return nil
}

func (l *LinearSystem) F(x dynamo.State) dynamo.State {
	n := len(x)
	out := mat.NewVecDense(n, nil)
	out.MulVec(l.A, mat.NewVecDense(n, x))
	f := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		f[i] = out.AtVec(i)
	}
	return f
}

func (l *LinearSystem) G(x dynamo.State) *mat.Dense {
	return l.B
}
