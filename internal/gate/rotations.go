package gate

import (
	"math"
	"math/cmplx"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
)

// rotZ returns the single-qubit Z-rotation by angle (in radians).
func rotZ(angle float64) *cmatrix.Matrix {
	m := cmatrix.New(2)
	m.Set(0, 0, cmplx.Exp(complex(0, -angle/2)))
	m.Set(1, 1, cmplx.Exp(complex(0, angle/2)))
	return m
}

// rotX returns the single-qubit X-rotation by angle (in radians).
func rotX(angle float64) *cmatrix.Matrix {
	c := complex(math.Cos(angle/2), 0)
	s := complex(0, -math.Sin(angle/2))
	m := cmatrix.New(2)
	m.Set(0, 0, c)
	m.Set(0, 1, s)
	m.Set(1, 0, s)
	m.Set(1, 1, c)
	return m
}
