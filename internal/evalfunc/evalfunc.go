// Package evalfunc implements the pluggable distance/error function eval(U, V)
// -> real of §4.4/§6. The default is the normalized trace-distance used
// throughout the qsearch family of synthesizers (compiler.py's error_func
// calls reference this metric; utils.py, which defines it, was not part of
// the retrieved original_source excerpt, so it is reconstructed from the
// well-known formula: 1 - |tr(U^dagger V)| / D).
package evalfunc

import (
	"math/cmplx"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
)

// Func computes a real-valued distance between a target unitary U and a
// candidate V. Zero means a perfect match up to global phase.
type Func func(u, v *cmatrix.Matrix) float64

// TraceDistance is the default eval_func: 1 - |tr(U^dagger V)| / D.
func TraceDistance(u, v *cmatrix.Matrix) float64 {
	prod, err := u.Dagger().Mul(v)
	if err != nil {
		return 1 // incomparable dimensions: maximal distance
	}
	tr := prod.Trace()
	return 1 - cmplx.Abs(tr)/float64(u.Dim)
}
