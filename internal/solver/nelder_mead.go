package solver

import (
	"gonum.org/v1/gonum/optimize"
)

// nelderMead runs a single derivative-free Nelder-Mead minimization starting
// from init, returning the best parameter vector found and its objective
// value. Parameters are periodic angles in [0,1) (§4.1), which Nelder-Mead
// handles without needing gradient information or bound constraints — the
// objective simply wraps around smoothly as theta leaves [0,1).
func nelderMead(objective func([]float64) float64, init []float64, maxIter int) ([]float64, float64) {
	problem := optimize.Problem{Func: objective}
	settings := &optimize.Settings{}
	if maxIter > 0 {
		settings.MajorIterations = maxIter
	}
	method := &optimize.NelderMead{}

	result, err := optimize.Minimize(problem, init, settings, method)
	if err != nil || result == nil {
		return init, objective(init)
	}
	return result.X, result.F
}
