// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var ErrInvalidWindow = errors.New("invalid smoothing window")

// Smooth is a Savitzky-Golay filter: every interior sample is replaced by the
// value at the centre of a least-squares polynomial of degree poly fitted over
// window samples. The first and last window/2 samples are taken from
// polynomials fitted to the first and last full windows.
func (g *Gonum) Smooth(x []float64, window, poly int) ([]float64, error) {
	return SavitzkyGolay(x, window, poly)
}

// SavitzkyGolay smooths x with a least-squares polynomial fit of degree poly
// over an odd window. Edges are fitted with the nearest full window.
func SavitzkyGolay(x []float64, window, poly int) ([]float64, error) {
	switch {
	case window%2 == 0 || window < 1:
		return nil, fmt.Errorf("%w: length %d must be odd and positive", ErrInvalidWindow, window)
	case poly < 0 || poly >= window:
		return nil, fmt.Errorf("%w: order %d must be below length %d", ErrInvalidWindow, poly, window)
	case window > len(x):
		return nil, fmt.Errorf("%w: length %d exceeds input %d", ErrInvalidWindow, window, len(x))
	}

	half := window / 2

	coeffs, err := savgolCoeffs(window, poly)
	if err != nil {
		return nil, err
	}

	n := len(x)
	out := make([]float64, n)
	for i := half; i < n-half; i++ {
		var sum float64
		for j, c := range coeffs {
			sum += c * x[i-half+j]
		}
		out[i] = sum
	}

	head, err := polyFitEval(x[:window], poly, 0, half)
	if err != nil {
		return nil, err
	}
	copy(out, head)

	tail, err := polyFitEval(x[n-window:], poly, window-half, window)
	if err != nil {
		return nil, err
	}
	copy(out[n-half:], tail)

	return out, nil
}

// vandermonde returns the window×(poly+1) matrix of powers of positions
// offset, offset+1, ...
func vandermonde(window, poly int, offset float64) *mat.Dense {
	a := mat.NewDense(window, poly+1, nil)
	for i := range window {
		z := float64(i) + offset
		p := 1.0
		for j := range poly + 1 {
			a.Set(i, j, p)
			p *= z
		}
	}
	return a
}

// savgolCoeffs returns the centre row of the least-squares smoothing matrix,
// A (AᵀA)⁻¹ e₀ for positions -window/2..window/2.
func savgolCoeffs(window, poly int) ([]float64, error) {
	a := vandermonde(window, poly, -float64(window/2))

	var ata mat.Dense
	ata.Mul(a.T(), a)

	e0 := mat.NewVecDense(poly+1, nil)
	e0.SetVec(0, 1)

	var u mat.VecDense
	if err := u.SolveVec(&ata, e0); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWindow, err)
	}

	var c mat.VecDense
	c.MulVec(a, &u)

	return mat.Col(nil, 0, &c), nil
}

// polyFitEval fits a degree-poly polynomial to y at positions 0..len(y)-1 and
// evaluates it at positions from..to-1.
func polyFitEval(y []float64, poly, from, to int) ([]float64, error) {
	a := vandermonde(len(y), poly, 0)

	var p mat.VecDense
	if err := p.SolveVec(a, mat.NewVecDense(len(y), append([]float64(nil), y...))); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWindow, err)
	}

	out := make([]float64, 0, to-from)
	for pos := from; pos < to; pos++ {
		z := float64(pos)
		var v, pow float64 = 0, 1
		for j := range poly + 1 {
			v += p.AtVec(j) * pow
			pow *= z
		}
		out = append(out, v)
	}

	return out, nil
}
