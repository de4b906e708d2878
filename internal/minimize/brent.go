package minimize

import "math"

var (
	sqrtEps    = math.Sqrt(2.220446049250313e-16)
	goldenMean = 0.5 * (3.0 - math.Sqrt(5.0))
)

// brentResult is the outcome of one bounded Brent run.
type brentResult struct {
	x, fx       float64
	evaluations int
	iterations  int
	converged   bool
}

// brent minimizes f over [a, b] with Brent's method: parabolic
// interpolation through the three best points, falling back to a
// golden-section step whenever the parabola is rejected. Every trial point
// lies strictly inside [a, b].
func brent(f Func, a, b, xtol float64, maxEval int) brentResult {
	fulc := a + goldenMean*(b-a)
	nfc, xf := fulc, fulc
	var rat, e float64

	fx := f(xf)
	num := 1
	ffulc, fnfc := fx, fx

	xm := 0.5 * (a + b)
	tol1 := sqrtEps*math.Abs(xf) + xtol/3.0
	tol2 := 2.0 * tol1

	res := brentResult{converged: true}
	for math.Abs(xf-xm) > tol2-0.5*(b-a) {
		res.iterations++
		golden := true

		if math.Abs(e) > tol1 {
			golden = false
			r := (xf - nfc) * (fx - ffulc)
			q := (xf - fulc) * (fx - fnfc)
			p := (xf-fulc)*q - (xf-nfc)*r
			q = 2.0 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			r = e
			e = rat

			if math.Abs(p) < math.Abs(0.5*q*r) && p > q*(a-xf) && p < q*(b-xf) {
				rat = p / q
				x := xf + rat
				if x-a < tol2 || b-x < tol2 {
					rat = tol1 * signOrOne(xm-xf)
				}
			} else {
				golden = true
			}
		}

		if golden {
			if xf >= xm {
				e = a - xf
			} else {
				e = b - xf
			}
			rat = goldenMean * e
		}

		x := xf + signOrOne(rat)*math.Max(math.Abs(rat), tol1)
		fu := f(x)
		num++

		if fu <= fx {
			if x >= xf {
				a = xf
			} else {
				b = xf
			}
			fulc, ffulc = nfc, fnfc
			nfc, fnfc = xf, fx
			xf, fx = x, fu
		} else {
			if x < xf {
				a = x
			} else {
				b = x
			}
			if fu <= fnfc || nfc == xf {
				fulc, ffulc = nfc, fnfc
				nfc, fnfc = x, fu
			} else if fu <= ffulc || fulc == xf || fulc == nfc {
				fulc, ffulc = x, fu
			}
		}

		xm = 0.5 * (a + b)
		tol1 = sqrtEps*math.Abs(xf) + xtol/3.0
		tol2 = 2.0 * tol1

		if num >= maxEval {
			res.converged = false
			break
		}
	}

	res.x, res.fx, res.evaluations = xf, fx, num
	return res
}

// signOrOne returns the sign of v, treating zero as positive.
func signOrOne(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
