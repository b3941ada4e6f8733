package value

import "math"

// CheckedAdd returns a+b and false when the sum does not fit in an int64.
func CheckedAdd(a, b int64) (int64, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}

// CheckedMul returns a*b and false when the product does not fit in an int64.
func CheckedMul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

// CheckedPow raises base to a non-negative exponent by squaring.
func CheckedPow(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		var ok bool
		if exp&1 == 1 {
			if result, ok = CheckedMul(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			// Once |base| >= 2 a squaring overflow means the result overflows too.
			if base, ok = CheckedMul(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}
