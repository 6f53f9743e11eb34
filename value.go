package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Value is the result of evaluating an expression. It is either an exact
// integer or a real number represented as a float64. The zero Value is the
// real number 0.
//
// Values are immutable. Operations on them never modify their operands.
type Value struct {
	// i is the integer value. It is nil for real numbers.
	i *big.Int
	// f is the real value when i is nil.
	f float64
}

// Int returns an integer Value.
func Int(x int64) Value {
	return Value{i: big.NewInt(x)}
}

// NewInt returns an integer Value holding a copy of x.
func NewInt(x *big.Int) Value {
	return Value{i: new(big.Int).Set(x)}
}

// Float returns a real Value.
func Float(f float64) Value {
	return Value{f: f}
}

// IsInt reports whether v is an exact integer.
func (v Value) IsInt() bool {
	return v.i != nil
}

// BigInt returns a copy of the integer value of v. If v is a real number, the
// result is nil.
func (v Value) BigInt() *big.Int {
	if v.i == nil {
		return nil
	}
	return new(big.Int).Set(v.i)
}

// Float64 returns the float64 value nearest to v. Integers too large for a
// float64 give ±Inf.
func (v Value) Float64() float64 {
	if v.i == nil {
		return v.f
	}
	f, _ := new(big.Float).SetInt(v.i).Float64()
	return f
}

// Cmp compares v and w exactly, returning -1, 0, or +1 as v is less than,
// equal to, or greater than w. Cmp panics with big.ErrNaN if either value is
// NaN.
func (v Value) Cmp(w Value) int {
	if v.i != nil && w.i != nil {
		return v.i.Cmp(w.i)
	}
	if v.i == nil && w.i == nil && !math.IsNaN(v.f) && !math.IsNaN(w.f) {
		switch {
		case v.f < w.f:
			return -1
		case v.f > w.f:
			return 1
		default:
			return 0
		}
	}
	return v.bigFloat().Cmp(w.bigFloat())
}

// bigFloat converts v to a big.Float exactly.
func (v Value) bigFloat() *big.Float {
	if v.i != nil {
		return new(big.Float).SetInt(v.i)
	}
	return new(big.Float).SetFloat64(v.f)
}

// sign returns the sign of v.
func (v Value) sign() int {
	if v.i != nil {
		return v.i.Sign()
	}
	switch {
	case v.f < 0:
		return -1
	case v.f > 0:
		return 1
	default:
		return 0
	}
}

// integral reports whether v is mathematically an integer.
func (v Value) integral() bool {
	return v.i != nil || v.f == math.Trunc(v.f)
}

// real converts v to a float64 for use as argument arg of op. Integers too
// large for a float64 give a *ConversionError.
func (v Value) real(op string, arg int) (float64, error) {
	if v.i == nil {
		return v.f, nil
	}
	f := v.Float64()
	if math.IsInf(f, 0) {
		return 0, &ConversionError{Op: op, Arg: arg}
	}
	return f, nil
}

// String formats v. Integers and integer-valued reals are written as integer
// literals with exact digits. Other reals use the shortest representation
// that reads back as the same float64, in fixed notation if the decimal
// exponent is at least -4 and less than 16 and in scientific notation
// otherwise.
func (v Value) String() string {
	if v.i != nil {
		return v.i.String()
	}
	f := v.f
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == math.Trunc(f):
		// Exact digits, and -0 becomes 0.
		z, _ := new(big.Float).SetFloat64(f).Int(nil)
		return z.String()
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(s[strings.LastIndexByte(s, 'e')+1:])
	if err != nil {
		panic("calc: bad exponent in " + s)
	}
	if exp < -4 || exp >= 16 {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// literal converts a number token to a Value. Literals without a fraction or
// exponent are integers. Reals out of the range of float64 become ±Inf or 0;
// evaluation rejects infinities.
func literal(s string) Value {
	if !strings.ContainsAny(s, ".eE") {
		z, ok := new(big.Int).SetString(s, 10)
		if !ok {
			panic("calc: invalid integer literal " + strconv.Quote(s))
		}
		return Value{i: z}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRange(err) {
		panic("calc: invalid real literal " + strconv.Quote(s) + " (" + err.Error() + ")")
	}
	return Float(f)
}

func isRange(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}
