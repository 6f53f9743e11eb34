package calc_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    string
	}{
		{"num", "1", "1"},
		{"add", "2 + 3", "5"},
		{"div-int", "10 / 2", "5"},
		{"pow", "2 ** 3", "8"},
		{"prec", "2 + 3 * 4", "14"},
		{"paren", "(2 + 3) * 4", "20"},
		{"sub", "10 - 2 - 3", "5"},
		{"div", "100 / 10 / 5", "2"},
		{"div-real", "7 / 2", "3.5"},
		{"third", "1 / 3", "0.3333333333333333"},
		{"plus", "+5", "5"},
		{"negneg", "--5", "5"},
		{"mulneg", "2 * -3", "-6"},
		{"negpow", "-2 ** 2", "-4"},
		{"parenneg", "(-2) ** 2", "4"},
		{"powright", "2 ** 3 ** 2", "512"},
		{"powneg", "2 ** -1", "0.5"},
		{"powneg-neg", "(-2) ** -1", "-0.5"},
		{"cube", "(-8) ** 3", "-512"},
		{"zero-zero", "0 ** 0", "1"},
		{"bigpow", "2 ** 100", "1267650600228229401496703205376"},
		{"bigmul", "10 ** 20", "100000000000000000000"},
		{"bigdiv", "2 ** 2000 / 2 ** 1999", "2"},
		{"bigdiv10", "10 ** 400 / 10 ** 399", "10"},
		{"divround", "(2 ** 60 + 1) / 1", "1152921504606846976"},
		{"one-pow", "(-1) ** (10 ** 30 + 1)", "-1"},
		{"sci-int", "1e20", "100000000000000000000"},
		{"sci-real", "1.5e16", "15000000000000000"},
		{"small", "1.5e-7", "1.5e-07"},
		{"small-fixed", "0.0001", "0.0001"},
		{"point-one", "0.1 + 0.2", "0.30000000000000004"},
		{"negzero", "-0.0", "0"},
		{"trailing-dot", "5.", "5"},
		{"leading-dot", ".5", "0.5"},
		{"real-int", "2.0 * 3", "6"},
		{"pi", "pi", "3.141592653589793"},
		{"e", "e", "2.718281828459045"},
		{"sqrt", "sqrt(16)", "4"},
		{"sqrt-real", "sqrt(2)", "1.4142135623730951"},
		{"sin", "sin(0)", "0"},
		{"cos", "cos(0)", "1"},
		{"tan", "tan(0)", "0"},
		{"sin-pi", "round(sin(pi / 2))", "1"},
		{"abs", "abs(-5)", "5"},
		{"abs-real", "abs(-2.5)", "2.5"},
		{"abs-big", "abs(-2 ** 100)", "1267650600228229401496703205376"},
		{"round-half", "round(2.5)", "2"},
		{"round-half-odd", "round(3.5)", "4"},
		{"round-neg", "round(-2.5)", "-2"},
		{"round-int", "round(7)", "7"},
		{"min", "min(3, 2.5)", "2.5"},
		{"min-tie", "min(2, 2.0)", "2"},
		{"max", "max(1, 2.5)", "2.5"},
		{"max-big", "max(2 ** 100, 1e30)", "1267650600228229401496703205376"},
		{"min-big", "min(2 ** 100, 1e40)", "1267650600228229401496703205376"},
		{"pow-fn", "pow(2, 10)", "1024"},
		{"pow-fn-real", "pow(2, 0.5)", "1.4142135623730951"},
		{"nested", "max(min(1, 2 + 3), pow(2, 3) * 2) / sqrt(abs(-4))", "8"},
		{"trailing-comma", "max(1, 2,)", "2"},
		{"limit", "2 ** 16383 / 2 ** 16382", "2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalString(c.src)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if s := r.String(); s != c.r {
				t.Errorf("wrong result for %q: want %s, got %s", c.src, c.r, s)
			}
		})
	}
}

func TestEvalIntegers(t *testing.T) {
	cases := []struct {
		src string
		int bool
	}{
		{"1", true},
		{"1.0", false},
		{"1e3", false},
		{"2 + 3", true},
		{"2 + 3.0", false},
		{"10 / 2", false},
		{"2 ** 3", true},
		{"2 ** -1", false},
		{"abs(-3)", true},
		{"round(2.7)", true},
		{"min(2, 3.0)", true},
		{"max(2, 3.0)", false},
		{"sqrt(4)", false},
		{"pi", false},
	}
	for _, c := range cases {
		r, err := calc.EvalString(c.src)
		if err != nil {
			t.Errorf("evaluating %q: %v", c.src, err)
			continue
		}
		if r.IsInt() != c.int {
			t.Errorf("%q gave %v with IsInt %t, want %t", c.src, r, r.IsInt(), c.int)
		}
	}
}

func TestEvalBigBase(t *testing.T) {
	// Reals from integers beyond float64 range go through arbitrary precision.
	r, err := calc.EvalString("(2 ** 2000) ** 0.5")
	if err != nil {
		t.Fatal(err)
	}
	want := math.Ldexp(1, 1000)
	if got := r.Float64(); math.Abs(got-want) > want*1e-15 {
		t.Errorf("wrong result: want %g, got %g", want, got)
	}
	r, err = calc.EvalString("sqrt(2 ** 2000)")
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Float64(); got != want {
		t.Errorf("wrong result: want %g, got %g", want, got)
	}
	r, err = calc.EvalString("(2 ** 2000) ** -3")
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Float64(); got != 0 {
		t.Errorf("wrong result: want 0, got %g", got)
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []calc.Option
		err  any
	}{
		{"div-zero", "10 / 0", nil, new(*calc.ZeroDivisionError)},
		{"div-zero-real", "10 / 0.0", nil, new(*calc.ZeroDivisionError)},
		{"div-zero-expr", "1 / (1 - 1)", nil, new(*calc.ZeroDivisionError)},
		{"zero-neg-pow", "0 ** -1", nil, new(*calc.ZeroDivisionError)},
		{"zero-neg-pow-real", "0.0 ** -2.5", nil, new(*calc.ZeroDivisionError)},
		{"zero-neg-pow-fn", "pow(0, -1)", nil, new(*calc.ZeroDivisionError)},
		{"neg-frac-pow", "(-8) ** (1 / 3)", nil, new(*calc.DomainError)},
		{"neg-frac-pow-fn", "pow(-2, 0.5)", nil, new(*calc.DomainError)},
		{"sqrt-neg", "sqrt(-1)", nil, new(*calc.DomainError)},
		{"overflow-pow", "10.0 ** 400", nil, new(*calc.OverflowError)},
		{"overflow-mul", "1e308 * 10", nil, new(*calc.OverflowError)},
		{"overflow-literal", "1e400", nil, new(*calc.OverflowError)},
		{"overflow-div", "2 ** 2000 / 3", nil, new(*calc.OverflowError)},
		{"overflow-bigpow", "(2 ** 2000) ** 1.5", nil, new(*calc.OverflowError)},
		{"int-size-pow", "2 ** 20000", nil, new(*calc.IntSizeError)},
		{"int-size-tower", "10 ** 10 ** 10", nil, new(*calc.IntSizeError)},
		{"int-size-exact", "2 ** 16384", nil, new(*calc.IntSizeError)},
		{"int-size-mul", "(2 ** 16000) * (2 ** 16000)", nil, new(*calc.IntSizeError)},
		{"int-size-literal", "1" + strings.Repeat("0", 6000), nil, new(*calc.IntSizeError)},
		{"int-size-option", "2 ** 8", []calc.Option{calc.MaxIntBits(8)}, new(*calc.IntSizeError)},
		{"int-size-add", "255 + 1", []calc.Option{calc.MaxIntBits(8)}, new(*calc.IntSizeError)},
		{"conversion-mul", "2 ** 2000 * 1.5", nil, new(*calc.ConversionError)},
		{"conversion-sin", "sin(2 ** 2000)", nil, new(*calc.ConversionError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalString(c.src, c.opts...)
			if err == nil {
				t.Fatalf("evaluating %q gave %v with no error", c.src, r)
			}
			if !errors.As(err, c.err) {
				t.Errorf("evaluating %q gave %#v, want %T", c.src, err, c.err)
			}
		})
	}
}

func TestEvalOptions(t *testing.T) {
	a, err := calc.ParseString("2 ** 7 + 2 ** 7")
	if err != nil {
		t.Fatal(err)
	}
	if r, err := a.Eval(calc.MaxIntBits(9)); err != nil || r.String() != "256" {
		t.Errorf("with 9 bits: got %v, %v", r, err)
	}
	if _, err := a.Eval(calc.MaxIntBits(8)); !errors.As(err, new(*calc.IntSizeError)) {
		t.Errorf("with 8 bits: want *IntSizeError, got %#v", err)
	}
	// Parsing options don't affect evaluation.
	if r, err := a.Eval(calc.MaxDepth(1)); err != nil || r.String() != "256" {
		t.Errorf("with depth option: got %v, %v", r, err)
	}
}

func TestEvalConcurrent(t *testing.T) {
	a, err := calc.ParseString("max(2 ** 100 / 3, sqrt(pi)) - 1 / 7")
	if err != nil {
		t.Fatal(err)
	}
	want, err := a.Eval()
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				r, err := a.Eval()
				if err != nil || r.Cmp(want) != 0 {
					errs <- fmt.Sprint(r, err)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Errorf("different result: %s", e)
	}
}

func BenchmarkEval(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"ints", "2+3+4"},
		{"reals", "2.5*3.5/4.5"},
		{"funcs", "max(sqrt(2), sin(pi/4))"},
		{"bigpow", "2 ** 1000"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			a, err := calc.ParseString(c.src)
			if err != nil {
				b.Fatal(err)
			}
			for i := 0; i < b.N; i++ {
				a.Eval()
			}
		})
	}
}

func Example() {
	for _, src := range []string{"2 + 3 * 4", "10 / 4", "2 ** 64", "sqrt(2)", "10 / 0", "2 +", "x + 1"} {
		r, err := calc.Evaluate(src)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(src, "=", r)
	}

	// Output:
	// 2 + 3 * 4 = 14
	// 10 / 4 = 2.5
	// 2 ** 64 = 18446744073709551616
	// sqrt(2) = 1.4142135623730951
	// division by zero is not allowed in '10 / 0'
	// invalid mathematical expression '2 +'
	// unknown function or variable "x" in 'x + 1'
}
