package calc_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"2 + 3", "5"},
		{"10 / 2", "5"},
		{"2 ** 3", "8"},
		{"2 + 3 * 4", "14"},
		{"(2 + 3) * 4", "20"},
		{"sqrt(16) + abs(-2)", "6"},
		{"round(2.5) + round(0.5)", "2"},
		{"  7  ", "7"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			r, err := calc.Evaluate(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, r)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind calc.ErrorKind
		msg  string
	}{
		{"div-zero", "10 / 0", calc.DivisionByZero, "division by zero is not allowed in '10 / 0'"},
		{"zero-neg-pow", "0 ** -1", calc.DivisionByZero, "division by zero is not allowed in '0 ** -1'"},
		{"syntax", "2 +", calc.SyntaxError, "invalid mathematical expression '2 +'"},
		{"syntax-empty", "", calc.SyntaxError, "invalid mathematical expression ''"},
		{"syntax-juxt", "2 3", calc.SyntaxError, "invalid mathematical expression '2 3'"},
		{"syntax-paren", "(2 + 3", calc.SyntaxError, "invalid mathematical expression '(2 + 3'"},
		{"syntax-depth", strings.Repeat("(", 500) + "1" + strings.Repeat(")", 500), calc.SyntaxError, ""},
		{"unknown", "unknown_variable", calc.UnknownName, `unknown function or variable "unknown_variable" in 'unknown_variable'`},
		{"unknown-both", "hello + world", calc.UnknownName, `unknown function or variable "hello" in 'hello + world'`},
		{"unknown-first", "1 / 0 + x", calc.UnknownName, `unknown function or variable "x" in '1 / 0 + x'`},
		{"domain", "(-8) ** 0.5", calc.EvaluationError, "could not evaluate '(-8) ** 0.5': -8 outside domain of ** (argument 1)"},
		{"sqrt", "sqrt(-4)", calc.EvaluationError, "could not evaluate 'sqrt(-4)': -4 outside domain of sqrt (argument 1)"},
		{"arity", "max(1)", calc.EvaluationError, "could not evaluate 'max(1)': cannot call max with 1 arguments (takes 2)"},
		{"bare", "sqrt + 1", calc.EvaluationError, "could not evaluate 'sqrt + 1': function sqrt used without arguments"},
		{"notfunc", "pi(2)", calc.EvaluationError, "could not evaluate 'pi(2)': pi is not a function"},
		{"overflow", "10.0 ** 400", calc.EvaluationError, "could not evaluate '10.0 ** 400': result of ** out of range"},
		{"int-size", "2 ** 100000", calc.EvaluationError, "could not evaluate '2 ** 100000': integer result of ** exceeds 16384 bits"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Evaluate(c.src)
			require.Error(t, err)
			assert.Empty(t, r)
			var ce *calc.Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, c.kind, ce.Kind)
			assert.Equal(t, c.src, ce.Expression)
			assert.ErrorIs(t, err, c.kind)
			if c.msg != "" {
				assert.Equal(t, c.msg, err.Error())
			}
		})
	}
}

func TestEvaluateCauses(t *testing.T) {
	_, err := calc.Evaluate("10 / 0")
	var ze *calc.ZeroDivisionError
	assert.ErrorAs(t, err, &ze)
	assert.False(t, errors.Is(err, calc.SyntaxError))

	_, err = calc.Evaluate("x")
	var ne *calc.NameError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "x", ne.Name)

	_, err = calc.Evaluate("1 $ 2")
	var le *calc.LexError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 3, le.Pos())
}

func TestEvaluateIdempotent(t *testing.T) {
	for _, src := range []string{"1 / 3", "2 ** 200", "sin(1) * e", "10 / 0", "hello + world"} {
		r1, err1 := calc.Evaluate(src)
		r2, err2 := calc.Evaluate(src)
		assert.Equal(t, r1, r2, src)
		assert.Equal(t, err1, err2, src)
	}
}

func TestEvaluateClosedGrammar(t *testing.T) {
	cases := []string{
		"__import__('os').system('ls')",
		"__builtins__",
		"open('/etc/passwd')",
		"exec('1')",
		"eval(1)",
		"globals()",
		"pi.__class__",
		"(1).__class__",
		"[x for x in ()]",
		"lambda: 1",
		"1; 2",
		"a = 1",
		"sqrt.__globals__",
		"'a' * 10",
		"1 if 1 else 2",
		"getattr(pi, 'real')",
		"os.system",
		"2 ^ 3",
		"1 // 2",
		"5 % 3",
		"0x10",
		"1_000",
		"\x00",
	}
	for _, src := range cases {
		r, err := calc.Evaluate(src)
		if !assert.Error(t, err, "%q evaluated to %q", src, r) {
			continue
		}
		var ce *calc.Error
		require.ErrorAs(t, err, &ce)
		assert.Contains(t, []calc.ErrorKind{calc.SyntaxError, calc.UnknownName}, ce.Kind, "%q gave %v", src, err)
	}
}

func TestCompile(t *testing.T) {
	ex, err := calc.Compile("max(2, 3) ** 2")
	require.NoError(t, err)
	assert.Equal(t, "max(2, 3) ** 2", ex.Source())
	assert.Equal(t, []string{"max"}, ex.Names())
	for range 3 {
		r, err := ex.Evaluate()
		require.NoError(t, err)
		assert.Equal(t, "9", r)
	}

	ex, err = calc.Compile("1 / (pi - pi)")
	require.NoError(t, err)
	_, err = ex.Evaluate()
	assert.ErrorIs(t, err, calc.DivisionByZero)
	assert.EqualError(t, err, "division by zero is not allowed in '1 / (pi - pi)'")

	_, err = calc.Compile("2 +")
	assert.ErrorIs(t, err, calc.SyntaxError)
}

func TestExprEvaluateFromReader(t *testing.T) {
	ex, err := calc.Parse(strings.NewReader("1/0"))
	require.NoError(t, err)
	assert.Empty(t, ex.Source())
	_, err = ex.Evaluate()
	assert.EqualError(t, err, "division by zero is not allowed in '((1) / (0))'")
}

func TestSymbols(t *testing.T) {
	assert.Equal(t, []string{"abs", "cos", "e", "max", "min", "pi", "pow", "round", "sin", "sqrt", "tan"}, calc.Symbols())
	cases := []struct {
		name  string
		kind  calc.SymbolKind
		arity int
	}{
		{"pi", calc.Constant, 0},
		{"e", calc.Constant, 0},
		{"sqrt", calc.Function, 1},
		{"sin", calc.Function, 1},
		{"cos", calc.Function, 1},
		{"tan", calc.Function, 1},
		{"abs", calc.Function, 1},
		{"round", calc.Function, 1},
		{"min", calc.Function, 2},
		{"max", calc.Function, 2},
		{"pow", calc.Function, 2},
	}
	for _, c := range cases {
		kind, arity, ok := calc.Lookup(c.name)
		assert.True(t, ok, c.name)
		assert.Equal(t, c.kind, kind, c.name)
		assert.Equal(t, c.arity, arity, c.name)
	}
	_, _, ok := calc.Lookup("exp")
	assert.False(t, ok)
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "DivisionByZero", calc.DivisionByZero.String())
	assert.Equal(t, "SyntaxError", calc.SyntaxError.String())
	assert.Equal(t, "UnknownName", calc.UnknownName.String())
	assert.Equal(t, "EvaluationError", calc.EvaluationError.String())
	assert.Equal(t, "ErrorKind(9)", calc.ErrorKind(9).String())
}
