package tool

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/cache"
)

// CalculatorName is the name of the calculator tool.
const CalculatorName = "calculate"

// CalculatorOption configures Calculator.
type CalculatorOption interface {
	applyCalc(*calculator)
}

type calcOpt func(*calculator)

func (f calcOpt) applyCalc(c *calculator) { f(c) }

// CacheSize sets the number of compiled expressions the calculator keeps. If
// n <= 0, a default size is used.
func CacheSize(n int) CalculatorOption {
	return calcOpt(func(c *calculator) { c.exprs = cache.New[*calc.Expr](n) })
}

// Limits sets the parse and evaluation limits the calculator uses.
func Limits(opts ...calc.Option) CalculatorOption {
	return calcOpt(func(c *calculator) { c.opts = append(c.opts, opts...) })
}

type calculator struct {
	exprs *cache.Cache[*calc.Expr]
	opts  []calc.Option
}

// Calculator returns a tool that evaluates arithmetic expressions. Its
// argument is an object with a string field "expression". Successful
// evaluations produce the formatted result, and failed ones produce the
// error message prefixed by "Error: ".
func Calculator(opts ...CalculatorOption) Tool {
	c := &calculator{}
	for _, o := range opts {
		if o != nil {
			o.applyCalc(c)
		}
	}
	if c.exprs == nil {
		c.exprs = cache.New[*calc.Expr](0)
	}
	return c
}

func (c *calculator) Name() string { return CalculatorName }

func (c *calculator) Description() string {
	return "Evaluate an arithmetic expression. Supports + - * / ** and parentheses, " +
		"the constants pi and e, and the functions sqrt, sin, cos, tan, abs, round, min, max, and pow."
}

func (c *calculator) Parameters() map[string]any {
	return object([]string{"expression"}, map[string]any{
		"expression": prop("string", `The expression to evaluate, e.g. "2 + 3 * 4" or "sqrt(16)".`),
	})
}

func (c *calculator) Call(ctx context.Context, args []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !gjson.ValidBytes(args) {
		return "", NewToolError(CalculatorName, "arguments are not valid JSON", ValidationError)
	}
	x := gjson.GetBytes(args, "expression")
	if !x.Exists() {
		return "", NewToolError(CalculatorName, `missing required argument "expression"`, ValidationError)
	}
	if x.Type != gjson.String {
		return "", NewToolError(CalculatorName, `argument "expression" must be a string`, ValidationError)
	}
	r, err := c.evaluate(x.Str)
	if err != nil {
		return "Error: " + err.Error(), nil
	}
	return r, nil
}

// evaluate compiles src, or reuses an earlier compilation, and evaluates it.
func (c *calculator) evaluate(src string) (string, error) {
	ex, err := c.exprs.GetOrCompute(src, func() (*calc.Expr, error) {
		return calc.Compile(src, c.opts...)
	})
	if err != nil {
		return "", err
	}
	return ex.Evaluate(c.opts...)
}
