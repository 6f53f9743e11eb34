// Package calc implements a safe calculator for arithmetic expressions.
//
// Expressions use the operators + - * / and **, parentheses, decimal numbers
// like 12, 1.5, .5, and 2.5e-3, and the names of a fixed symbol table: the
// constants pi and e, the functions sqrt, sin, cos, tan, abs, and round of one
// argument, and min, max, and pow of two. Nothing else is accepted, and
// evaluation has no side effects.
//
// "-2 ** 2" is the same as "-(2 ** 2)", and "2 ** 3 ** 2" is "2 ** (3 ** 2)".
// Juxtaposition is not multiplication: "2 pi" and "2(3)" are syntax errors.
//
// Integers stay exact through + - * and ** with non-negative integer
// exponents. Division always gives a real number. Results that are
// mathematically integers are formatted without a decimal point, so
// "10 / 2" evaluates to "5".
//
// Evaluate classifies every failure as one of DivisionByZero, SyntaxError,
// UnknownName, or EvaluationError. Parse and Eval give the unclassified errors
// with position information instead.
package calc
