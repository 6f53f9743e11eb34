package calc

import (
	"errors"
	"strconv"
)

// ErrorKind classifies the errors returned by Evaluate and Compile. An
// ErrorKind is itself an error so that errors.Is can match it against an
// *Error.
type ErrorKind int

const (
	// DivisionByZero is division by zero, including zero raised to a negative
	// power.
	DivisionByZero ErrorKind = iota + 1
	// SyntaxError is an expression that cannot be parsed, including
	// expressions nested too deeply.
	SyntaxError
	// UnknownName is a name that is not in the symbol table.
	UnknownName
	// EvaluationError is any other failure: arguments outside a function's
	// domain, results out of range, and misused function names.
	EvaluationError
)

func (k ErrorKind) String() string {
	switch k {
	case DivisionByZero:
		return "DivisionByZero"
	case SyntaxError:
		return "SyntaxError"
	case UnknownName:
		return "UnknownName"
	case EvaluationError:
		return "EvaluationError"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k ErrorKind) Error() string {
	return k.String()
}

// Error is a classified error. Its message names the problem and quotes the
// original expression. The underlying error, if any, is available through
// errors.As.
type Error struct {
	// Kind is the class of the error.
	Kind ErrorKind
	// Expression is the expression that failed.
	Expression string
	// Message is the complete error message.
	Message string

	err error
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) Unwrap() error {
	return err.err
}

// Is reports whether target is the error's kind.
func (err *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == err.Kind
}

// classify converts an error from parsing or evaluation to an *Error.
func classify(expr string, err error) *Error {
	var (
		ce *Error
		ze *ZeroDivisionError
		ne *NameError
		fe *CallError
		nf *NotFuncError
		ie InputError
	)
	switch {
	case errors.As(err, &ce):
		return ce
	case errors.As(err, &ze):
		return newError(DivisionByZero, expr, "division by zero is not allowed in "+squote(expr), err)
	case errors.As(err, &ne):
		return newError(UnknownName, expr, "unknown function or variable "+strconv.Quote(ne.Name)+" in "+squote(expr), err)
	case errors.As(err, &fe):
		return evalError(expr, fe.msg(), err)
	case errors.As(err, &nf):
		return evalError(expr, nf.msg(), err)
	case errors.As(err, &ie):
		return newError(SyntaxError, expr, "invalid mathematical expression "+squote(expr), err)
	}
	var (
		de *DomainError
		oe *OverflowError
		se *IntSizeError
		ve *ConversionError
	)
	switch {
	case errors.As(err, &de), errors.As(err, &oe), errors.As(err, &se), errors.As(err, &ve):
		return evalError(expr, err.Error(), err)
	default:
		// Unknown errors may carry details that don't belong in the message.
		return evalError(expr, "", err)
	}
}

func evalError(expr, reason string, err error) *Error {
	msg := "could not evaluate " + squote(expr)
	if reason != "" {
		msg += ": " + reason
	}
	return newError(EvaluationError, expr, msg, err)
}

func newError(kind ErrorKind, expr, msg string, err error) *Error {
	return &Error{Kind: kind, Expression: expr, Message: msg, err: err}
}

// squote quotes the expression in single quotes as it was written.
func squote(s string) string {
	return "'" + s + "'"
}

// guard converts a panic into an EvaluationError for expr. It must be deferred
// directly.
func guard(expr string, err *error) {
	if r := recover(); r != nil {
		*err = evalError(expr, "", nil)
	}
}
