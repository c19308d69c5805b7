package lisp

import "fmt"

// Kind is an error code. Errors are value-level codes, never control-flow
// exceptions: every evaluation function that can fail returns (Value,
// *Error) and callers check and propagate immediately.
type Kind int

// Possible Kind values.
const (
	KindNone Kind = iota
	KindSyntax
	KindUnbound
	KindArgs
	KindType
)

var kindStrings = [...]string{
	KindNone:    "ok",
	KindSyntax:  "syntax error",
	KindUnbound: "unbound symbol",
	KindArgs:    "wrong number of arguments",
	KindType:    "wrong type",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindStrings) {
		return "unknown error"
	}
	return kindStrings[k]
}

// Error is a Lisp-level error: a Kind plus a human message. It implements
// the error interface so it can also travel through ordinary Go error
// returns (the reader reports io/syntax failures this way).
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Errorf builds an Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, v ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, v...)}
}

func syntaxErrorf(format string, v ...interface{}) *Error {
	return Errorf(KindSyntax, format, v...)
}

func unboundErrorf(format string, v ...interface{}) *Error {
	return Errorf(KindUnbound, format, v...)
}

func argsErrorf(format string, v ...interface{}) *Error {
	return Errorf(KindArgs, format, v...)
}

func typeErrorf(format string, v ...interface{}) *Error {
	return Errorf(KindType, format, v...)
}
