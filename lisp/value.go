// Package lisp implements the value model, environment, evaluator, builtins,
// and garbage collector of a small Lisp dialect.
package lisp

import "fmt"

// Tag identifies the variant held by a Value.
type Tag uint8

// Possible Tag values.
const (
	TagNil Tag = iota
	TagPair
	TagSymbol
	TagInteger
	TagBuiltin
	TagClosure
	TagMacro

	numTags
)

var tagStrings = [numTags]string{
	TagNil:     "nil",
	TagPair:    "pair",
	TagSymbol:  "symbol",
	TagInteger: "integer",
	TagBuiltin: "builtin",
	TagClosure: "closure",
	TagMacro:   "macro",
}

func (t Tag) String() string {
	if int(t) >= len(tagStrings) {
		return "invalid"
	}
	return tagStrings[t]
}

// Value is a tagged Lisp value. It is small and copied by value the way
// elps's LVal is, but unlike LVal a Value never deep-copies the structure it
// points into: Pair, Closure, and Macro all reference a heap-allocated *Pair
// that many Values may share.
type Value struct {
	Tag     Tag
	Int     int64
	Sym     *Symbol
	Pair    *Pair
	Builtin *Builtin
}

// Nil is the canonical falsy singleton value.
var Nil = Value{Tag: TagNil}

// Integer returns a Value holding the machine integer x.
func Integer(x int64) Value {
	return Value{Tag: TagInteger, Int: x}
}

// IsNil reports whether v is the Nil value.
func (v Value) IsNil() bool {
	return v.Tag == TagNil
}

// IsPair reports whether v is a heap-allocated cons cell (not a Closure or
// Macro, which share the same payload but a distinct tag).
func (v Value) IsPair() bool {
	return v.Tag == TagPair
}

// IsCallable reports whether v can appear in operator position.
func (v Value) IsCallable() bool {
	switch v.Tag {
	case TagBuiltin, TagClosure, TagMacro:
		return true
	default:
		return false
	}
}

// IsTruthy reports whether v is anything other than Nil; only Nil is false.
func (v Value) IsTruthy() bool {
	return v.Tag != TagNil
}

// symbolValue returns a Value referencing the interned symbol sym. Only
// SymbolTable.Intern constructs symbols, so construction stays centralized
// behind that one constructor as the design notes ask.
func symbolValue(sym *Symbol) Value {
	return Value{Tag: TagSymbol, Sym: sym}
}

// Eq implements the core `eq?` identity comparison: tags must match and
// payloads must be identical (Nil≡Nil; Integer by value; Symbol, Pair,
// Closure, Macro, Builtin by pointer identity).
func Eq(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagNil:
		return true
	case TagInteger:
		return a.Int == b.Int
	case TagSymbol:
		return a.Sym == b.Sym
	case TagBuiltin:
		return a.Builtin == b.Builtin
	case TagPair, TagClosure, TagMacro:
		return a.Pair == b.Pair
	default:
		return false
	}
}

// GoString supports %#v style debugging without dumping heap contents.
func (v Value) GoString() string {
	return fmt.Sprintf("Value{Tag: %s}", v.Tag)
}
