package lisp

import (
	"strconv"
	"strings"
)

// Print renders v in its readable textual form. Builtin and Closure/Macro
// print as opaque tags (they have no readable external syntax); every
// other value round-trips through the reader.
func Print(v Value) string {
	var buf strings.Builder
	printValue(&buf, v, map[*Pair]bool{})
	return buf.String()
}

func printValue(buf *strings.Builder, v Value, onPath map[*Pair]bool) {
	switch v.Tag {
	case TagNil:
		buf.WriteString("NIL")
	case TagInteger:
		buf.WriteString(strconv.FormatInt(v.Int, 10))
	case TagSymbol:
		buf.WriteString(v.Sym.Name)
	case TagBuiltin:
		buf.WriteString("<builtin ")
		buf.WriteString(v.Builtin.Name)
		buf.WriteString(">")
	case TagPair:
		printList(buf, v, onPath)
	case TagClosure:
		printFunValue(buf, "<closure>", v, onPath)
	case TagMacro:
		printFunValue(buf, "<macro>", v, onPath)
	default:
		buf.WriteString("#<invalid>")
	}
}

func printFunValue(buf *strings.Builder, tag string, v Value, onPath map[*Pair]bool) {
	buf.WriteString(tag)
	if onPath[v.Pair] {
		buf.WriteString("#cycle")
		return
	}
	onPath[v.Pair] = true
	buf.WriteString(" (")
	printValue(buf, closureEnv(v), onPath)
	buf.WriteString(" ")
	printValue(buf, closureParams(v), onPath)
	for node := closureBody(v); !node.IsNil(); node = node.Pair.Tail {
		buf.WriteString(" ")
		printValue(buf, node.Pair.Head, onPath)
	}
	buf.WriteString(")")
	delete(onPath, v.Pair)
}

// printList renders a Pair as "(e1 e2 ... en)" for a proper list, or
// "(e1 ... ek . t)" when the tail after k pairs is non-Nil non-Pair.
func printList(buf *strings.Builder, v Value, onPath map[*Pair]bool) {
	if onPath[v.Pair] {
		buf.WriteString("(...cycle...)")
		return
	}
	onPath[v.Pair] = true
	defer delete(onPath, v.Pair)

	buf.WriteString("(")
	printValue(buf, v.Pair.Head, onPath)
	cur := v.Pair.Tail
	for {
		switch cur.Tag {
		case TagNil:
			buf.WriteString(")")
			return
		case TagPair:
			if onPath[cur.Pair] {
				buf.WriteString(" . (...cycle...))")
				return
			}
			buf.WriteString(" ")
			printValue(buf, cur.Pair.Head, onPath)
			cur = cur.Pair.Tail
		default:
			buf.WriteString(" . ")
			printValue(buf, cur, onPath)
			buf.WriteString(")")
			return
		}
	}
}
