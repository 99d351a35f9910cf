// Package iterproto implements the single-threaded pull-based iterator
// protocol: a synchronous Next call that advances an opaque token and
// returns the next value, the advanced token, and a dependency Signal, or
// signals exhaustion by returning the Null value.
//
// gitrdm-gokando's stream.go ResultStream family (Take/Put/Close over a
// goroutine-fed channel) is restructured here into a synchronous pull:
// the Map/Filter/Chain/Zip combinators compose lazily over iterable
// sources the same way ComposableResultStream wraps streams, without the
// channel plumbing a single-threaded evaluator has no use for. See
// DESIGN.md.
package iterproto

import (
	"github.com/gitrdm/goflex/pkg/signal"
	"github.com/gitrdm/goflex/pkg/term"
)

// Evaluator is the minimal surface Next needs from the evaluation package:
// applying a function term to arguments, and evaluating a term to normal
// form. Declared locally (rather than imported from pkg/eval) to avoid an
// import cycle; pkg/eval.Evaluator satisfies this interface structurally.
type Evaluator interface {
	Apply(h *term.Heap, fn term.Handle, args []term.Handle) (term.Handle, term.Handle)
	Eval(h *term.Heap, scope []term.Handle, expr term.Handle) (term.Handle, term.Handle)
}

// Token is the opaque iterator cursor threaded through successive Next
// calls. Its shape covers every IterKind variant; only the fields relevant
// to a given variant are populated. A zero Token is the initial state.
type Token struct {
	Cursor int64       // List/Record/Range/HashmapKeys/HashmapValues position, or a fired flag for single-shot variants
	Side   bool        // Chain: false while still draining Src, true once draining Src2
	Inner  *Token      // Map/Filter/Take/Skip/Flatten/IndexedAccessor: the wrapped source's token
	Inner2 *Token      // Zip/Chain/Flatten: the second source's token, or the current inner iterable's token
	Stack  []frame     // Tree: in-order traversal stack
	CurSrc term.Handle // Flatten: the current inner iterable handle
}

// frame is one level of a Tree in-order traversal.
type frame struct {
	node     term.Handle
	visited  bool
}

// Next advances src (any term implementing the iterate capability: List,
// Record, Hashmap, Hashset, Tree, or an Iterator) past tok and returns the
// next value. A Null value return means the iterable is exhausted. deps
// accumulates as a Signal of any conditions surfaced while producing value
// (e.g. an Evaluate variant whose wrapped expression raised one).
func Next(ev Evaluator, h *term.Heap, src term.Handle, tok *Token) (value term.Handle, next *Token, deps term.Handle) {
	t := h.Get(src)
	if t == nil {
		return term.Null, tok, term.Null
	}
	switch t.Kind() {
	case term.List:
		return nextList(t, tok)
	case term.Record:
		return nextRecord(h, t, tok)
	case term.Hashmap:
		return nextHashmapEntries(h, t, tok)
	case term.Hashset:
		return nextHashset(h, t, tok)
	case term.Tree:
		return nextTree(h, src, tok)
	case term.Iterator:
		return nextIterator(ev, h, t, tok)
	default:
		return term.Null, tok, term.Null
	}
}

func cloneTok(tok *Token) *Token {
	c := *tok
	return &c
}

func isSignal(h *term.Heap, v term.Handle) bool {
	t := h.Get(v)
	return t != nil && t.Kind() == term.Signal
}

// truthy mirrors pkg/builtins' truthy predicate: Nil and Boolean(false) are
// falsy, every other term (including a non-boolean value) is truthy.
func truthy(h *term.Heap, v term.Handle) bool {
	t := h.Get(v)
	if t == nil {
		return false
	}
	switch t.Kind() {
	case term.Nil:
		return false
	case term.Boolean:
		return t.Bool()
	default:
		return true
	}
}

func nextList(t *term.Term, tok *Token) (term.Handle, *Token, term.Handle) {
	items := t.ListItems()
	if tok.Cursor >= int64(len(items)) {
		return term.Null, tok, term.Null
	}
	nt := cloneTok(tok)
	nt.Cursor++
	return items[tok.Cursor], nt, term.Null
}

// nextRecord yields List(key, value) pairs in key order.
func nextRecord(h *term.Heap, t *term.Term, tok *Token) (term.Handle, *Token, term.Handle) {
	keys := h.Get(t.RecordKeys()).ListItems()
	if tok.Cursor >= int64(len(keys)) {
		return term.Null, tok, term.Null
	}
	values := h.Get(t.RecordValues()).ListItems()
	pair := h.NewList([]term.Handle{keys[tok.Cursor], values[tok.Cursor]})
	nt := cloneTok(tok)
	nt.Cursor++
	return pair, nt, term.Null
}

func nextHashmapEntries(h *term.Heap, t *term.Term, tok *Token) (term.Handle, *Token, term.Handle) {
	entries := t.HashmapEntries()
	if tok.Cursor >= int64(len(entries)) {
		return term.Null, tok, term.Null
	}
	e := entries[tok.Cursor]
	pair := h.NewList([]term.Handle{e.Key, e.Value})
	nt := cloneTok(tok)
	nt.Cursor++
	return pair, nt, term.Null
}

func nextHashset(h *term.Heap, t *term.Term, tok *Token) (term.Handle, *Token, term.Handle) {
	m := h.Get(t.HashsetMap())
	entries := m.HashmapEntries()
	if tok.Cursor >= int64(len(entries)) {
		return term.Null, tok, term.Null
	}
	nt := cloneTok(tok)
	nt.Cursor++
	return entries[tok.Cursor].Key, nt, term.Null
}

// nextTree walks the tree in order, treating non-Tree handles as leaves.
// A Tree is a balanced binary structure whose leaves are the collected
// elements and whose internal nodes are pure Tree(left,right) pairs with
// no payload of their own.
func nextTree(h *term.Heap, src term.Handle, tok *Token) (term.Handle, *Token, term.Handle) {
	stack := tok.Stack
	if stack == nil && tok.Cursor == 0 {
		stack = []frame{{node: src}}
	}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		node := h.Get(top.node)
		if node == nil {
			stack = stack[:len(stack)-1]
			continue
		}
		if node.Kind() != term.Tree {
			stack = stack[:len(stack)-1]
			nt := &Token{Stack: stack, Cursor: tok.Cursor + 1}
			return top.node, nt, term.Null
		}
		if !top.visited {
			top.visited = true
			left := node.TreeLeft()
			if left != term.Null {
				stack = append(stack, frame{node: left})
			}
			continue
		}
		stack = stack[:len(stack)-1]
		if right := node.TreeRight(); right != term.Null {
			stack = append(stack, frame{node: right})
		}
	}
	return term.Null, &Token{Stack: nil, Cursor: tok.Cursor}, term.Null
}

// Drain gathers every value Next produces from src, in order, without
// short-circuiting when a value happens to be a Signal term. Callers that
// want to union every signal produced along the way rely on Drain never
// stopping early for that reason. Dependencies reported by Next are unioned
// into deps and never stop the drain; only a Null value ends it.
func Drain(ev Evaluator, h *term.Heap, src term.Handle) (values []term.Handle, deps term.Handle) {
	tok := &Token{}
	var allDeps []term.Handle
	for {
		var v term.Handle
		var d term.Handle
		v, tok, d = Next(ev, h, src, tok)
		if d != term.Null {
			allDeps = append(allDeps, d)
		}
		if v == term.Null {
			break
		}
		values = append(values, v)
	}
	return values, signal.Union(h, allDeps...)
}
