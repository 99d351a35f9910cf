package main

import (
	"fmt"
	"strings"

	"github.com/gitrdm/goflex/pkg/term"
)

// describe renders a term handle as a compact human-readable string for
// the demo commands' output. It is not a serialization format, only a
// debugging aid.
func describe(h *term.Heap, handle term.Handle) string {
	t := h.Get(handle)
	if t == nil {
		return "Nil"
	}
	switch t.Kind() {
	case term.Boolean:
		return fmt.Sprintf("%v", t.Bool())
	case term.Int:
		return fmt.Sprintf("%d", t.Int64())
	case term.Float:
		return fmt.Sprintf("%g", t.Float64())
	case term.String:
		return fmt.Sprintf("%q", string(t.Bytes()))
	case term.Symbol:
		return fmt.Sprintf("Symbol(%d)", t.SymbolID())
	case term.List:
		items := t.ListItems()
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = describe(h, it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case term.Record:
		keys := h.Get(t.RecordKeys()).ListItems()
		values := h.Get(t.RecordValues()).ListItems()
		parts := make([]string, 0, len(keys))
		for i := range keys {
			parts = append(parts, describe(h, keys[i])+": "+describe(h, values[i]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case term.Hashmap:
		entries := t.HashmapEntries()
		parts := make([]string, len(entries))
		for i, e := range entries {
			parts[i] = describe(h, e.Key) + " -> " + describe(h, e.Value)
		}
		return "Hashmap{" + strings.Join(parts, ", ") + "}"
	case term.Hashset:
		m := h.Get(t.HashsetMap())
		entries := m.HashmapEntries()
		parts := make([]string, len(entries))
		for i, e := range entries {
			parts[i] = describe(h, e.Key)
		}
		return "Hashset{" + strings.Join(parts, ", ") + "}"
	case term.Signal:
		conditions := t.SignalConditions()
		parts := make([]string, len(conditions))
		for i, c := range conditions {
			parts[i] = describeCondition(h, c)
		}
		return "Signal{" + strings.Join(parts, ", ") + "}"
	case term.Condition:
		return describeCondition(h, handle)
	default:
		return t.Kind().String()
	}
}

func describeCondition(h *term.Heap, handle term.Handle) string {
	t := h.Get(handle)
	if t == nil {
		return "Nil"
	}
	d := t.Condition()
	switch d.Kind {
	case term.CondError:
		return "Error(" + describe(h, d.Payload) + ")"
	case term.CondPending:
		return "Pending()"
	case term.CondCustom:
		return "Custom(" + describe(h, d.EffectType) + ", " + describe(h, d.EffectPayload) + ")"
	case term.CondInvalidFunctionArgs:
		return "InvalidFunctionArgs(" + describe(h, d.Fn) + ", " + describe(h, d.Args) + ")"
	case term.CondInvalidAccessor:
		return "InvalidAccessor(" + describe(h, d.Target) + ", " + describe(h, d.Key) + ")"
	case term.CondTypeError:
		return "TypeError(" + d.Expected + ", " + describe(h, d.Actual) + ")"
	case term.CondInvalidPointer:
		return "InvalidPointer()"
	default:
		return d.Kind.String()
	}
}
