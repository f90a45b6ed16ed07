package golua

import (
	"math"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/Shopify/go-lua"

	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
	"github.com/reglet-dev/nu-plugin-lua/domain/errors"
)

// MaxDepth is the deepest table nesting toValue converts. It also stops
// self-referencing tables.
const MaxDepth = 64

// toValue converts the lua value at index into a host value. The stack is
// left as it was found.
func toValue(l *lua.State, index, depth int) (entities.Value, error) {
	span := entities.UnknownSpan()

	switch l.TypeOf(index) {
	case lua.TypeNil, lua.TypeNone:
		return entities.NewNothing(span), nil
	case lua.TypeBoolean:
		return entities.NewBool(l.ToBoolean(index), span), nil
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		return numberValue(n, span), nil
	case lua.TypeString:
		s, _ := l.ToString(index)
		if !utf8.ValidString(s) {
			return entities.NewBinary([]byte(s), span), nil
		}
		return entities.NewString(s, span), nil
	case lua.TypeTable:
		return tableValue(l, l.AbsIndex(index), depth)
	default:
		return entities.Value{}, &errors.ConversionError{EngineType: lua.TypeNameOf(l, index)}
	}
}

func numberValue(n float64, span entities.Span) entities.Value {
	if n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64 {
		return entities.NewInt(int64(n), span)
	}
	return entities.NewFloat(n, span)
}

type tableEntry struct {
	value entities.Value
	key   string
	index int64 // > 0 when the key is a positive integer
}

func tableValue(l *lua.State, index, depth int) (entities.Value, error) {
	if depth >= MaxDepth {
		return entities.Value{}, &errors.ConversionError{
			EngineType: "table",
			Reason:     "nested deeper than " + strconv.Itoa(MaxDepth),
		}
	}
	if !l.CheckStack(3) {
		return entities.Value{}, &errors.ConversionError{EngineType: "table", Reason: "stack overflow"}
	}

	var entries []tableEntry
	seen := make(map[string]struct{})
	sequence := true

	l.PushNil()
	for l.Next(index) {
		// key at -2, value at -1
		entry, err := tableKey(l, -2)
		if err != nil {
			l.Pop(2)
			return entities.Value{}, err
		}
		if _, dup := seen[entry.key]; dup {
			l.Pop(2)
			return entities.Value{}, &errors.ConversionError{EngineType: "table", Reason: "duplicate key " + entry.key}
		}
		seen[entry.key] = struct{}{}
		entry.value, err = toValue(l, -1, depth+1)
		if err != nil {
			l.Pop(2)
			return entities.Value{}, err
		}
		if entry.index <= 0 {
			sequence = false
		}
		entries = append(entries, entry)
		l.Pop(1)
	}

	span := entities.UnknownSpan()
	if sequence {
		if items, ok := asSequence(entries); ok {
			return entities.NewList(items, span), nil
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	rec := entities.NewRecordOf(len(entries))
	for _, e := range entries {
		rec.Push(e.key, e.value)
	}
	return entities.NewRecord(rec, span), nil
}

// tableKey reads a key without converting it in place, which would confuse
// Next.
func tableKey(l *lua.State, index int) (tableEntry, error) {
	switch l.TypeOf(index) {
	case lua.TypeString:
		s, _ := l.ToString(index)
		return tableEntry{key: s}, nil
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		if n == math.Trunc(n) && n >= 1 && n < math.MaxInt64 {
			return tableEntry{key: strconv.FormatInt(int64(n), 10), index: int64(n)}, nil
		}
		return tableEntry{key: strconv.FormatFloat(n, 'g', -1, 64)}, nil
	case lua.TypeBoolean:
		return tableEntry{key: strconv.FormatBool(l.ToBoolean(index))}, nil
	default:
		return tableEntry{}, &errors.ConversionError{
			EngineType: "table",
			Reason:     lua.TypeNameOf(l, index) + " key",
		}
	}
}

// asSequence orders entries whose keys are exactly 1..n. Keys are unique, so
// n positive keys that are all <= n cover the whole range.
func asSequence(entries []tableEntry) ([]entities.Value, bool) {
	items := make([]entities.Value, len(entries))
	for _, e := range entries {
		if e.index < 1 || e.index > int64(len(entries)) {
			return nil, false
		}
		items[e.index-1] = e.value
	}
	return items, true
}
