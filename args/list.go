package args

import (
	"fmt"

	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
	"github.com/reglet-dev/nu-plugin-lua/domain/errors"
)

// List binds a whole positional slice to a statically typed tuple T.
//
// Lists are built by induction: Empty is the base case and every AppendN
// call adds one slot at the next free index. Binding walks the slots left to
// right and stops at the first failure.
type List[T any] interface {
	// FromValues reports *errors.MissingArgumentError for the first declared
	// slot that has no positional value, before any extraction at that slot.
	FromValues(positional []entities.Value) (T, error)

	// Slots returns the per-slot shape metadata in declared order.
	Slots() []Slot
}

// Tuple0 is the input of a command with no arguments.
type Tuple0 struct{}

// Tuple1 holds one bound argument.
type Tuple1[A any] struct {
	First A
}

// Tuple2 holds two bound arguments.
type Tuple2[A, B any] struct {
	First  A
	Second B
}

// Tuple3 holds three bound arguments.
type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Tuple4 holds four bound arguments.
type Tuple4[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// Empty returns the list with no slots. It always binds successfully.
func Empty() List[Tuple0] {
	return emptyList{}
}

type emptyList struct{}

func (emptyList) FromValues([]entities.Value) (Tuple0, error) {
	return Tuple0{}, nil
}

func (emptyList) Slots() []Slot {
	return nil
}

// Append1 adds a first slot to the empty list.
func Append1[A any](init List[Tuple0], p Param[A]) List[Tuple1[A]] {
	return appendSlot(init, p, func(_ Tuple0, a A) Tuple1[A] {
		return Tuple1[A]{First: a}
	})
}

// Append2 adds a second slot.
func Append2[A, B any](init List[Tuple1[A]], p Param[B]) List[Tuple2[A, B]] {
	return appendSlot(init, p, func(t Tuple1[A], b B) Tuple2[A, B] {
		return Tuple2[A, B]{First: t.First, Second: b}
	})
}

// Append3 adds a third slot.
func Append3[A, B, C any](init List[Tuple2[A, B]], p Param[C]) List[Tuple3[A, B, C]] {
	return appendSlot(init, p, func(t Tuple2[A, B], c C) Tuple3[A, B, C] {
		return Tuple3[A, B, C]{First: t.First, Second: t.Second, Third: c}
	})
}

// Append4 adds a fourth slot.
func Append4[A, B, C, D any](init List[Tuple3[A, B, C]], p Param[D]) List[Tuple4[A, B, C, D]] {
	return appendSlot(init, p, func(t Tuple3[A, B, C], d D) Tuple4[A, B, C, D] {
		return Tuple4[A, B, C, D]{First: t.First, Second: t.Second, Third: t.Third, Fourth: d}
	})
}

// Of1 is shorthand for Append1(Empty(), a).
func Of1[A any](a Param[A]) List[Tuple1[A]] {
	return Append1(Empty(), a)
}

// Of2 is shorthand for a two-slot list.
func Of2[A, B any](a Param[A], b Param[B]) List[Tuple2[A, B]] {
	return Append2(Of1(a), b)
}

// Of3 is shorthand for a three-slot list.
func Of3[A, B, C any](a Param[A], b Param[B], c Param[C]) List[Tuple3[A, B, C]] {
	return Append3(Of2(a, b), c)
}

// Of4 is shorthand for a four-slot list.
func Of4[A, B, C, D any](a Param[A], b Param[B], c Param[C], d Param[D]) List[Tuple4[A, B, C, D]] {
	return Append4(Of3(a, b, c), d)
}

// appendedList is the inductive step: init covers slots [0, n) and param is
// bound at slot n.
type appendedList[I, L, O any] struct {
	init  List[I]
	join  func(I, L) O
	param Param[L]
	slots []Slot
}

func appendSlot[I, L, O any](init List[I], p Param[L], join func(I, L) O) List[O] {
	if p.From == nil {
		panic(fmt.Sprintf("args: parameter %q has no extractor", p.Name))
	}

	prev := init.Slots()
	slots := make([]Slot, len(prev), len(prev)+1)
	copy(slots, prev)
	slots = append(slots, Slot{
		Index:       len(prev),
		Name:        p.Name,
		Description: p.Description,
		Shape:       p.From.Shape(),
	})

	return &appendedList[I, L, O]{
		init:  init,
		param: p,
		join:  join,
		slots: slots,
	}
}

func (l *appendedList[I, L, O]) FromValues(positional []entities.Value) (O, error) {
	var zero O

	head, err := l.init.FromValues(positional)
	if err != nil {
		return zero, err
	}

	index := len(l.slots) - 1
	if len(positional) <= index {
		return zero, &errors.MissingArgumentError{Index: index, Name: l.param.Name}
	}

	last, err := l.param.From.Extract(positional[index])
	if err != nil {
		return zero, err
	}

	return l.join(head, last), nil
}

func (l *appendedList[I, L, O]) Slots() []Slot {
	out := make([]Slot, len(l.slots))
	copy(out, l.slots)
	return out
}

// At extracts positional[index] for handlers that read arguments by hand.
// An index past the end means the handler reads a slot the command never
// declared, which is a programmer error rather than a user error.
func At[T any](positional []entities.Value, index int, from Extractor[T]) (T, error) {
	var zero T
	if index < 0 || index >= len(positional) {
		return zero, &errors.BugError{Message: fmt.Sprintf("expected arg %d", index)}
	}
	return from.Extract(positional[index])
}
