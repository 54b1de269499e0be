// Package store holds the client-side state of each backend resource and
// the Bubble Tea commands that fetch it.
//
// Every fetch started on a [Slice] is numbered. A result whose number is not
// the latest one for its operation is dropped, so a slow response to an old
// query never overwrites a newer one.
package store

import (
	"time"

	"github.com/ledgerlens/ledgerlens/internal/uiutil"
)

// Op names an operation on a slice. Loading flags and sequence numbers are
// tracked per operation.
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpCreate Op = "create"
)

// Result is the message delivered when a fetch started by a slice ends.
type Result[T any] struct {
	Slice string
	Op    Op
	Seq   uint64
	Key   uint64
	Items []T
	Item  T
	Err   error
}

// Slice is the state of one resource: its items, the current record, a
// loading flag per operation and the last error.
type Slice[T any] struct {
	name string

	Items     []T
	Current   *T
	Err       string
	LastErr   error
	FetchedAt time.Time

	loading map[Op]bool
	seq     map[Op]uint64
	next    uint64

	// key of the last applied list, and of the list in flight
	listKey    uint64
	hasListKey bool
	pendingKey uint64
}

// NewSlice returns an empty slice. name routes results back to it.
func NewSlice[T any](name string) *Slice[T] {
	return &Slice[T]{
		name:    name,
		loading: map[Op]bool{},
		seq:     map[Op]uint64{},
	}
}

// Name returns the slice name.
func (s *Slice[T]) Name() string {
	return s.name
}

// Begin marks op as loading and returns the sequence number its result must
// carry. Any previous error is cleared.
func (s *Slice[T]) Begin(op Op) uint64 {
	s.next++
	s.seq[op] = s.next
	s.loading[op] = true
	s.Err = ""
	s.LastErr = nil
	return s.next
}

// Apply stores a result. It returns false when the result belongs to
// another slice or is stale.
func (s *Slice[T]) Apply(r Result[T]) bool {
	if r.Slice != s.name || r.Seq == 0 || r.Seq != s.seq[r.Op] {
		return false
	}
	s.loading[r.Op] = false
	if r.Err != nil {
		s.Err = uiutil.ErrorMessage(r.Err)
		s.LastErr = r.Err
		return true
	}
	switch r.Op {
	case OpList:
		s.Items = r.Items
		s.listKey = r.Key
		s.hasListKey = true
		s.FetchedAt = time.Now()
	default:
		item := r.Item
		s.Current = &item
	}
	return true
}

// Loading reports whether op is in flight.
func (s *Slice[T]) Loading(op Op) bool {
	return s.loading[op]
}

// Any reports whether any operation is in flight.
func (s *Slice[T]) Any() bool {
	for _, v := range s.loading {
		if v {
			return true
		}
	}
	return false
}

// fresh reports whether a list for key is loaded or loading without error,
// in which case fetching it again is unnecessary.
func (s *Slice[T]) fresh(key uint64) bool {
	if s.Err != "" {
		return false
	}
	if s.loading[OpList] {
		return s.pendingKey == key
	}
	return s.hasListKey && s.listKey == key
}

// beginList starts a list fetch for key.
func (s *Slice[T]) beginList(key uint64) uint64 {
	s.pendingKey = key
	return s.Begin(OpList)
}
