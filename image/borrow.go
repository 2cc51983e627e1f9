package image

import (
	"fmt"
	"sync/atomic"
)

// loan is one set of mutable windows handed out by a single constructor
// call. The parent stays lent until every window of the set is released.
type loan struct {
	parent *borrow
	live   atomic.Int32
}

// borrow is the access state of a Buffer or ViewMut. A lent window can
// neither be written through nor lend again; a released window is dead.
type borrow struct {
	lent     atomic.Bool
	released atomic.Bool
	loan     *loan
}

// lend marks b as lent to n new windows and returns their states.
func (b *borrow) lend(n int) ([]*borrow, error) {
	if b != nil {
		if b.released.Load() {
			return nil, fmt.Errorf("%w: window has been released", ErrBorrowed)
		}
		if !b.lent.CompareAndSwap(false, true) {
			return nil, fmt.Errorf("%w: window is lent to live mutable views", ErrBorrowed)
		}
		if n == 0 {
			b.lent.Store(false)
		}
	}

	l := &loan{parent: b}
	l.live.Store(int32(n))
	states := make([]*borrow, n)
	for i := range states {
		states[i] = &borrow{loan: l}
	}
	return states, nil
}

func (b *borrow) release() {
	if b == nil || b.loan == nil {
		return
	}
	if b.lent.Load() {
		panic(fmt.Errorf("%w: release of a window with live mutable views", ErrBorrowed))
	}
	if !b.released.CompareAndSwap(false, true) {
		return
	}
	if b.loan.live.Add(-1) == 0 && b.loan.parent != nil {
		b.loan.parent.lent.Store(false)
	}
}

// checkWritable panics unless writes through b are currently allowed.
func (b *borrow) checkWritable() {
	if b == nil {
		return
	}
	if b.lent.Load() {
		panic(fmt.Errorf("%w: write through a window lent to live mutable views", ErrBorrowed))
	}
	if b.released.Load() {
		panic(fmt.Errorf("%w: write through a released window", ErrBorrowed))
	}
}
