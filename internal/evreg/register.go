// Package evreg is a small callback registry keyed by event id. The input
// getters subscribe their handlers here while they wait for input and drop
// them all at once when they finish.
package evreg

import "container/list"

// The zero register is empty and ready for use.
type Register struct {
	m map[int]*list.List
}

// Add registers fn for evId. Remove it via *Regist.Unregister().
func (reg *Register) Add(evId int, fn func(any)) *Regist {
	return reg.AddCallback(evId, &Callback{F: fn})
}

func (reg *Register) AddCallback(evId int, cb *Callback) *Regist {
	if reg.m == nil {
		reg.m = map[int]*list.List{}
	}
	l, ok := reg.m[evId]
	if !ok {
		l = list.New()
		reg.m[evId] = l
	}
	elem := l.PushBack(cb)
	return &Regist{reg: reg, id: evId, elem: elem}
}

func (reg *Register) remove(evId int, elem *list.Element) {
	l, ok := reg.m[evId]
	if !ok {
		return
	}
	l.Remove(elem)
	if l.Len() == 0 {
		delete(reg.m, evId)
	}
}

// RunCallbacks calls every callback registered for evId in registration
// order and returns how many ran. Callbacks may unregister themselves or
// others while running; removed callbacks that have not run yet are skipped.
func (reg *Register) RunCallbacks(evId int, ev any) int {
	l, ok := reg.m[evId]
	if !ok {
		return 0
	}
	pending := make([]*list.Element, 0, l.Len())
	for e := l.Front(); e != nil; e = e.Next() {
		pending = append(pending, e)
	}
	c := 0
	for _, e := range pending {
		cb := e.Value.(*Callback)
		if cb.removed {
			continue
		}
		cb.F(ev)
		c++
	}
	return c
}

// NCallbacks is the number of registered callbacks for an event id.
func (reg *Register) NCallbacks(evId int) int {
	if l, ok := reg.m[evId]; ok {
		return l.Len()
	}
	return 0
}

// Len is the number of registered callbacks across all ids.
func (reg *Register) Len() int {
	n := 0
	for _, l := range reg.m {
		n += l.Len()
	}
	return n
}

type Callback struct {
	F       func(ev any)
	removed bool
}

type Regist struct {
	reg  *Register
	id   int
	elem *list.Element
}

// Unregister removes the callback. Calling it more than once is a no-op.
func (r *Regist) Unregister() {
	cb := r.elem.Value.(*Callback)
	if cb.removed {
		return
	}
	cb.removed = true
	r.reg.remove(r.id, r.elem)
}

// Unregister collects regists so they can be dropped together.
type Unregister struct {
	v []*Regist
}

func (unr *Unregister) Add(u ...*Regist) {
	unr.v = append(unr.v, u...)
}

func (unr *Unregister) UnregisterAll() {
	for _, e := range unr.v {
		e.Unregister()
	}
	unr.v = nil
}

// Len is the number of regists still held.
func (unr *Unregister) Len() int {
	return len(unr.v)
}
