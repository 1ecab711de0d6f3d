// SPDX-License-Identifier: Unlicense OR MIT

package dom

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Registry is the subscription table shared by hosts. It is not safe for
// concurrent use; hosts only touch it from their event loop.
type Registry struct {
	next Handle
	subs map[Handle]subscription
}

type subscription struct {
	kind Kind
	h    func(e Event)
}

// Add registers h for kind k.
func (r *Registry) Add(k Kind, h func(e Event)) Handle {
	if r.subs == nil {
		r.subs = make(map[Handle]subscription)
	}
	r.next++
	r.subs[r.next] = subscription{kind: k, h: h}
	return r.next
}

// Remove deletes a subscription and reports the kind it was registered
// for.
func (r *Registry) Remove(id Handle) (Kind, bool) {
	s, ok := r.subs[id]
	if !ok {
		return "", false
	}
	delete(r.subs, id)
	return s.kind, true
}

// Has reports whether any subscription for k remains.
func (r *Registry) Has(k Kind) bool {
	for _, s := range r.subs {
		if s.kind == k {
			return true
		}
	}
	return false
}

// Len returns the number of subscriptions.
func (r *Registry) Len() int {
	return len(r.subs)
}

// Dispatch invokes the handlers subscribed to e.Type in subscription
// order. Handlers may subscribe and unsubscribe; changes apply from the
// next Dispatch.
func (r *Registry) Dispatch(e Event) {
	ids := maps.Keys(r.subs)
	slices.Sort(ids)
	var hs []func(Event)
	for _, id := range ids {
		if s := r.subs[id]; s.kind == e.Type {
			hs = append(hs, s.h)
		}
	}
	for _, h := range hs {
		h(e)
	}
}

// Handles returns every live handle, newest first. Hosts tear down
// subscriptions in this order.
func (r *Registry) Handles() []Handle {
	ids := maps.Keys(r.subs)
	slices.Sort(ids)
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids
}
