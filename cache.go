package simcore

// Cache stores values keyed by Ticket and tracks a prerequisite DAG between
// tickets so that invalidating one ticket recursively invalidates every
// ticket that transitively depends on it. A Cache is not safe for
// concurrent use: it is a single-writer object, matching the rest of this
// package.
//
// The ticket/dependency bookkeeping mirrors the forward/reverse adjacency
// lists a reactive dependency graph keeps between a value and the
// computations derived from it, generalized here to dense integer keys
// instead of pointer identity.
type Cache struct {
	entries []cacheEntry
}

type cacheEntry struct {
	valid      bool
	value      Value
	prereqs    []Ticket
	dependents []Ticket
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

// MakeTicket allocates a fresh ticket with the given prerequisites and
// installs the reverse edges from each prerequisite to the new ticket.
// It fails with *UnknownTicketError if any prerequisite was not itself
// allocated by this Cache.
func (c *Cache) MakeTicket(prereqs ...Ticket) (Ticket, error) {
	for _, p := range prereqs {
		if !c.known(p) {
			return NoTicket, &UnknownTicketError{Ticket: p}
		}
	}

	t := Ticket(len(c.entries))
	c.entries = append(c.entries, cacheEntry{
		prereqs: append([]Ticket(nil), prereqs...),
	})

	for _, p := range prereqs {
		c.entries[p].dependents = append(c.entries[p].dependents, t)
	}

	return t, nil
}

// Set stores value at ticket, marking it valid, and returns the value that
// was just stored. It does not invalidate anything downstream of ticket;
// callers that are repopulating a ticket after Invalidate use Set exactly
// because they intend the dependents to stay invalid until they, too, are
// recomputed and Set.
func (c *Cache) Set(t Ticket, value Value) (Value, error) {
	if !c.known(t) {
		return nil, &UnknownTicketError{Ticket: t}
	}
	e := &c.entries[t]
	e.value = value
	e.valid = true
	return e.value, nil
}

// Swap replaces the value at ticket and returns the value that was
// previously stored there, or nil if the slot was invalid. Like Set, it
// does not invalidate dependents.
func (c *Cache) Swap(t Ticket, value Value) (Value, error) {
	if !c.known(t) {
		return nil, &UnknownTicketError{Ticket: t}
	}
	e := &c.entries[t]
	prev := e.value
	wasValid := e.valid
	e.value = value
	e.valid = true
	if !wasValid {
		return nil, nil
	}
	return prev, nil
}

// Get returns the value stored at ticket, or ok=false if the slot is
// invalid. Get never computes anything; it is a pure read of cache state.
func (c *Cache) Get(t Ticket) (value Value, ok bool, err error) {
	if !c.known(t) {
		return nil, false, &UnknownTicketError{Ticket: t}
	}
	e := &c.entries[t]
	if !e.valid {
		return nil, false, nil
	}
	return e.value, true, nil
}

// Invalidate marks ticket invalid and recursively marks every ticket
// reachable from it through forward (prerequisite -> dependent) edges
// invalid as well. The traversal always re-marks every reachable ticket,
// even ones already invalid, so a ticket re-populated with Set after a
// previous Invalidate is still caught by a later Invalidate of an ancestor.
func (c *Cache) Invalidate(t Ticket) error {
	if !c.known(t) {
		return &UnknownTicketError{Ticket: t}
	}

	stack := []Ticket{t}
	visited := make(map[Ticket]bool, len(c.entries))

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[cur] {
			continue
		}
		visited[cur] = true

		c.entries[cur].valid = false

		stack = append(stack, c.entries[cur].dependents...)
	}

	return nil
}

// Clone returns a deep copy of c: same tickets, same prerequisite/dependent
// topology, and independently-owned copies of every stored value (via
// Value.Clone). Invalidations on the clone are never visible on the
// original, and vice versa.
func (c *Cache) Clone() *Cache {
	clone := &Cache{entries: make([]cacheEntry, len(c.entries))}
	for i := range c.entries {
		src := &c.entries[i]
		dst := &clone.entries[i]
		dst.valid = src.valid
		dst.prereqs = append([]Ticket(nil), src.prereqs...)
		dst.dependents = append([]Ticket(nil), src.dependents...)
		if src.value != nil {
			dst.value = src.value.Clone()
		}
	}
	return clone
}

// NumTickets returns the number of tickets this Cache has allocated.
func (c *Cache) NumTickets() int {
	return len(c.entries)
}

func (c *Cache) known(t Ticket) bool {
	return t >= 0 && int(t) < len(c.entries)
}
