package simcore

import "fmt"

// Ticket is a dense, opaque identifier for a Cache slot. Tickets are issued
// in allocation order starting at 0 and are never reused, so a ticket value
// also doubles as an index into the Cache's internal storage.
type Ticket int

// NoTicket is the sentinel returned alongside an error from
// Cache.MakeTicket; it never identifies a real slot. It is not Ticket's
// zero value: Ticket(0) is the first ticket a Cache issues.
const NoTicket Ticket = -1

func (t Ticket) String() string {
	if t == NoTicket {
		return "<no-ticket>"
	}
	return fmt.Sprintf("ticket#%d", int(t))
}
