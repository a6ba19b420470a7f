package network

// Mode selects the delivery guarantee requested for a send. The websocket
// transport is reliable-ordered, so BestEffort rides the same link and
// only documents that the receiver may treat loss as acceptable.
type Mode int

const (
	Reliable Mode = iota
	BestEffort
)

func (m Mode) String() string {
	if m == BestEffort {
		return "best-effort"
	}
	return "reliable"
}

// Inbound is a message received from a peer, tagged with the sender's
// identity for the handling side.
type Inbound struct {
	From string
	Msg  any
}
