package messages

// JoinRequest is sent by a client after connecting to request joining the
// session.
type JoinRequest struct {
	Version    string
	PlayerName string
}

// JoinAccepted is sent by the host when a client's join request is
// accepted.
type JoinAccepted struct {
	PeerID     string
	ServerName string
	TickRate   int
}

// JoinRejected is sent by the host when a client's join request is
// rejected.
type JoinRejected struct {
	Reason string
}
