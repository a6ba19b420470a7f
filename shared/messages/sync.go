package messages

// DealDamage forwards damage accumulated on a client to the host, in
// shared-pool units. Reliable, client to host.
type DealDamage struct {
	Amount float64
	Cause  string
}

// UpdateSharedHealth is the host's periodic reconciliation broadcast
// re-asserting the authoritative pool. Reliable, host to all.
type UpdateSharedHealth struct {
	HP  float64
	Max float64
}

// ReplicateProjectile carries a one-shot snapshot of a projectile fired
// by a transformed player so peers can materialize a passive copy.
// Best-effort, peer to all; a lost message just means a missing replica.
type ReplicateProjectile struct {
	X    float64
	Y    float64
	Blob []byte
}
