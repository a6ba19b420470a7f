package config

// NetConfig contains replication cadence tuning. Intervals are in
// simulation frames; phases pick a fixed offset inside each interval so
// the two periodic jobs never land on the same frame.
type NetConfig struct {
	// Client-side pending-damage flush
	FlushInterval int
	FlushPhase    int

	// Host-side reconciliation broadcast
	BroadcastInterval int
	BroadcastPhase    int

	TickRate int // host tick rate for headless peers, updates per second
}

// HealthConfig contains shared-health tuning values.
type HealthConfig struct {
	DefaultShared float64 // starting hp and max hp of the party pool
	JoinBonus     float64 // hp/max increment per player that joins
	DisplayScale  float64 // log/HUD scale factor, never applied to state
	EaseSeconds   float32 // HUD health bar easing duration
}

var Net = NetConfig{
	FlushInterval:     15,
	FlushPhase:        2,
	BroadcastInterval: 4,
	BroadcastPhase:    3,
	TickRate:          60,
}

var Health = HealthConfig{
	DefaultShared: 4,
	JoinBonus:     4,
	DisplayScale:  25,
	EaseSeconds:   0.2,
}
