package components

import "github.com/yohamta/donburi"

// ProjectileData tracks a fired projectile for replication purposes.
//
// FiredBy stays at the zero sentinel for an original local shot; replicas
// materialized from a remote snapshot get a non-zero value so they can
// never trigger a nested replication broadcast.
type ProjectileData struct {
	FiredBy    donburi.Entity
	Replicated bool // set after the first fired-event evaluation, always

	Seed    int64
	VelX    float64
	VelY    float64
	Payload string // spell payload identifier
}

var Projectile = donburi.NewComponentType[ProjectileData]()
