package tags

import "github.com/yohamta/donburi"

var (
	// PlayerUnit marks an entity as a canonical player avatar. The local
	// player counts as transformed whenever its controlled entity does
	// not carry this tag.
	PlayerUnit = donburi.NewTag().SetName("PlayerUnit")

	Projectile = donburi.NewTag().SetName("Projectile")

	// Replica marks a passive copy materialized from a remote snapshot.
	Replica = donburi.NewTag().SetName("Replica")

	// LocalOnly excludes an entity from the generic enemy-sync pass.
	LocalOnly = donburi.NewTag().SetName("LocalOnly")
)

// Resolv tags for collision objects
const (
	ResolvPlayer     = "Player"
	ResolvProjectile = "Projectile"
	ResolvReplica    = "Replica"
)
