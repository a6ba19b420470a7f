package session

import "github.com/yohamta/donburi"

type Role int

const (
	RoleHost Role = iota
	RoleClient
)

func (r Role) String() string {
	if r == RoleHost {
		return "host"
	}
	return "client"
}

// PeerContext is the per-process peer record. The identity tracker is the
// sole writer of LocalPlayer and Transformed; everything else only reads.
type PeerContext struct {
	Role        Role
	LocalPlayer *donburi.Entry
	Transformed bool
}

func (c *PeerContext) IsHost() bool {
	return c.Role == RoleHost
}

// LocalEntity returns the local player's entity, or the zero entity when
// no player has spawned yet.
func (c *PeerContext) LocalEntity() donburi.Entity {
	var zero donburi.Entity
	if c.LocalPlayer == nil {
		return zero
	}
	return c.LocalPlayer.Entity()
}
