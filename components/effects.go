package components

import "github.com/yohamta/donburi"

// ProtectionData is the blanket protection status effect. While Active,
// ordinary simulation damage to the entity is blocked. Shared-health
// reconciliation suspends it so the party pool always takes its hit.
type ProtectionData struct {
	Active bool
}

var Protection = donburi.NewComponentType[ProtectionData]()
