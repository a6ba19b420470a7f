package components

import "github.com/yohamta/donburi"

// DamageEventData is queued on an entity when it takes a hit. For party
// members Amount is in shared-pool units, not raw simulation damage.
type DamageEventData struct {
	Amount float64
	Cause  string
}

// DamageHookData routes an entity's incoming damage into a handler
// installed at spawn time instead of the default health mutation. The
// shared-health synchronizer installs its role-specific handler here.
type DamageHookData struct {
	Fn func(amount float64, cause string)
}

var DamageEvent = donburi.NewComponentType[DamageEventData]()
var DamageHook = donburi.NewComponentType[DamageHookData]()
