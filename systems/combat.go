package systems

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/moonveil/coven-mp/components"
)

// DamageEntry applies damage to an entry's native health, honoring the
// blanket protection effect. Reports whether the hit landed.
func DamageEntry(entry *donburi.Entry, amount float64) bool {
	if entry == nil || !entry.HasComponent(components.Health) {
		return false
	}
	if entry.HasComponent(components.Protection) && components.Protection.Get(entry).Active {
		return false
	}
	h := components.Health.Get(entry)
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
	return true
}

// UpdateCombat processes queued damage events. Entities with an installed
// damage hook (the local player) route the hit into the shared-health
// synchronizer instead of mutating native health directly.
func UpdateCombat(e *ecs.ECS) {
	for entry := range components.DamageEvent.Iter(e.World) {
		evt := components.DamageEvent.Get(entry)

		if entry.HasComponent(components.DamageHook) {
			hook := components.DamageHook.Get(entry)
			if hook.Fn != nil {
				hook.Fn(evt.Amount, evt.Cause)
			}
		} else {
			DamageEntry(entry, evt.Amount)
		}

		// Remove the damage event component so it is processed only once.
		donburi.Remove[components.DamageEventData](entry, components.DamageEvent)
	}

	// Clamp health ranges (0..Max)
	for entry := range components.Health.Iter(e.World) {
		h := components.Health.Get(entry)
		if h.Current < 0 {
			h.Current = 0
		}
		if h.Current > h.Max {
			h.Current = h.Max
		}
	}
}
