package systems

import (
	"log"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/moonveil/coven-mp/components"
	"github.com/moonveil/coven-mp/session"
	"github.com/moonveil/coven-mp/tags"
)

// ActivePlayerFunc reports the engine's current notion of the controlled
// player object.
type ActivePlayerFunc func(w donburi.World) *donburi.Entry

// CapabilityFunc reports whether an entry is recognized as a canonical
// player avatar.
type CapabilityFunc func(entry *donburi.Entry) bool

// IsPlayerUnit is the default capability check: the entry carries the
// PlayerUnit tag.
func IsPlayerUnit(entry *donburi.Entry) bool {
	return entry != nil && entry.Valid() && entry.HasComponent(tags.PlayerUnit)
}

// Tracker follows the local player's underlying entity across polymorph
// swaps. It is the sole writer of PeerContext.LocalPlayer and
// PeerContext.Transformed.
type Tracker struct {
	ctx          *session.PeerContext
	activePlayer ActivePlayerFunc
	isPlayerUnit CapabilityFunc
}

func NewTracker(ctx *session.PeerContext, active ActivePlayerFunc) *Tracker {
	return &Tracker{
		ctx:          ctx,
		activePlayer: active,
		isPlayerUnit: IsPlayerUnit,
	}
}

// WithCapabilityCheck overrides the player-avatar predicate.
func (t *Tracker) WithCapabilityCheck(fn CapabilityFunc) *Tracker {
	t.isPlayerUnit = fn
	return t
}

// OnFrameEnd re-checks which entity the engine considers the player. On a
// swap it migrates the per-entity bookkeeping onto the new entry, then
// recomputes the transformed flag.
func (t *Tracker) OnFrameEnd(e *ecs.ECS) {
	cur := t.activePlayer(e.World)
	if cur == nil {
		// Engine is between bodies; keep the last known reference.
		return
	}

	prev := t.ctx.LocalPlayer
	if prev == nil || prev.Entity() != cur.Entity() {
		migrate(prev, cur)
		t.ctx.LocalPlayer = cur
		log.Printf("[identity] player entity changed to %v", cur.Entity())
	}

	t.ctx.Transformed = !t.isPlayerUnit(cur)
}

// migrate moves per-entity bookkeeping from the old player entry to the
// new one and keeps the new entry out of the enemy-sync pass.
func migrate(old, cur *donburi.Entry) {
	if !cur.HasComponent(tags.LocalOnly) {
		cur.AddComponent(tags.LocalOnly)
	}

	if old == nil || !old.Valid() {
		return
	}

	if old.HasComponent(components.DamageHook) {
		hook := components.DamageHook.Get(old)
		if cur.HasComponent(components.DamageHook) {
			components.DamageHook.Get(cur).Fn = hook.Fn
		} else {
			donburi.Add(cur, components.DamageHook, &components.DamageHookData{Fn: hook.Fn})
		}
	}

	if old.HasComponent(components.Protection) {
		prot := components.Protection.Get(old)
		if cur.HasComponent(components.Protection) {
			components.Protection.Get(cur).Active = prot.Active
		} else {
			donburi.Add(cur, components.Protection, &components.ProtectionData{Active: prot.Active})
		}
	}
}
