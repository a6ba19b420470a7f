package systems

import (
	"log"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/moonveil/coven-mp/components"
	"github.com/moonveil/coven-mp/config"
	"github.com/moonveil/coven-mp/network"
	"github.com/moonveil/coven-mp/session"
	"github.com/moonveil/coven-mp/shared/messages"
	"github.com/moonveil/coven-mp/storage"
)

// SendFunc transmits one message with the requested delivery mode.
type SendFunc func(mode network.Mode, msg any) error

// DamageFunc is the handle returned when the role-specific damage
// handler is installed on the local player at spawn.
type DamageFunc func(amount float64, cause string)

// Sync is the role-specific half of the shared-health protocol. Exactly
// one variant is selected at startup: HostSync owns the authoritative
// pool, ClientSync forwards damage and caches broadcasts.
type Sync interface {
	OnFrame(e *ecs.ECS)
	OnDamage(amount float64, cause string)
	OnMessage(from string, msg any)
	OnRemotePlayerSeen(peerID string)
	Health() (hp, max float64)
}

// InstallDamageHook wires the sync variant's damage handler onto the
// player entry and returns it for direct invocation in tests.
func InstallDamageHook(entry *donburi.Entry, s Sync) DamageFunc {
	fn := DamageFunc(s.OnDamage)
	if entry != nil {
		if entry.HasComponent(components.DamageHook) {
			components.DamageHook.Get(entry).Fn = fn
		} else {
			donburi.Add(entry, components.DamageHook, &components.DamageHookData{Fn: fn})
		}
	}
	return fn
}

// ApplyShared scales the pool ratio onto the entry's native max health.
// The pool uses a small abstract scale, so hp is never written as native
// units directly.
func ApplyShared(entry *donburi.Entry, hp, max float64) {
	if entry == nil || max <= 0 || !entry.HasComponent(components.Health) {
		return
	}
	h := components.Health.Get(entry)
	h.Current = hp / max * h.Max
}

// inflictShared drives the entry's native health to the pool ratio
// through the ordinary damage path, so a real hit is what lands on the
// avatar. Callers suspend protection first when the hit must not be
// blocked.
func inflictShared(entry *donburi.Entry, hp, max float64) {
	if entry == nil || max <= 0 || !entry.HasComponent(components.Health) {
		return
	}
	h := components.Health.Get(entry)
	target := hp / max * h.Max
	DamageEntry(entry, h.Current-target)
}

// suspendProtection disables the blanket protection effect on the entry
// and returns a restore func. The pool must take its hit even when the
// avatar carries a damage-blocking effect.
func suspendProtection(entry *donburi.Entry) func() {
	if entry == nil || !entry.HasComponent(components.Protection) {
		return func() {}
	}
	prot := components.Protection.Get(entry)
	was := prot.Active
	prot.Active = false
	return func() { prot.Active = was }
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// HostSync holds the authoritative pool. It applies local and forwarded
// damage immediately and re-asserts the value to all peers on a fixed
// cadence.
type HostSync struct {
	ctx   *session.PeerContext
	store *storage.Store
	send  SendFunc

	hp    float64
	max   float64
	frame int
	seen  map[string]bool
}

func NewHostSync(ctx *session.PeerContext, store *storage.Store, send SendFunc) *HostSync {
	hp, max := store.SharedHealth()
	return &HostSync{
		ctx:   ctx,
		store: store,
		send:  send,
		hp:    clamp(hp, 0, max),
		max:   max,
		seen:  make(map[string]bool),
	}
}

func (h *HostSync) Health() (hp, max float64) {
	return h.hp, h.max
}

// OnDamage applies a local hit straight to the pool; no network hop for
// host-originated damage.
func (h *HostSync) OnDamage(amount float64, cause string) {
	h.applyDamage(amount, cause)
}

func (h *HostSync) OnMessage(from string, msg any) {
	switch m := msg.(type) {
	case messages.DealDamage:
		h.applyDamage(m.Amount, m.Cause)
	case messages.UpdateSharedHealth:
		// Hosts never accept pool state from the wire.
	}
}

// OnFrame runs the reconciliation cadence: every BroadcastInterval frames
// at the configured phase, reapply the pool onto the local avatar (unless
// transformed) and broadcast the authoritative value.
func (h *HostSync) OnFrame(e *ecs.ECS) {
	h.frame++
	if h.frame%config.Net.BroadcastInterval != config.Net.BroadcastPhase {
		return
	}
	if !h.ctx.Transformed {
		ApplyShared(h.ctx.LocalPlayer, h.hp, h.max)
	}
	if err := h.send(network.Reliable, messages.UpdateSharedHealth{HP: h.hp, Max: h.max}); err != nil {
		log.Printf("[sharedhealth] broadcast failed: %v", err)
	}
}

// OnRemotePlayerSeen grows the pool by the join bonus the first time each
// remote peer is observed, then lets the next broadcast carry the change.
func (h *HostSync) OnRemotePlayerSeen(peerID string) {
	if h.seen[peerID] {
		return
	}
	h.seen[peerID] = true
	h.max += config.Health.JoinBonus
	h.hp += config.Health.JoinBonus
	h.persist()
	log.Printf("[sharedhealth] %s joined the party, pool now %.0f/%.0f", peerID, h.hp, h.max)
}

func (h *HostSync) applyDamage(amount float64, cause string) {
	restore := suspendProtection(h.ctx.LocalPlayer)
	h.hp = clamp(h.hp-amount, 0, h.max)
	if !h.ctx.Transformed {
		inflictShared(h.ctx.LocalPlayer, h.hp, h.max)
	}
	restore()

	h.persist()
	// DisplayScale is cosmetic; the pool itself stays on the small scale.
	log.Printf("[sharedhealth] %s dealt %.0f damage, pool %.0f/%.0f",
		cause, amount*config.Health.DisplayScale, h.hp, h.max)
}

func (h *HostSync) persist() {
	h.store.SetSharedHealth(h.hp, h.max)
}

// PendingDamage accumulates a client's local hits between flushes.
type PendingDamage struct {
	Amount float64
	Cause  string
}

// ClientSync forwards local damage to the host in batches and applies
// reconciliation broadcasts to its cached copy of the pool.
type ClientSync struct {
	ctx  *session.PeerContext
	send SendFunc

	pending PendingDamage
	hp      float64
	max     float64
	frame   int
}

func NewClientSync(ctx *session.PeerContext, send SendFunc) *ClientSync {
	def := config.Health.DefaultShared
	return &ClientSync{
		ctx:     ctx,
		send:    send,
		pending: PendingDamage{Cause: "unknown"},
		hp:      def,
		max:     def,
	}
}

func (c *ClientSync) Health() (hp, max float64) {
	return c.hp, c.max
}

// Pending returns the unflushed accumulator.
func (c *ClientSync) Pending() PendingDamage {
	return c.pending
}

// OnDamage accumulates the hit for the next flush; the local visual
// health only moves via reconciliation broadcasts. Last cause wins.
func (c *ClientSync) OnDamage(amount float64, cause string) {
	c.pending.Amount += amount
	c.pending.Cause = cause
}

// OnFrame flushes the accumulator every FlushInterval frames at the
// configured phase, batching rapid repeated hits into one message.
func (c *ClientSync) OnFrame(e *ecs.ECS) {
	c.frame++
	if c.frame%config.Net.FlushInterval != config.Net.FlushPhase {
		return
	}
	if c.pending.Amount == 0 {
		return
	}
	msg := messages.DealDamage{Amount: c.pending.Amount, Cause: c.pending.Cause}
	if err := c.send(network.Reliable, msg); err != nil {
		log.Printf("[sharedhealth] damage flush failed: %v", err)
	}
	c.pending = PendingDamage{Cause: "unknown"}
}

func (c *ClientSync) OnMessage(from string, msg any) {
	switch m := msg.(type) {
	case messages.UpdateSharedHealth:
		c.hp, c.max = m.HP, m.Max
		if !c.ctx.Transformed {
			ApplyShared(c.ctx.LocalPlayer, m.HP, m.Max)
		}
	case messages.DealDamage:
		// Only the host applies damage.
	}
}

// OnRemotePlayerSeen is host-only; the join bonus reaches clients through
// the next broadcast.
func (c *ClientSync) OnRemotePlayerSeen(peerID string) {}
