package systems

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/moonveil/coven-mp/network"
	"github.com/moonveil/coven-mp/session"
	"github.com/moonveil/coven-mp/shared/messages"
	"github.com/moonveil/coven-mp/storage"
)

// DrainFunc returns the inbound messages queued since the last frame.
type DrainFunc func() []network.Inbound

// Peer bundles the frame-driven core for one process: the role-specific
// shared-health sync, the identity tracker and the projectile replicator.
// The engine invokes its On* hooks; everything runs on the game thread.
type Peer struct {
	Ctx        *session.PeerContext
	Sync       Sync
	Tracker    *Tracker
	Replicator *Replicator

	drain DrainFunc
}

// NewHostPeer assembles the authoritative peer.
func NewHostPeer(ctx *session.PeerContext, store *storage.Store, send SendFunc, drain DrainFunc, active ActivePlayerFunc) *Peer {
	ctx.Role = session.RoleHost
	return &Peer{
		Ctx:        ctx,
		Sync:       NewHostSync(ctx, store, send),
		Tracker:    NewTracker(ctx, active),
		Replicator: NewReplicator(ctx, send),
		drain:      drain,
	}
}

// NewClientPeer assembles a non-authoritative peer.
func NewClientPeer(ctx *session.PeerContext, send SendFunc, drain DrainFunc, active ActivePlayerFunc) *Peer {
	ctx.Role = session.RoleClient
	return &Peer{
		Ctx:        ctx,
		Sync:       NewClientSync(ctx, send),
		Tracker:    NewTracker(ctx, active),
		Replicator: NewReplicator(ctx, send),
		drain:      drain,
	}
}

// OnPlayerSpawn installs the role-appropriate damage handler on the local
// player and returns the handle.
func (p *Peer) OnPlayerSpawn(entry *donburi.Entry) DamageFunc {
	p.Ctx.LocalPlayer = entry
	return InstallDamageHook(entry, p.Sync)
}

// OnFrame dispatches queued network messages, then runs the periodic
// sync cadence.
func (p *Peer) OnFrame(e *ecs.ECS) {
	if p.drain != nil {
		for _, in := range p.drain() {
			switch m := in.Msg.(type) {
			case messages.ReplicateProjectile:
				p.Replicator.OnReplicate(e, m)
			default:
				p.Sync.OnMessage(in.From, in.Msg)
			}
		}
	}
	p.Sync.OnFrame(e)
}

// OnFrameEnd runs the entity-identity re-check.
func (p *Peer) OnFrameEnd(e *ecs.ECS) {
	p.Tracker.OnFrameEnd(e)
}

// OnRemotePlayerSeen applies the join bonus on the host; no-op elsewhere.
func (p *Peer) OnRemotePlayerSeen(peerID string) {
	p.Sync.OnRemotePlayerSeen(peerID)
}

// OnProjectileFired runs the one-shot replication guard.
func (p *Peer) OnProjectileFired(e *ecs.ECS, evt FiredEvent) {
	p.Replicator.OnProjectileFired(e, evt)
}
