package systems

import (
	"log"

	"github.com/hashicorp/go-msgpack/v2/codec"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/moonveil/coven-mp/components"
	"github.com/moonveil/coven-mp/network"
	"github.com/moonveil/coven-mp/session"
	"github.com/moonveil/coven-mp/shared/messages"
	"github.com/moonveil/coven-mp/systems/factory"
)

// FiredEvent is the engine's projectile-fired notification.
type FiredEvent struct {
	Shooter    donburi.Entity
	Projectile *donburi.Entry
	Seed       int64
	OriginX    float64
	OriginY    float64
	TargetX    float64
	TargetY    float64
}

// projectileSnapshot is the wire payload inside ReplicateProjectile.Blob.
type projectileSnapshot struct {
	Seed    int64
	VelX    float64
	VelY    float64
	W       float64
	H       float64
	Payload string
}

var msgpackHandle codec.MsgpackHandle

// Replicator broadcasts one-shot snapshots of projectiles fired by the
// local player while transformed, and materializes passive replicas from
// remote snapshots.
type Replicator struct {
	ctx  *session.PeerContext
	send SendFunc
}

func NewReplicator(ctx *session.PeerContext, send SendFunc) *Replicator {
	return &Replicator{ctx: ctx, send: send}
}

// OnProjectileFired evaluates the replication guard exactly once per
// projectile. Whatever the guard decides, the projectile is tagged as
// evaluated so re-entrant fired events never reach the guard again.
func (r *Replicator) OnProjectileFired(e *ecs.ECS, evt FiredEvent) {
	entry := evt.Projectile
	if entry == nil || !entry.Valid() || !entry.HasComponent(components.Projectile) {
		return
	}
	proj := components.Projectile.Get(entry)
	if proj.Replicated {
		return
	}
	proj.Replicated = true

	if !r.ctx.Transformed {
		return
	}
	if r.ctx.LocalPlayer == nil || evt.Shooter != r.ctx.LocalPlayer.Entity() {
		return
	}
	var zero donburi.Entity
	if proj.FiredBy != zero {
		// Already a materialized replica, never re-broadcast.
		return
	}

	x, y := evt.OriginX, evt.OriginY
	var w, h float64
	if entry.HasComponent(components.Object) {
		obj := components.Object.Get(entry)
		if obj.Object != nil {
			x, y = obj.X, obj.Y
			w, h = obj.W, obj.H
		}
	}

	blob, err := encodeSnapshot(projectileSnapshot{
		Seed:    proj.Seed,
		VelX:    proj.VelX,
		VelY:    proj.VelY,
		W:       w,
		H:       h,
		Payload: proj.Payload,
	})
	if err != nil {
		log.Printf("[projectile] snapshot failed: %v", err)
		return
	}

	if err := r.send(network.BestEffort, messages.ReplicateProjectile{X: x, Y: y, Blob: blob}); err != nil {
		log.Printf("[projectile] replicate send failed: %v", err)
	}
}

// OnReplicate materializes a passive local copy from a remote snapshot.
// The replica is excluded from the enemy-sync pass and carries a non-zero
// FiredBy so it can never trigger a nested broadcast.
func (r *Replicator) OnReplicate(e *ecs.ECS, msg messages.ReplicateProjectile) {
	snap, err := decodeSnapshot(msg.Blob)
	if err != nil {
		log.Printf("[projectile] bad snapshot from peer: %v", err)
		return
	}

	factory.CreateReplica(e, msg.X, msg.Y, snap.W, snap.H, components.ProjectileData{
		Seed:    snap.Seed,
		VelX:    snap.VelX,
		VelY:    snap.VelY,
		Payload: snap.Payload,
	})
}

func encodeSnapshot(snap projectileSnapshot) ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, &msgpackHandle).Encode(snap); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeSnapshot(blob []byte) (projectileSnapshot, error) {
	var snap projectileSnapshot
	err := codec.NewDecoderBytes(blob, &msgpackHandle).Decode(&snap)
	return snap, err
}
