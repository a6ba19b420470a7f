package systems

import (
	"testing"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/moonveil/coven-mp/components"
	"github.com/moonveil/coven-mp/session"
	"github.com/moonveil/coven-mp/shared/messages"
	"github.com/moonveil/coven-mp/systems/factory"
	"github.com/moonveil/coven-mp/tags"
)

func spawnProjectile(e *ecs.ECS, x, y float64) *donburi.Entry {
	return factory.CreateProjectile(e, x, y, 4, 4, components.ProjectileData{
		Seed:    1337,
		VelX:    3,
		VelY:    -1,
		Payload: "spark_bolt",
	})
}

func firedBy(shooter *donburi.Entry, proj *donburi.Entry) FiredEvent {
	return FiredEvent{
		Shooter:    shooter.Entity(),
		Projectile: proj,
		Seed:       1337,
		OriginX:    50,
		OriginY:    60,
	}
}

func TestReplicateFiresOncePerProjectile(t *testing.T) {
	e := newTestECS()
	body := spawnCritter(e, 10)
	ctx := &session.PeerContext{LocalPlayer: body, Transformed: true}
	out := &capture{}
	r := NewReplicator(ctx, out.send)

	proj := spawnProjectile(e, 120, 80)
	r.OnProjectileFired(e, firedBy(body, proj))

	if len(out.sent) != 1 {
		t.Fatalf("expected one broadcast, got %d", len(out.sent))
	}
	msg, ok := out.sent[0].msg.(messages.ReplicateProjectile)
	if !ok {
		t.Fatalf("unexpected message %T", out.sent[0].msg)
	}
	if msg.X != 120 || msg.Y != 80 {
		t.Fatalf("snapshot position = (%v, %v), want (120, 80)", msg.X, msg.Y)
	}
	if !components.Projectile.Get(proj).Replicated {
		t.Fatalf("projectile must be tagged as evaluated")
	}

	// Re-entrant fired events never reach the guard again.
	r.OnProjectileFired(e, firedBy(body, proj))
	if len(out.sent) != 1 {
		t.Fatalf("expected no second broadcast, got %d", len(out.sent))
	}
}

func TestReplicateGuardConditions(t *testing.T) {
	cases := []struct {
		name  string
		setup func(e *ecs.ECS, ctx *session.PeerContext, proj *donburi.Entry) FiredEvent
	}{
		{
			name: "not transformed",
			setup: func(e *ecs.ECS, ctx *session.PeerContext, proj *donburi.Entry) FiredEvent {
				ctx.Transformed = false
				return firedBy(ctx.LocalPlayer, proj)
			},
		},
		{
			name: "shooter is not the local player",
			setup: func(e *ecs.ECS, ctx *session.PeerContext, proj *donburi.Entry) FiredEvent {
				other := spawnCritter(e, 10)
				return firedBy(other, proj)
			},
		},
		{
			name: "projectile is already a materialized replica",
			setup: func(e *ecs.ECS, ctx *session.PeerContext, proj *donburi.Entry) FiredEvent {
				components.Projectile.Get(proj).FiredBy = proj.Entity()
				return firedBy(ctx.LocalPlayer, proj)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestECS()
			body := spawnCritter(e, 10)
			ctx := &session.PeerContext{LocalPlayer: body, Transformed: true}
			out := &capture{}
			r := NewReplicator(ctx, out.send)
			proj := spawnProjectile(e, 10, 10)

			r.OnProjectileFired(e, tc.setup(e, ctx, proj))

			if len(out.sent) != 0 {
				t.Fatalf("guard must block the broadcast, got %d messages", len(out.sent))
			}
			if !components.Projectile.Get(proj).Replicated {
				t.Fatalf("projectile must be tagged as evaluated even when blocked")
			}
		})
	}
}

func TestReplicaMaterialization(t *testing.T) {
	// Fire on peer A, materialize on peer B.
	src := newTestECS()
	body := spawnCritter(src, 10)
	ctx := &session.PeerContext{LocalPlayer: body, Transformed: true}
	out := &capture{}
	NewReplicator(ctx, out.send).OnProjectileFired(src, firedBy(body, spawnProjectile(src, 200, 40)))
	if len(out.sent) != 1 {
		t.Fatalf("expected one broadcast, got %d", len(out.sent))
	}
	wire := out.sent[0].msg.(messages.ReplicateProjectile)

	dst := newTestECS()
	dstCtx := &session.PeerContext{}
	NewReplicator(dstCtx, (&capture{}).send).OnReplicate(dst, wire)

	var replica *donburi.Entry
	for entry := range components.Projectile.Iter(dst.World) {
		replica = entry
	}
	if replica == nil {
		t.Fatalf("expected a materialized replica")
	}
	if !replica.HasComponent(tags.Replica) || !replica.HasComponent(tags.LocalOnly) {
		t.Fatalf("replica must be tagged passive and excluded from enemy sync")
	}

	proj := components.Projectile.Get(replica)
	var zero donburi.Entity
	if proj.FiredBy == zero {
		t.Fatalf("replica must carry a non-zero FiredBy marker")
	}
	if proj.Seed != 1337 || proj.Payload != "spark_bolt" {
		t.Fatalf("snapshot payload lost: %+v", proj)
	}

	obj := components.Object.Get(replica)
	if obj.X != 200 || obj.Y != 40 {
		t.Fatalf("replica position = (%v, %v), want (200, 40)", obj.X, obj.Y)
	}

	// A replica never triggers a nested broadcast, even on a transformed
	// peer that somehow counts as its shooter.
	dstCtx.LocalPlayer = replica
	dstCtx.Transformed = true
	out2 := &capture{}
	r2 := NewReplicator(dstCtx, out2.send)
	components.Projectile.Get(replica).Replicated = false
	r2.OnProjectileFired(dst, firedBy(replica, replica))
	if len(out2.sent) != 0 {
		t.Fatalf("materialized replica must never re-broadcast")
	}
}
