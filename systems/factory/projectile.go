package factory

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/moonveil/coven-mp/components"
	"github.com/moonveil/coven-mp/tags"
)

// CreateProjectile spawns a live projectile entity.
func CreateProjectile(e *ecs.ECS, x, y, w, h float64, data components.ProjectileData) *donburi.Entry {
	entity := e.World.Create(components.Projectile, components.Object, tags.Projectile)
	entry := e.World.Entry(entity)

	components.Object.Set(entry, &components.ObjectData{
		Object: resolv.NewObject(x, y, w, h, tags.ResolvProjectile),
	})
	components.Projectile.Set(entry, &data)

	return entry
}

// CreateReplica spawns a passive copy of a remote projectile. Replicas
// are excluded from the enemy-sync pass and carry a non-zero FiredBy so
// they can never trigger a replication broadcast of their own.
func CreateReplica(e *ecs.ECS, x, y, w, h float64, data components.ProjectileData) *donburi.Entry {
	entity := e.World.Create(
		components.Projectile,
		components.Object,
		tags.Projectile,
		tags.Replica,
		tags.LocalOnly,
	)
	entry := e.World.Entry(entity)

	components.Object.Set(entry, &components.ObjectData{
		Object: resolv.NewObject(x, y, w, h, tags.ResolvReplica),
	})
	data.FiredBy = entity
	data.Replicated = true
	components.Projectile.Set(entry, &data)

	return entry
}
