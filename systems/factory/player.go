package factory

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/moonveil/coven-mp/components"
	"github.com/moonveil/coven-mp/tags"
)

// CreatePlayer spawns a canonical player avatar at the given position.
func CreatePlayer(e *ecs.ECS, x, y, nativeMax float64) *donburi.Entry {
	entity := e.World.Create(
		components.Health,
		components.Object,
		components.Protection,
		tags.PlayerUnit,
		tags.LocalOnly,
	)
	entry := e.World.Entry(entity)

	components.Health.Set(entry, &components.HealthData{
		Current: nativeMax,
		Max:     nativeMax,
		Display: nativeMax,
	})
	components.Object.Set(entry, &components.ObjectData{
		Object: resolv.NewObject(x, y, 16, 40, tags.ResolvPlayer),
	})

	return entry
}
