package systems

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/moonveil/coven-mp/components"
	"github.com/moonveil/coven-mp/network"
	"github.com/moonveil/coven-mp/systems/factory"
	"github.com/moonveil/coven-mp/tags"
)

func newTestECS() *ecs.ECS {
	return ecs.NewECS(donburi.NewWorld())
}

// spawnPlayer creates a canonical player avatar with the given native max
// health.
func spawnPlayer(e *ecs.ECS, nativeMax float64) *donburi.Entry {
	return factory.CreatePlayer(e, 100, 100, nativeMax)
}

// spawnCritter creates a non-player body for polymorph scenarios.
func spawnCritter(e *ecs.ECS, nativeMax float64) *donburi.Entry {
	entity := e.World.Create(components.Health, components.Object)
	entry := e.World.Entry(entity)
	components.Health.Set(entry, &components.HealthData{Current: nativeMax, Max: nativeMax, Display: nativeMax})
	components.Object.Set(entry, &components.ObjectData{
		Object: resolv.NewObject(100, 100, 8, 8, tags.ResolvPlayer),
	})
	return entry
}

type sentMsg struct {
	mode network.Mode
	msg  any
}

// capture records outbound messages in place of a real channel.
type capture struct {
	sent []sentMsg
}

func (c *capture) send(mode network.Mode, msg any) error {
	c.sent = append(c.sent, sentMsg{mode: mode, msg: msg})
	return nil
}

func (c *capture) ofType(match func(any) bool) []sentMsg {
	var out []sentMsg
	for _, s := range c.sent {
		if match(s.msg) {
			out = append(out, s)
		}
	}
	return out
}
