package systems

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/moonveil/coven-mp/components"
	"github.com/moonveil/coven-mp/config"
)

const displayTickDelta = float32(1.0 / 60.0)

// UpdateHealthDisplay eases HealthData.Display toward the authoritative
// Current value for HUD rendering. State writes elsewhere stay immediate;
// only the displayed number is smoothed.
func UpdateHealthDisplay(e *ecs.ECS) {
	for entry := range components.Health.Iter(e.World) {
		h := components.Health.Get(entry)

		if !entry.HasComponent(components.HealthDisplay) {
			donburi.Add(entry, components.HealthDisplay, &components.HealthDisplayData{Target: h.Current})
			h.Display = h.Current
			continue
		}

		d := components.HealthDisplay.Get(entry)
		if d.Target != h.Current {
			d.Target = h.Current
			d.Tween = gween.New(float32(h.Display), float32(h.Current), config.Health.EaseSeconds, ease.OutQuad)
		}
		if d.Tween != nil {
			v, done := d.Tween.Update(displayTickDelta)
			h.Display = float64(v)
			if done {
				h.Display = h.Current
				d.Tween = nil
			}
		}
	}
}
