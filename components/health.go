package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// HealthData is an entity's native health in simulation units. For party
// members the authoritative value is derived from the shared pool by
// scaling hp/max onto Max; Current is never written in shared units.
type HealthData struct {
	Current float64
	Max     float64
	Display float64 // eased HUD value, cosmetic only
}

// HealthDisplayData drives the HUD easing of HealthData.Display.
type HealthDisplayData struct {
	Tween  *gween.Tween
	Target float64
}

var Health = donburi.NewComponentType[HealthData]()
var HealthDisplay = donburi.NewComponentType[HealthDisplayData]()
