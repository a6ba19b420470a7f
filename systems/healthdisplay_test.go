package systems

import (
	"testing"

	"github.com/moonveil/coven-mp/components"
)

func TestHealthDisplayEasesTowardCurrent(t *testing.T) {
	e := newTestECS()
	player := spawnPlayer(e, 100)

	// First pass seeds the display at the current value.
	UpdateHealthDisplay(e)
	h := components.Health.Get(player)
	if h.Display != 100 {
		t.Fatalf("display = %v, want 100", h.Display)
	}

	h.Current = 40
	UpdateHealthDisplay(e)
	if h.Display >= 100 || h.Display < 40 {
		t.Fatalf("display should move toward target, got %v", h.Display)
	}

	// A second of ticks is plenty for a 0.2s ease.
	for i := 0; i < 60; i++ {
		UpdateHealthDisplay(e)
	}
	if h.Display != 40 {
		t.Fatalf("display = %v, want exactly 40 once settled", h.Display)
	}
}
