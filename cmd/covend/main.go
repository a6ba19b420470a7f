package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/moonveil/coven-mp/config"
	"github.com/moonveil/coven-mp/network"
	"github.com/moonveil/coven-mp/session"
	"github.com/moonveil/coven-mp/storage"
	"github.com/moonveil/coven-mp/systems"
	"github.com/moonveil/coven-mp/systems/factory"
)

func main() {
	port := flag.Uint("port", 7373, "Host port")
	tickRate := flag.Int("tickrate", config.Net.TickRate, "Simulation tick rate (frames per second)")
	name := flag.String("name", "Coven Host", "Session display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	appName := flag.String("appname", "coven", "Data store app name for persisted shared health")
	flag.Parse()

	store, err := storage.Open(*appName)
	if err != nil {
		log.Printf("Warning: persisted shared health unavailable: %v", err)
	}

	host := network.NewHost(*name, *version, *tickRate)

	world := ecs.NewECS(donburi.NewWorld())
	avatar := spawnAvatar(world)

	ctx := &session.PeerContext{}
	joins := make(chan string, 8)
	host.SetPeerHooks(
		func(peerID string) {
			select {
			case joins <- peerID:
			default:
			}
		},
		func(peerID string) {
			log.Printf("[covend] peer %s left", peerID)
		},
	)

	peer := systems.NewHostPeer(ctx, store, host.Broadcast, host.Drain,
		func(donburi.World) *donburi.Entry { return avatar })
	peer.OnPlayerSpawn(avatar)

	go runLoop(world, peer, joins, *tickRate)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down host...")
		os.Exit(0)
	}()

	hp, max := peer.Sync.Health()
	log.Printf("Starting %q on port %d (tick rate: %d/s, shared health %.0f/%.0f)",
		*name, *port, *tickRate, hp, max)
	if err := host.Start(*port); err != nil {
		log.Fatalf("Host error: %v", err)
	}
}

// spawnAvatar creates the host's party avatar entity.
func spawnAvatar(e *ecs.ECS) *donburi.Entry {
	return factory.CreatePlayer(e, 100, 100, 100)
}

// runLoop drives the frame hooks at the configured tick rate, keeping all
// core logic on one goroutine.
func runLoop(e *ecs.ECS, peer *systems.Peer, joins <-chan string, tickRate int) {
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	log.Printf("Frame loop started at %d ticks/second", tickRate)
	for range ticker.C {
		for {
			select {
			case peerID := <-joins:
				peer.OnRemotePlayerSeen(peerID)
				continue
			default:
			}
			break
		}

		peer.OnFrame(e)
		systems.UpdateCombat(e)
		systems.UpdateHealthDisplay(e)
		peer.OnFrameEnd(e)
	}
}
