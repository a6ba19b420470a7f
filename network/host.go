package network

import (
	"fmt"
	"log"
	"sync"

	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"

	"github.com/moonveil/coven-mp/shared/messages"
)

// Host accepts client connections and fans host-originated messages out
// to every joined peer. Client-originated peer-to-all messages (the
// projectile replicas) are relayed to the other clients and queued
// locally so the host peer materializes them too.
type Host struct {
	mu sync.RWMutex

	serverName string
	version    string
	tickRate   int

	transport *transports.WsServerTransport
	clients   map[string]*router.NetworkClient

	inbox chan Inbound

	// onPeerJoined fires on the accepting goroutine for each peer that
	// completes the join handshake; used for the join bonus.
	onPeerJoined func(peerID string)
	onPeerLeft   func(peerID string)
}

func NewHost(serverName, version string, tickRate int) *Host {
	return &Host{
		serverName: serverName,
		version:    version,
		tickRate:   tickRate,
		clients:    make(map[string]*router.NetworkClient),
		inbox:      make(chan Inbound, 64),
	}
}

// SetPeerHooks installs the joined/left callbacks. Must be called before
// Start.
func (h *Host) SetPeerHooks(joined, left func(peerID string)) {
	h.onPeerJoined = joined
	h.onPeerLeft = left
}

// Start registers router callbacks and begins listening. Blocks until the
// transport shuts down.
func (h *Host) Start(port uint) error {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[host] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		h.mu.Lock()
		_, joined := h.clients[client.Id()]
		delete(h.clients, client.Id())
		h.mu.Unlock()

		log.Printf("[host] client %s disconnected: %v", client.Id(), err)
		if joined && h.onPeerLeft != nil {
			h.onPeerLeft(client.Id())
		}
	})

	router.On(func(client *router.NetworkClient, msg messages.JoinRequest) {
		h.onJoinRequest(client, msg)
	})

	router.On(func(client *router.NetworkClient, msg messages.DealDamage) {
		h.push(client.Id(), msg)
	})

	router.On(func(client *router.NetworkClient, msg messages.ReplicateProjectile) {
		// Relay to every other client, then queue for the local peer.
		h.relay(client.Id(), msg)
		h.push(client.Id(), msg)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[host] client error: %v", err)
	})

	h.transport = transports.NewWsServerTransport(port, "", nil)
	return h.transport.Start()
}

func (h *Host) onJoinRequest(client *router.NetworkClient, msg messages.JoinRequest) {
	if h.version != "" && msg.Version != h.version {
		reason := fmt.Sprintf("version mismatch: host=%s client=%s", h.version, msg.Version)
		log.Printf("[host] rejecting %s: %s", client.Id(), reason)
		_ = h.sendTo(client, messages.JoinRejected{Reason: reason})
		return
	}

	h.mu.Lock()
	h.clients[client.Id()] = client
	h.mu.Unlock()

	log.Printf("[host] %s joined as %s", msg.PlayerName, client.Id())
	_ = h.sendTo(client, messages.JoinAccepted{
		PeerID:     client.Id(),
		ServerName: h.serverName,
		TickRate:   h.tickRate,
	})

	if h.onPeerJoined != nil {
		h.onPeerJoined(client.Id())
	}
}

// Broadcast sends a message to every joined client.
func (h *Host) Broadcast(_ Mode, msg any) error {
	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, client := range h.clients {
		if err := client.SendMessage(payload); err != nil {
			log.Printf("[host] send to %s failed: %v", id, err)
		}
	}
	return nil
}

// Drain returns all queued inbound messages, non-blocking. Called once
// per frame on the game thread.
func (h *Host) Drain() []Inbound {
	return drainChan(h.inbox)
}

// PlayerCount returns the number of joined clients.
func (h *Host) PlayerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Host) relay(fromID string, msg any) {
	payload, err := router.Serialize(msg)
	if err != nil {
		log.Printf("[host] relay serialize failed: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, client := range h.clients {
		if id == fromID {
			continue
		}
		if err := client.SendMessage(payload); err != nil {
			log.Printf("[host] relay to %s failed: %v", id, err)
		}
	}
}

func (h *Host) sendTo(client *router.NetworkClient, msg any) error {
	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	return client.SendMessage(payload)
}

func (h *Host) push(from string, msg any) {
	select {
	case h.inbox <- Inbound{From: from, Msg: msg}:
	default:
	}
}
