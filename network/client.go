package network

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/coder/websocket"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"

	"github.com/moonveil/coven-mp/shared/messages"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedSession
	StateError
)

// HostPeerID is the sender identity attached to everything a client
// receives; the only link a client has is the one to the host.
const HostPeerID = "host"

// Client manages the WebSocket connection to the session host.
// All shared fields are protected by mu (router callbacks run on necs
// goroutines); inbound messages are queued and drained on the game frame.
type Client struct {
	mu sync.RWMutex

	state      ClientState
	lastError  error
	peerID     string
	serverName string
	tickRate   int
	conn       *websocket.Conn

	inbox chan Inbound
}

func NewClient() *Client {
	return &Client{
		state: StateDisconnected,
		inbox: make(chan Inbound, 64),
	}
}

// Connect dials the host in a background goroutine and initiates the
// join handshake.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to host")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		if err := c.write(messages.JoinRequest{
			Version:    version,
			PlayerName: playerName,
		}); err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: peerID=%s server=%s tickRate=%d",
			msg.PeerID, msg.ServerName, msg.TickRate)
		c.mu.Lock()
		c.peerID = msg.PeerID
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.state = StateJoinedSession
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, msg messages.UpdateSharedHealth) {
		c.push(msg)
	})

	router.On(func(_ *router.NetworkClient, msg messages.DealDamage) {
		// Not for clients, but queued anyway; the sync layer enforces
		// host authority by ignoring it.
		c.push(msg)
	})

	router.On(func(_ *router.NetworkClient, msg messages.ReplicateProjectile) {
		c.push(msg)
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) PeerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.peerID
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// Send transmits a message to the host. In the star topology the host
// relays peer-to-all messages, so broadcast and send-to-host are the
// same wire operation for a client.
func (c *Client) Send(_ Mode, msg any) error {
	return c.write(msg)
}

// Drain returns all queued inbound messages, non-blocking. Called once
// per frame on the game thread.
func (c *Client) Drain() []Inbound {
	return drainChan(c.inbox)
}

func (c *Client) write(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) push(msg any) {
	select {
	case c.inbox <- Inbound{From: HostPeerID, Msg: msg}:
	default:
		// Inbox full; drop rather than stall the router goroutine.
	}
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
