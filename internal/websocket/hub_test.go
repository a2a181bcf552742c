package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// hubServer upgrades every request and hands the connection to the hub,
// signalling on served when Serve returns.
func hubServer(t *testing.T, hub *Hub, served chan struct{}) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn)
		served <- struct{}{}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastReachesConnectedClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	served := make(chan struct{}, 1)
	conn := dialHub(t, hubServer(t, hub, served))

	// Registration runs concurrently with the dial, so repeat the
	// broadcast until the client sees it.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				hub.Broadcast(EntityStudent, ActionCreated, "s1")
				time.Sleep(20 * time.Millisecond)
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if ev.Entity != EntityStudent || ev.Action != ActionCreated || ev.ID != "s1" {
		t.Errorf("event = %+v", ev)
	}
}

// Serve must come back for connections alive at shutdown and for
// connections arriving after it; either way nothing may hang on a hub
// that stopped listening.
func TestServeReleasesConnectionsAfterShutdown(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	served := make(chan struct{}, 2)
	srv := hubServer(t, hub, served)
	dialHub(t, srv)

	// Give the connection time to register, then stop the hub.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return for a client connected at shutdown")
	}

	// A late arrival is turned away instead of blocking forever.
	dialHub(t, srv)
	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return for a client connecting after shutdown")
	}
}
