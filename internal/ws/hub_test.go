package ws

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/storefront/internal/theme"
)

func newTestClient(id string, buffer int) *Client {
	return &Client{
		id:     id,
		send:   make(chan Message, buffer),
		logger: zap.NewNop(),
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := newTestClient("a", 1)
	b := newTestClient("b", 1)

	hub.Register(a)
	hub.Register(b)
	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("ClientCount() = %d, want 2", got)
	}

	hub.Unregister(a)
	hub.Unregister(a) // second call must not panic on a closed channel
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("ClientCount() = %d, want 1", got)
	}

	if _, ok := <-a.send; ok {
		t.Error("send channel of unregistered client is still open")
	}
}

func TestBroadcast_ReachesEveryClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	clients := []*Client{newTestClient("1", 4), newTestClient("2", 4), newTestClient("3", 4)}
	for _, c := range clients {
		hub.Register(c)
	}

	msg := Message{Type: MessageThemeSelected, ThemeID: "theme2", Timestamp: time.Now()}
	hub.Broadcast(msg)

	for _, c := range clients {
		select {
		case got := <-c.send:
			if got.ThemeID != "theme2" {
				t.Errorf("client %s got theme %q, want theme2", c.id, got.ThemeID)
			}
		default:
			t.Errorf("client %s received nothing", c.id)
		}
	}
}

func TestBroadcast_DropsWhenBufferFull(t *testing.T) {
	hub := NewHub(zap.NewNop())
	slow := newTestClient("slow", 1)
	hub.Register(slow)

	hub.Broadcast(Message{ThemeID: "theme1"})
	hub.Broadcast(Message{ThemeID: "theme2"}) // dropped, must not block

	if got := (<-slow.send).ThemeID; got != "theme1" {
		t.Errorf("first message theme = %q, want theme1", got)
	}
	select {
	case m := <-slow.send:
		t.Errorf("unexpected second message %+v", m)
	default:
	}
}

func TestBroadcast_ConcurrentWithRegistration(t *testing.T) {
	hub := NewHub(zap.NewNop())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		c := newTestClient("c", 64)
		go func() {
			defer wg.Done()
			hub.Register(c)
			hub.Unregister(c)
		}()
		go func() {
			defer wg.Done()
			hub.Broadcast(Message{ThemeID: "theme3"})
		}()
	}
	wg.Wait()
	if got := hub.ClientCount(); got != 0 {
		t.Errorf("ClientCount() = %d, want 0", got)
	}
}

func TestThemeMessage(t *testing.T) {
	th, _ := theme.Lookup("theme3")
	m := themeMessage(MessageThemeCurrent, th.ID, th.Name, theme.Variables(th), time.Unix(0, 0))

	if m.Marker != "theme-theme3" {
		t.Errorf("Marker = %q", m.Marker)
	}
	if got := m.Data.Variables["color-accent"]; got != "#10b981" {
		t.Errorf("color-accent = %q, want #10b981", got)
	}
	if len(m.Data.Variables) != 21 {
		t.Errorf("got %d variables, want 21", len(m.Data.Variables))
	}
}
