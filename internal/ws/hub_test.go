package ws

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func newTestClient(tenant string) *Client {
	return &Client{
		conn:   nil, // Not needed for hub tests
		tenant: tenant,
		send:   make(chan Message, 256),
		logger: testLogger(),
	}
}

func appliedMessage(tenant, checksum string) Message {
	return Message{
		Type:      MessageThemeApplied,
		Tenant:    tenant,
		Timestamp: time.Now(),
		Data:      ThemeAppliedData{PresetID: "modern", Checksum: checksum, Block: ":root {\n}\n"},
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub(testLogger())

	if hub.clients == nil {
		t.Error("hub.clients map is nil")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(testLogger())
	client := newTestClient("acme")

	hub.Register(client)
	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}
	if hub.TenantClientCount("acme") != 1 {
		t.Errorf("TenantClientCount(acme) = %d, want 1", hub.TenantClientCount("acme"))
	}

	hub.Unregister(client)
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}
	if _, ok := <-client.send; ok {
		t.Error("client.send channel is not closed")
	}
}

func TestUnregisterNotRegistered(t *testing.T) {
	hub := NewHub(testLogger())
	client := newTestClient("acme")

	hub.Unregister(client)

	select {
	case _, ok := <-client.send:
		if !ok {
			t.Error("channel closed for unregistered client")
		}
	default:
	}
}

func TestBroadcastTenant(t *testing.T) {
	hub := NewHub(testLogger())
	acme1 := newTestClient("acme")
	acme2 := newTestClient("acme")
	globex := newTestClient("globex")
	for _, c := range []*Client{acme1, acme2, globex} {
		hub.Register(c)
	}

	hub.BroadcastTenant("acme", appliedMessage("acme", "abc"))

	for i, c := range []*Client{acme1, acme2} {
		select {
		case got := <-c.send:
			data, ok := got.Data.(ThemeAppliedData)
			if !ok || data.Checksum != "abc" {
				t.Errorf("acme client %d got %+v", i+1, got)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("acme client %d did not receive message", i+1)
		}
	}
	if len(globex.send) != 0 {
		t.Errorf("globex client received %d messages, want 0", len(globex.send))
	}
}

func TestBroadcastReachesEveryTenant(t *testing.T) {
	hub := NewHub(testLogger())
	clients := []*Client{newTestClient("acme"), newTestClient("globex")}
	for _, c := range clients {
		hub.Register(c)
	}

	hub.Broadcast(Message{Type: MessagePresetRegistered, Timestamp: time.Now(), Data: PresetRegisteredData{ID: "acme-brand"}})

	for _, c := range clients {
		if len(c.send) != 1 {
			t.Errorf("client %s has %d messages, want 1", c.tenant, len(c.send))
		}
	}
}

func TestBroadcastDropsMessagesWhenBufferFull(t *testing.T) {
	hub := NewHub(testLogger())
	client := newTestClient("acme")
	hub.Register(client)

	for i := 0; i < cap(client.send); i++ {
		client.send <- appliedMessage("acme", "fill")
	}

	hub.BroadcastTenant("acme", appliedMessage("acme", "dropped"))

	if len(client.send) != cap(client.send) {
		t.Errorf("client.send length = %d, want %d", len(client.send), cap(client.send))
	}
	for len(client.send) > 0 {
		got := <-client.send
		if got.Data.(ThemeAppliedData).Checksum == "dropped" {
			t.Fatal("dropped message was unexpectedly received")
		}
	}
}

func TestConcurrentRegisterUnregisterBroadcast(t *testing.T) {
	hub := NewHub(testLogger())
	tenants := []string{"acme", "globex", "initech"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			client := newTestClient(tenants[id%len(tenants)])
			hub.Register(client)
			go func() {
				for range client.send {
				}
			}()
			time.Sleep(10 * time.Millisecond)
			hub.Unregister(client)
		}(i)
	}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			tenant := tenants[id%len(tenants)]
			hub.BroadcastTenant(tenant, appliedMessage(tenant, "x"))
		}(i)
	}
	wg.Wait()

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}
}
