package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHub_PublishReachesOnlyTargetNGO(t *testing.T) {
	hub := NewHub()
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(r.URL.Query().Get("ngo"), conn)
		hub.Register(client)
		client.ReadLoop()
		hub.Unregister(client)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	target, _, err := websocket.DefaultDialer.Dial(wsURL+"?ngo=ngo-1", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer target.Close()

	other, _, err := websocket.DefaultDialer.Dial(wsURL+"?ngo=ngo-2", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer other.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers("ngo-1") == 0 || hub.Subscribers("ngo-2") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("clients did not register in time")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Publish("ngo-1", map[string]string{"type": "MATCH_SUGGESTED"})

	_ = target.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := target.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["type"] != "MATCH_SUGGESTED" {
		t.Errorf("expected MATCH_SUGGESTED, got %v", got)
	}

	_ = other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := other.ReadMessage(); err == nil {
		t.Error("ngo-2 should not receive ngo-1 events")
	}
}
