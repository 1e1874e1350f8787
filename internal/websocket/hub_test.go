package websocket

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestClient(hub *Hub, userID uuid.UUID, buffer int) *Client {
	return &Client{
		ID:     uuid.New(),
		UserID: userID,
		Send:   make(chan []byte, buffer),
		Hub:    hub,
	}
}

// waitForOnline дожидается, пока Run обработает регистрацию.
func waitForOnline(t *testing.T, hub *Hub, userID uuid.UUID, want bool) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		online := false
		for _, id := range hub.GetOnlineUsers() {
			if id == userID {
				online = true
			}
		}
		if online == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("user %s online != %v within a second", userID, want)
}

func receiveEvent(t *testing.T, client *Client) Event {
	t.Helper()

	select {
	case message := <-client.Send:
		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			t.Fatalf("message is not a valid event: %v", err)
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("no message within a second")
		return Event{}
	}
}

func TestHub_NotifyUserFansOutToAllConnections(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	userID := uuid.New()
	otherID := uuid.New()

	first := newTestClient(hub, userID, 8)
	second := newTestClient(hub, userID, 8)
	bystander := newTestClient(hub, otherID, 8)

	hub.Register(first)
	hub.Register(second)
	hub.Register(bystander)
	waitForOnline(t, hub, userID, true)
	waitForOnline(t, hub, otherID, true)

	hub.NotifyUser(userID, TypeNotification, map[string]string{
		"body": "bob liked your completed task deploy",
	})

	for _, client := range []*Client{first, second} {
		event := receiveEvent(t, client)
		if event.Type != TypeNotification {
			t.Errorf("event type = %q, want %q", event.Type, TypeNotification)
		}
		if event.Timestamp.IsZero() {
			t.Error("event timestamp is zero")
		}

		var data map[string]string
		if err := json.Unmarshal(event.Data, &data); err != nil {
			t.Fatalf("event data is not valid JSON: %v", err)
		}
		if data["body"] != "bob liked your completed task deploy" {
			t.Errorf("body = %q, want the rendered notification", data["body"])
		}
	}

	// Чужие соединения событие не получают
	select {
	case message := <-bystander.Send:
		t.Errorf("bystander received %q", message)
	default:
	}

	hub.Unregister(first)
	hub.Unregister(second)
	hub.Unregister(bystander)
	waitForOnline(t, hub, userID, false)
	waitForOnline(t, hub, otherID, false)
	hub.Stop()
}

func TestHub_GetOnlineUsersDeduplicatesConnections(t *testing.T) {
	hub := NewHub()

	userID := uuid.New()
	hub.registerClient(newTestClient(hub, userID, 1))
	hub.registerClient(newTestClient(hub, userID, 1))

	users := hub.GetOnlineUsers()
	if len(users) != 1 {
		t.Fatalf("GetOnlineUsers() = %v, want a single entry", users)
	}
	if users[0] != userID {
		t.Errorf("GetOnlineUsers()[0] = %s, want %s", users[0], userID)
	}
}

func TestClient_QueueFull(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, uuid.New(), 1)
	hub.registerClient(client)

	if err := client.queue([]byte("first")); err != nil {
		t.Fatalf("queue() error = %v on an empty buffer", err)
	}
	if err := client.queue([]byte("second")); !errors.Is(err, ErrClientQueueFull) {
		t.Fatalf("queue() error = %v, want ErrClientQueueFull", err)
	}

	// Переполненный буфер не блокирует рассылку, сообщение теряется
	hub.SendToUser(client.UserID, []byte("third"))

	if got := <-client.Send; string(got) != "first" {
		t.Errorf("queued message = %q, want %q", got, "first")
	}
	select {
	case extra := <-client.Send:
		t.Errorf("unexpected extra message %q", extra)
	default:
	}
}
