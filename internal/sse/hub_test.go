package sse

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(id string) *Client {
	return &Client{
		ID:         id,
		UserID:     uuid.New(),
		Workspaces: make(map[uuid.UUID]bool),
		Send:       make(chan []byte, 16),
	}
}

func receiveEvent(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case data := <-client.Send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, client *Client) {
	t.Helper()
	select {
	case data := <-client.Send:
		t.Fatalf("expected no event, got: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_SubscribedClientReceivesBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient("client-1")
	hub.Register(client)

	workspaceID := uuid.New()
	sessionID := uuid.New()

	require.Eventually(t, func() bool {
		hub.SubscribeToWorkspace(client.ID, workspaceID)
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		c, ok := hub.clients[client.ID]
		return ok && c.Workspaces[workspaceID]
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastSessionUpdated(workspaceID, sessionID, "in-progress")

	event := receiveEvent(t, client)
	assert.Equal(t, "session.updated", event.Type)

	payload, err := json.Marshal(event.Data)
	require.NoError(t, err)
	var sessionEvent SessionEvent
	require.NoError(t, json.Unmarshal(payload, &sessionEvent))
	assert.Equal(t, sessionID, sessionEvent.SessionID)
	assert.Equal(t, workspaceID, sessionEvent.WorkspaceID)
	assert.Equal(t, "in-progress", sessionEvent.Status)
}

func TestHub_UnsubscribedClientReceivesNothing(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	subscribed := newTestClient("client-1")
	other := newTestClient("client-2")
	hub.Register(subscribed)
	hub.Register(other)

	workspaceID := uuid.New()

	require.Eventually(t, func() bool {
		hub.SubscribeToWorkspace(subscribed.ID, workspaceID)
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		c, ok := hub.clients[subscribed.ID]
		_, otherOK := hub.clients[other.ID]
		return ok && otherOK && c.Workspaces[workspaceID]
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastSessionCancelled(workspaceID, uuid.New())

	event := receiveEvent(t, subscribed)
	assert.Equal(t, "session.cancelled", event.Type)
	assertNoEvent(t, other)
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient("client-1")
	hub.Register(client)

	workspaceID := uuid.New()

	require.Eventually(t, func() bool {
		hub.SubscribeToWorkspace(client.ID, workspaceID)
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		c, ok := hub.clients[client.ID]
		return ok && c.Workspaces[workspaceID]
	}, time.Second, 10*time.Millisecond)

	hub.UnsubscribeFromWorkspace(client.ID, workspaceID)
	hub.BroadcastSessionUpdated(workspaceID, uuid.New(), "completed")

	assertNoEvent(t, client)
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient("client-1")
	hub.Register(client)

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.clients[client.ID]
		return ok
	}, time.Second, 10*time.Millisecond)

	hub.Unregister(client)

	select {
	case _, open := <-client.Send:
		assert.False(t, open, "send channel should be closed after unregister")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for send channel to close")
	}
}

func TestHub_WaitlistNotifiedEventPayload(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient("client-1")
	hub.Register(client)

	workspaceID := uuid.New()
	requestID := uuid.New()
	userID := uuid.New()

	require.Eventually(t, func() bool {
		hub.SubscribeToWorkspace(client.ID, workspaceID)
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		c, ok := hub.clients[client.ID]
		return ok && c.Workspaces[workspaceID]
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastWaitlistNotified(workspaceID, requestID, userID, "2025-07-01", "09:00", "11:00")

	event := receiveEvent(t, client)
	assert.Equal(t, "waitlist.notified", event.Type)

	payload, err := json.Marshal(event.Data)
	require.NoError(t, err)
	var notified WaitlistNotifiedEvent
	require.NoError(t, json.Unmarshal(payload, &notified))
	assert.Equal(t, requestID, notified.RequestID)
	assert.Equal(t, userID, notified.UserID)
	assert.Equal(t, "2025-07-01", notified.Date)
	assert.Equal(t, "09:00", notified.StartTime)
	assert.Equal(t, "11:00", notified.EndTime)
}
