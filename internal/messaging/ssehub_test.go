package messaging_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/messaging"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/model"
)

func receive(t *testing.T, client *messaging.SSEClient) *model.Notification {
	t.Helper()
	select {
	case n := <-client.Channel:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return nil
	}
}

func TestSSEHub_DeliversToAllConnectionsOfRecipient(t *testing.T) {
	hub := messaging.NewSSEHub()
	go hub.Run()

	budiA := hub.RegisterClient("budi")
	budiB := hub.RegisterClient("budi")
	citra := hub.RegisterClient("citra")

	notification := &model.Notification{
		ID:             uuid.New(),
		UserIdentifier: "budi",
		Message:        "Status laporan Anda diperbarui.",
		Kind:           model.KindInfo,
		Timestamp:      time.Now(),
	}
	hub.SendToUser(notification)

	assert.Equal(t, notification.ID, receive(t, budiA).ID)
	assert.Equal(t, notification.ID, receive(t, budiB).ID)

	select {
	case n := <-citra.Channel:
		t.Fatalf("unexpected notification for citra: %v", n.ID)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSSEHub_UnregisterClosesChannel(t *testing.T) {
	hub := messaging.NewSSEHub()
	go hub.Run()

	client := hub.RegisterClient("budi")
	hub.UnregisterClient(client)

	select {
	case _, open := <-client.Channel:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestSSEHub_DeliveryAfterPartialUnregister(t *testing.T) {
	hub := messaging.NewSSEHub()
	go hub.Run()

	gone := hub.RegisterClient("budi")
	stays := hub.RegisterClient("budi")
	hub.UnregisterClient(gone)

	// Wait for the unregister to be processed before broadcasting.
	select {
	case <-gone.Channel:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for unregister")
	}

	notification := &model.Notification{ID: uuid.New(), UserIdentifier: "budi"}
	hub.SendToUser(notification)

	got := receive(t, stays)
	require.NotNil(t, got)
	assert.Equal(t, notification.ID, got.ID)
}
