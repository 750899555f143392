package ws

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManager_SendToUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	go m.Run(ctx)

	c := &Client{UserID: "u1", send: make(chan any, 1), manager: m}
	m.register <- c

	assert.Eventually(t, func() bool { return m.Online("u1") }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, m.SendToUser("u1", Message{Event: "notification", Data: "hi"}))
	assert.Equal(t, 0, m.SendToUser("u2", Message{Event: "notification"}))

	msg := <-c.send
	assert.Equal(t, "notification", msg.(Message).Event)

	m.unregister <- c
	assert.Eventually(t, func() bool { return !m.Online("u1") }, time.Second, 5*time.Millisecond)
}
