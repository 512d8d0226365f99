package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"connect4/communication"
	"connect4/gamemaster"

	"github.com/gorilla/websocket"
)

// Watch connects to a spectator feed at addr (host:port) and calls onUpdate
// for every update until ctx is done or the server closes the feed.
func Watch(ctx context.Context, addr string, onUpdate func(gamemaster.Update)) error {
	u := url.URL{Scheme: "ws", Host: addr, Path: communication.WSPath}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", u.String(), err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var msg communication.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return nil
			}
			return fmt.Errorf("failed to read update: %w", err)
		}
		if msg.Update != nil {
			onUpdate(*msg.Update)
		}
	}
}
