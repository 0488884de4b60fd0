package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	hub "github.com/yigit/learnhub/internal/pkg/websocket"
)

// WatchURL derives the structure event endpoint from the API base URL
func WatchURL(baseURL string, courseID uuid.UUID) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path += "/courses/" + courseID.String() + "/structure/ws"
	return u.String(), nil
}

// Watch streams structure events for a course to fn until ctx is cancelled
// or the server closes the connection.
func Watch(ctx context.Context, wsURL, token string, fn func(hub.Event)) error {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("error connecting to %s: %s: %w", wsURL, resp.Status, err)
		}
		return fmt.Errorf("error connecting to %s: %w", wsURL, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("error reading event: %w", err)
		}
		var event hub.Event
		if err := json.Unmarshal(data, &event); err != nil {
			continue
		}
		fn(event)
	}
}
