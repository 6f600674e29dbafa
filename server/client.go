package server

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"cheesechase/game"
)

// Client talks to an evaluation server over one websocket connection. It is
// not safe for concurrent use; run one Client per requesting goroutine.
type Client struct {
	conn   *websocket.Conn
	nextID atomic.Int64

	// ReadTimeout bounds each evaluation round trip.
	ReadTimeout time.Duration
}

// Dial connects to the server's /evaluate endpoint, e.g.
// ws://localhost:8077/evaluate.
func Dial(url string) (*Client, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return &Client{conn: conn, ReadTimeout: 5 * time.Minute}, nil
}

// Evaluate scores the programs against rec and returns the scores in
// program order.
func (c *Client) Evaluate(ctx context.Context, rec game.Record, programs [][]int, seed int64) ([]int, error) {
	id := fmt.Sprintf("req-%d", c.nextID.Add(1))

	req := EvaluateRequest{
		Type:     TypeEvaluate,
		ID:       id,
		State:    rec,
		Programs: programs,
		Seed:     seed,
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
	}
	if err := c.conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	readDeadline := time.Now().Add(c.ReadTimeout)
	if deadline, ok := ctx.Deadline(); ok && deadline.Before(readDeadline) {
		readDeadline = deadline
	}
	_ = c.conn.SetReadDeadline(readDeadline)

	var resp EvaluateResponse
	if err := c.conn.ReadJSON(&resp); err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.ID != id {
		return nil, fmt.Errorf("response id %q does not match request %q", resp.ID, id)
	}
	if resp.Type == TypeError {
		return nil, fmt.Errorf("server error: %s", resp.Error)
	}
	if len(resp.Scores) != len(programs) {
		return nil, fmt.Errorf("got %d scores for %d programs", len(resp.Scores), len(programs))
	}
	return resp.Scores, nil
}

// Close shuts the connection down cleanly.
func (c *Client) Close() error {
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
