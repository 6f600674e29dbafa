// Package server exposes batch program evaluation over a websocket, so an
// external search process can score thousands of candidate programs per
// round without paying process-spawn costs.
package server

import "cheesechase/game"

// Message types on the wire. Every client message gets exactly one reply
// carrying the same ID.
const (
	TypeEvaluate = "evaluate"
	TypeResult   = "result"
	TypeError    = "error"
)

// EvaluateRequest asks for the programs to be scored against State. Scores
// come back in program order.
type EvaluateRequest struct {
	Type     string      `json:"type"`
	ID       string      `json:"id"`
	State    game.Record `json:"state"`
	Programs [][]int     `json:"programs"`
	Seed     int64       `json:"seed,omitempty"`

	// Workers overrides the server's pool size for this request when
	// positive.
	Workers int `json:"workers,omitempty"`
}

// EvaluateResponse carries the scores for one request, or an error.
type EvaluateResponse struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Scores []int  `json:"scores,omitempty"`
	Error  string `json:"error,omitempty"`
}

// RequestSchema validates EvaluateRequest messages. The schema is the wire
// contract; tests keep the Go types honest against it.
const RequestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["type", "id", "state", "programs"],
  "properties": {
    "type": {"const": "evaluate"},
    "id": {"type": "string", "minLength": 1},
    "state": {"type": "object"},
    "programs": {
      "type": "array",
      "items": {
        "type": "array",
        "items": {"type": "integer", "minimum": 0, "maximum": 999}
      }
    },
    "seed": {"type": "integer"},
    "workers": {"type": "integer", "minimum": 0}
  }
}`

// ResponseSchema validates EvaluateResponse messages.
const ResponseSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["type", "id"],
  "properties": {
    "type": {"enum": ["result", "error"]},
    "id": {"type": "string", "minLength": 1},
    "scores": {"type": "array", "items": {"type": "integer"}},
    "error": {"type": "string"}
  }
}`
