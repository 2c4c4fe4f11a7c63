package domain

import (
	"encoding/json"

	"babayaga/internal/core/types"
)

// ReplayAction is one accepted facade command.
type ReplayAction struct {
	Tick    uint64          `json:"tick"`
	Token   types.EntityID  `json:"token"`
	Action  ActionType      `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// ReplaySession is a full recording. Snapshot is the msgpack world state the
// recording started from; empty means a fresh world.
type ReplaySession struct {
	Seed      int64          `json:"seed"`
	Timestamp int64          `json:"timestamp"`
	Snapshot  []byte         `json:"snapshot,omitempty"`
	Actions   []ReplayAction `json:"actions"`
}

// Record appends an accepted command.
func (r *ReplaySession) Record(tick uint64, cmd InternalCommand) {
	if !cmd.Action.Recorded() {
		return
	}
	payload := make(json.RawMessage, len(cmd.Payload))
	copy(payload, cmd.Payload)
	r.Actions = append(r.Actions, ReplayAction{
		Tick:    tick,
		Token:   cmd.Token,
		Action:  cmd.Action,
		Payload: payload,
	})
}
