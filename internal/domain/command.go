package domain

import (
	"encoding/json"

	"babayaga/internal/core/types"
)

// InternalCommand is a parsed client command. Payload is decoded by the handler.
type InternalCommand struct {
	Action  ActionType
	Token   types.EntityID
	Payload json.RawMessage
}
