package enums

// ActionState is the coarse activity of an actor. Exactly one is current.
type ActionState uint8

const (
	ActionIdle ActionState = iota
	ActionMovement
	ActionAttacking
	ActionCasting
	ActionDefeated
)

var actionStateToString = map[ActionState]string{
	ActionIdle:      "IDLE",
	ActionMovement:  "MOVEMENT",
	ActionAttacking: "ATTACKING",
	ActionCasting:   "CASTING",
	ActionDefeated:  "DEFEATED",
}

var actionStateStringToType = map[string]ActionState{
	"IDLE":      ActionIdle,
	"MOVEMENT":  ActionMovement,
	"ATTACKING": ActionAttacking,
	"CASTING":   ActionCasting,
	"DEFEATED":  ActionDefeated,
}

func (a ActionState) String() string {
	if val, ok := actionStateToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseActionState maps the state machine's state names back to the enum.
func ParseActionState(s string) (ActionState, bool) {
	val, ok := actionStateStringToType[s]
	return val, ok
}

func (a ActionState) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
