package domain

import (
	"context"
	"errors"

	"babayaga/internal/core/types/enums"
	"babayaga/pkg/logger"

	"github.com/looplab/fsm"
)

// ActionState transition names.
const (
	TransitionMove   = "move"
	TransitionStop   = "stop"
	TransitionAttack = "attack"
	TransitionCast   = "cast"
	TransitionFinish = "finish"
	TransitionDefeat = "defeat"
)

var (
	stateIdle      = enums.ActionIdle.String()
	stateMovement  = enums.ActionMovement.String()
	stateAttacking = enums.ActionAttacking.String()
	stateCasting   = enums.ActionCasting.String()
	stateDefeated  = enums.ActionDefeated.String()
)

// ActionState is the actor's activity machine. Defeated is terminal.
type ActionState struct {
	machine *fsm.FSM
}

func NewActionState() *ActionState {
	return newActionStateAt(stateIdle)
}

func newActionStateAt(initial string) *ActionState {
	return &ActionState{
		machine: fsm.NewFSM(
			initial,
			fsm.Events{
				{Name: TransitionMove, Src: []string{stateIdle}, Dst: stateMovement},
				{Name: TransitionStop, Src: []string{stateMovement}, Dst: stateIdle},
				{Name: TransitionAttack, Src: []string{stateIdle, stateMovement}, Dst: stateAttacking},
				{Name: TransitionCast, Src: []string{stateIdle, stateMovement}, Dst: stateCasting},
				{Name: TransitionFinish, Src: []string{stateAttacking, stateCasting}, Dst: stateIdle},
				{Name: TransitionDefeat, Src: []string{stateIdle, stateMovement, stateAttacking, stateCasting}, Dst: stateDefeated},
			},
			fsm.Callbacks{},
		),
	}
}

// RestoreActionState rebuilds a machine from a persisted state.
func RestoreActionState(s enums.ActionState) *ActionState {
	return newActionStateAt(s.String())
}

func (a *ActionState) Current() enums.ActionState {
	s, ok := enums.ParseActionState(a.machine.Current())
	if !ok {
		return enums.ActionIdle
	}
	return s
}

func (a *ActionState) Is(s enums.ActionState) bool {
	return a.Current() == s
}

// Fire runs a transition. It reports whether the state changed;
// transitions not allowed from the current state are ignored.
func (a *ActionState) Fire(name string) bool {
	err := a.machine.Event(context.Background(), name)
	if err == nil {
		return true
	}
	var invalid fsm.InvalidEventError
	var none fsm.NoTransitionError
	if !errors.As(err, &invalid) && !errors.As(err, &none) {
		logger.For("action").WithError(err).WithField("transition", name).Warn("unexpected state machine error")
	}
	return false
}

func (a *ActionState) Can(name string) bool {
	return a.machine.Can(name)
}

func (*ActionState) ComponentKind() ComponentKind { return CompAction }
