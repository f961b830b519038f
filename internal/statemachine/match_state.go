package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"hopeplates/internal/domain"
)

// Action is the external call that drives a match forward.
type Action string

const (
	ActionAccept  Action = "accept"
	ActionPickup  Action = "pickup"
	ActionDeliver Action = "deliver"
)

// ErrInvalidTransition is returned when an action is not allowed from the
// match's current status.
var ErrInvalidTransition = errors.New("invalid match transition")

// Transition defines a valid status change and the action that causes it.
type Transition struct {
	From   domain.MatchStatus
	To     domain.MatchStatus
	Action Action
}

// validTransitions is the authoritative match lifecycle.
var validTransitions = []Transition{
	{From: domain.MatchStatusSuggested, To: domain.MatchStatusAccepted, Action: ActionAccept},
	{From: domain.MatchStatusAccepted, To: domain.MatchStatusPickedUp, Action: ActionPickup},
	{From: domain.MatchStatusPickedUp, To: domain.MatchStatusDelivered, Action: ActionDeliver},
}

type transitionKey struct {
	From   domain.MatchStatus
	Action Action
}

var transitionMap = func() map[transitionKey]domain.MatchStatus {
	m := make(map[transitionKey]domain.MatchStatus, len(validTransitions))
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.Action}] = t.To
	}
	return m
}()

// Next returns the status a match moves to when action is applied from
// status. The error wraps ErrInvalidTransition.
func Next(from domain.MatchStatus, action Action) (domain.MatchStatus, error) {
	if to, ok := transitionMap[transitionKey{from, action}]; ok {
		return to, nil
	}
	return "", fmt.Errorf("%w: cannot %s a match in status %q (allowed: %s)",
		ErrInvalidTransition, action, from, describeActionsFrom(from))
}

// ActionsFrom returns the actions allowed from status.
func ActionsFrom(status domain.MatchStatus) []Action {
	var actions []Action
	for _, t := range validTransitions {
		if t.From == status {
			actions = append(actions, t.Action)
		}
	}
	return actions
}

// IsTerminal reports whether no action can move a match out of status.
func IsTerminal(status domain.MatchStatus) bool {
	return len(ActionsFrom(status)) == 0
}

// DonorStatusFor maps a match status to the donor status it propagates.
// Suggested matches do not touch the donor.
func DonorStatusFor(status domain.MatchStatus) (domain.DonorStatus, bool) {
	switch status {
	case domain.MatchStatusAccepted:
		return domain.DonorStatusAccepted, true
	case domain.MatchStatusPickedUp:
		return domain.DonorStatusPickedUp, true
	case domain.MatchStatusDelivered:
		return domain.DonorStatusDelivered, true
	default:
		return "", false
	}
}

// GetAllTransitions returns the full lifecycle for documentation.
func GetAllTransitions() []Transition {
	return validTransitions
}

func describeActionsFrom(status domain.MatchStatus) string {
	actions := ActionsFrom(status)
	if len(actions) == 0 {
		return "none, terminal state"
	}
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}
