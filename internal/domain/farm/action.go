package farm

import (
	"fmt"

	"github.com/agro/backend/internal/domain/shared"
)

// ActionType classifies a livestock event and determines which fields'
// counters are affected and in which direction.
type ActionType string

const (
	ActionBirth    ActionType = "BIRTH"
	ActionPurchase ActionType = "PURCHASE"
	ActionDeath    ActionType = "DEATH"
	ActionSale     ActionType = "SALE"
	ActionMove     ActionType = "MOVE"
)

// ParseActionType validates an action type string
func ParseActionType(s string) (ActionType, error) {
	a := ActionType(s)
	if _, ok := actionProfiles[a]; !ok {
		return "", fmt.Errorf("unknown action type: %q", s)
	}
	return a, nil
}

// IsValid reports whether the action type is known
func (a ActionType) IsValid() bool {
	_, ok := actionProfiles[a]
	return ok
}

// stockEffect is the direction a counter moves on one side of an action.
type stockEffect int

const (
	effectNone stockEffect = iota
	effectIncrease
	effectDecrease
)

func (e stockEffect) invert() stockEffect {
	switch e {
	case effectIncrease:
		return effectDecrease
	case effectDecrease:
		return effectIncrease
	default:
		return effectNone
	}
}

// actionProfile describes how an action touches the source and target fields.
// Apply and reverse share this table; reversing flips each effect.
type actionProfile struct {
	source stockEffect
	target stockEffect
}

var actionProfiles = map[ActionType]actionProfile{
	ActionBirth:    {source: effectNone, target: effectIncrease},
	ActionPurchase: {source: effectNone, target: effectIncrease},
	ActionDeath:    {source: effectDecrease, target: effectNone},
	ActionSale:     {source: effectDecrease, target: effectNone},
	ActionMove:     {source: effectDecrease, target: effectIncrease},
}

// RequiresSource reports whether the action needs a source field
func (a ActionType) RequiresSource() bool {
	return actionProfiles[a].source != effectNone
}

// RequiresTarget reports whether the action needs a target field
func (a ActionType) RequiresTarget() bool {
	return actionProfiles[a].target != effectNone
}

type stockStep struct {
	field  *Field
	effect stockEffect
}

// ApplyAction applies the stock effect of an action to the involved fields and
// returns the fields it mutated, source before target. Decreases run before
// increases so a failed decrease never leaves a partial increase behind.
func ApplyAction(action ActionType, category Category, qty int, source, target *Field) ([]*Field, error) {
	return runAction(action, category, qty, source, target, false)
}

// ReverseAction undoes the stock effect of a previously applied action. It is
// the exact inverse of ApplyAction for every action type.
func ReverseAction(action ActionType, category Category, qty int, source, target *Field) ([]*Field, error) {
	return runAction(action, category, qty, source, target, true)
}

func runAction(action ActionType, category Category, qty int, source, target *Field, reverse bool) ([]*Field, error) {
	if qty <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Unknown livestock category: %s", category))
	}
	profile, ok := actionProfiles[action]
	if !ok {
		return nil, shared.NewDomainError("INVALID_ACTION", fmt.Sprintf("Unknown action type: %s", action))
	}
	if profile.source != effectNone && source == nil {
		return nil, shared.NewDomainError("MISSING_FIELD", fmt.Sprintf("Source field is required for %s", action))
	}
	if profile.target != effectNone && target == nil {
		return nil, shared.NewDomainError("MISSING_FIELD", fmt.Sprintf("Target field is required for %s", action))
	}

	steps := make([]stockStep, 0, 2)
	if profile.source != effectNone {
		e := profile.source
		if reverse {
			e = e.invert()
		}
		steps = append(steps, stockStep{field: source, effect: e})
	}
	if profile.target != effectNone {
		e := profile.target
		if reverse {
			e = e.invert()
		}
		steps = append(steps, stockStep{field: target, effect: e})
	}

	// Decreases first: if the field cannot cover the quantity the whole
	// action fails before any counter has moved.
	for _, step := range steps {
		if step.effect != effectDecrease {
			continue
		}
		if err := step.field.DecreaseCount(category, qty); err != nil {
			return nil, err
		}
	}
	for _, step := range steps {
		if step.effect != effectIncrease {
			continue
		}
		if err := step.field.IncreaseCount(category, qty); err != nil {
			return nil, err
		}
	}

	touched := make([]*Field, 0, len(steps))
	for _, step := range steps {
		touched = append(touched, step.field)
	}
	return touched, nil
}
