package control

import "github.com/miruken-go/lambdakit"

type (
	// BarButtonItem is a toolbar or navigation bar button with a
	// single target of the host framework.
	BarButtonItem interface {
		Target() ActionTarget
		SetTarget(target ActionTarget)
	}

	ActionTarget interface {
		Action(sender BarButtonItem)
	}

	// ActionHandler is called when the item is tapped.
	ActionHandler func(sender BarButtonItem)

	itemTrampoline struct {
		lambdakit.Trampoline
	}
)

const action = "action"

var items = lambdakit.NewTable[BarButtonItem](lambdakit.DelegateBinding[BarButtonItem, ActionTarget]{
	Delegate:    BarButtonItem.Target,
	SetDelegate: BarButtonItem.SetTarget,
	Trampoline: func(_ BarButtonItem, reg *lambdakit.Registry) ActionTarget {
		return &itemTrampoline{lambdakit.NewTrampoline(reg)}
	},
})

// OnAction makes handler the action of item replacing its target.
func OnAction(item BarButtonItem, handler ActionHandler) {
	lambdakit.Set(items, item, action, handler)
}

func ActionOf(item BarButtonItem) (ActionHandler, bool) {
	return lambdakit.Get[BarButtonItem, ActionHandler](items, item, action)
}

func ItemMode(item BarButtonItem) lambdakit.Mode {
	return items.Mode(item)
}

// ClearAction removes the action handler and its target from item.
func ClearAction(item BarButtonItem) {
	items.Clear(item)
}

func (t *itemTrampoline) Action(sender BarButtonItem) {
	if fn, ok := lambdakit.Lookup[ActionHandler](t.Registry(), action); ok {
		fn(sender)
	}
}
