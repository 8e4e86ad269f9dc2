package model

// Component is one of the nine physical laptop parts tracked for condition
// and repair cost.
type Component string

const (
	ComponentFrontPanel     Component = "frontPanel"
	ComponentPanel          Component = "panel"
	ComponentScreenNonTouch Component = "screenNonTouch"
	ComponentScreenTouch    Component = "screenTouch"
	ComponentHinge          Component = "hinge"
	ComponentTouchPad       Component = "touchPad"
	ComponentBase           Component = "base"
	ComponentKeyboard       Component = "keyboard"
	ComponentBattery        Component = "battery"
)

// Components lists every component in display order.
var Components = []Component{
	ComponentFrontPanel,
	ComponentPanel,
	ComponentScreenNonTouch,
	ComponentScreenTouch,
	ComponentHinge,
	ComponentTouchPad,
	ComponentBase,
	ComponentKeyboard,
	ComponentBattery,
}

func (c Component) Valid() bool {
	for _, k := range Components {
		if k == c {
			return true
		}
	}
	return false
}

// StatusOK is the canonical "no defect" status.
const StatusOK = "ok"
