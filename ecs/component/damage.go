package component

// DamageRequest is applied by the combat system on the next tick and then
// removed.
type DamageRequest struct {
	Amount int
}

var DamageRequestComponent = NewComponent[DamageRequest]()
