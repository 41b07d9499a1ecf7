package component

import (
	"github.com/milk9111/fpscontroller/controller"
	"github.com/milk9111/fpscontroller/physics"
)

// Character is a controlled body in the world.
type Character struct {
	Controller *controller.Controller
	Body       *physics.Mover
}

var CharacterComponent = NewComponent[Character]()

// Prefab records which template an entity was built from, for hot reload.
type Prefab struct {
	Name   string
	Script string
}

var PrefabComponent = NewComponent[Prefab]()
