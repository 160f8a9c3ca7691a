package sim

// Status is the collision state of a simulation.
type Status string

const (
	// StatusActive is the initial state and the state after every ResetBase.
	StatusActive Status = "active"
	// StatusCollided is entered on the first sub-step whose pose is occupied.
	// Only ResetBase leaves it; motion keeps integrating meanwhile.
	StatusCollided Status = "collided"
)
