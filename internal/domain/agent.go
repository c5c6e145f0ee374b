package domain

import "time"

// Availability enumerates agent availability states.
type Availability string

const (
	AvailabilityAvailable Availability = "Available"
	AvailabilityBusy      Availability = "Busy"
	AvailabilityOffline   Availability = "Offline"
	AvailabilityOnLeave   Availability = "On Leave"
)

// Availabilities lists the accepted availability values.
var Availabilities = []Availability{
	AvailabilityAvailable,
	AvailabilityBusy,
	AvailabilityOffline,
	AvailabilityOnLeave,
}

// Agent models a support agent eligible for ticket assignment.
// Skills maps skill name to a proficiency level in [1,10]. CurrentLoad is the
// load the agent carries when an allocation run starts; the allocator works
// on its own copy and never writes back to the record.
type Agent struct {
	ID              string
	Name            string
	Skills          map[string]int
	Availability    Availability
	ExperienceLevel float64
	CurrentLoad     int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
