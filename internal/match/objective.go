package match

import "github.com/CardinalDevelopment/Cardinal-sub000/internal/world"

// Objective is a goal teams complete during a match, such as capturing a
// wool or destroying a monument.
type Objective struct {
	id   string
	Name string

	// Owner is the team the objective belongs to, if any.
	Owner *world.Team

	completedBy map[string]bool
}

// NewObjective creates an uncompleted objective.
func NewObjective(id, name string, owner *world.Team) *Objective {
	return &Objective{id: id, Name: name, Owner: owner, completedBy: make(map[string]bool)}
}

func (o *Objective) ID() string { return o.id }

// Completed reports whether any team has completed the objective.
func (o *Objective) Completed() bool { return len(o.completedBy) > 0 }

// CompletedBy reports whether team has completed the objective.
func (o *Objective) CompletedBy(team *world.Team) bool {
	return team != nil && o.completedBy[team.ID]
}

// Complete marks the objective completed by team.
func (o *Objective) Complete(team *world.Team) {
	if team != nil {
		o.completedBy[team.ID] = true
	}
}
