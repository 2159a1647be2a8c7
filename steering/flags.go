// Package steering implements the per-agent force-generation engine:
// weighted behavior calculators combined by prioritized summation.
package steering

// Behavior identifies a steering behavior kind. A Behavior value is also
// used as a set of active behaviors.
type Behavior uint32

const (
	Seek Behavior = 1 << iota
	Flee
	Arrive
	Pursuit
	Evade
	Wander
	ObstacleAvoidance
	WallAvoidance
	FollowPath
	Interpose
	Hide
	OffsetPursuit
	Separation
	Alignment
	Cohesion
)

// Has checks whether the set contains a behavior.
func (b Behavior) Has(other Behavior) bool {
	return b&other != 0
}

// Add returns the set with a behavior enabled.
func (b Behavior) Add(other Behavior) Behavior {
	return b | other
}

// Remove returns the set with a behavior disabled.
func (b Behavior) Remove(other Behavior) Behavior {
	return b &^ other
}

// Names returns human-readable names for the active behaviors.
func (b Behavior) Names() []string {
	var names []string
	for _, entry := range behaviorNames {
		if b.Has(entry.flag) {
			names = append(names, entry.name)
		}
	}
	return names
}

var behaviorNames = []struct {
	flag Behavior
	name string
}{
	{Seek, "Seek"},
	{Flee, "Flee"},
	{Arrive, "Arrive"},
	{Pursuit, "Pursuit"},
	{Evade, "Evade"},
	{Wander, "Wander"},
	{ObstacleAvoidance, "Obstacle Avoidance"},
	{WallAvoidance, "Wall Avoidance"},
	{FollowPath, "Follow Path"},
	{Interpose, "Interpose"},
	{Hide, "Hide"},
	{OffsetPursuit, "Offset Pursuit"},
	{Separation, "Separation"},
	{Alignment, "Alignment"},
	{Cohesion, "Cohesion"},
}
