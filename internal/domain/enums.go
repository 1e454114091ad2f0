package domain

// DefaultWorkoutTypes is the pick-list offered when no catalogue is
// configured. Type stays free-form; any non-empty label is accepted.
var DefaultWorkoutTypes = []string{
	"walking",
	"running",
	"commute walk",
	"strength",
	"jump rope",
}
