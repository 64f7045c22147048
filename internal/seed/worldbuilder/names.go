package worldbuilder

// Event topics used as the first half of a title, e.g. "Art Walk #7".
var eventTopics = []string{
	"Farmers Market",
	"Live Music",
	"Tech Meetup",
	"Art Walk",
	"Food Truck Rally",
	"Community Yoga",
	"Book Club",
	"Outdoor Movie",
	"Charity Run",
	"Craft Fair",
}

// Topics returns a copy of the topic vocabulary.
func Topics() []string {
	return append([]string(nil), eventTopics...)
}
