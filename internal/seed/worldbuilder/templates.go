package worldbuilder

// Event descriptions. They are drawn independently of the topic, so a
// "Book Club" may well advertise food trucks.
var eventDescriptions = []string{
	"Local vendors, seasonal produce, and handmade goods.",
	"An evening of performances from neighborhood artists.",
	"Talks, demos, and networking with fellow builders.",
	"Gallery crawl featuring emerging creators.",
	"A rotation of the city's favorite food trucks.",
	"Sunrise flow for all levels. Bring your own mat.",
	"Discussing the latest reads over coffee.",
	"Family-friendly screening under the stars.",
	"5K/10K routes followed by a block party.",
	"DIY workshops and pop-up boutique stalls.",
}

// Descriptions returns a copy of the description vocabulary.
func Descriptions() []string {
	return append([]string(nil), eventDescriptions...)
}
