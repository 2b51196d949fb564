package deck

import "strings"

// extraDeckTypes are the card type tags that place a card in the Extra Deck
// by default. Matching is by case-insensitive substring so composite tags
// like "Pendulum Effect Fusion Monster" classify correctly.
var extraDeckTypes = []string{
	"fusion",
	"synchro",
	"xyz",
	"link",
}

// Classify returns the zone a card belongs to by default, judged from its
// type tag. Unknown tags classify as Main. Side is never a classifier
// output: cards only enter the Side Deck by explicit choice.
func Classify(typeTag string) Zone {
	tag := strings.ToLower(typeTag)
	for _, t := range extraDeckTypes {
		if strings.Contains(tag, t) {
			return ZoneExtra
		}
	}
	return ZoneMain
}
