package market

import (
	"fmt"
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

type Profession int

const (
	Knight Profession = iota + 1
	Sorcerer
	Druid
	Paladin
)

// declaration order is also matching order, the first profession whose
// display name appears in a text wins.
var professions = []Profession{Knight, Sorcerer, Druid, Paladin}

var professionNames = map[Profession][2]string{
	Knight:   {"KNIGHT", "Knight"},
	Sorcerer: {"SORCERER", "Sorcerer"},
	Druid:    {"DRUID", "Druid"},
	Paladin:  {"PALADIN", "Paladin"},
}

func Professions() []Profession {
	return slices.Clone(professions)
}

// Name returns the enum name used in exports, ex. KNIGHT.
func (p Profession) Name() string {
	names, ok := professionNames[p]
	if !ok {
		return "UNKNOWN"
	}
	return names[0]
}

// String returns the display name as it appears on the website, ex. Knight.
func (p Profession) String() string {
	names, ok := professionNames[p]
	if !ok {
		return fmt.Sprintf("Profession(%d)", int(p))
	}
	return names[1]
}

// hints below this similarity are not worth showing
const minHintSimilarity = 0.8

// FindProfession returns the first profession whose display name is a
// substring of text.
func FindProfession(text string) (Profession, error) {
	for _, p := range professions {
		if strings.Contains(text, p.String()) {
			return p, nil
		}
	}
	return 0, &ParseError{
		Row:   -1,
		Field: "profession",
		Value: text,
		Hint:  closestProfession(text),
		Err:   ErrUnknownProfession,
	}
}

func closestProfession(text string) string {
	var best float64
	var bestName string
	for _, word := range strings.Fields(text) {
		for _, p := range professions {
			similarity := matchr.JaroWinkler(strings.ToLower(word), strings.ToLower(p.String()), false)
			if similarity > best {
				best = similarity
				bestName = p.String()
			}
		}
	}
	if best < minHintSimilarity {
		return ""
	}
	return bestName
}
