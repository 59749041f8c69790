package market

import (
	"ezodus-market/pkg/textutil"
	"fmt"
	"slices"
)

type Skill int

const (
	Magic Skill = iota + 1
	Shielding
	Distance
	Club
	Sword
	Axe
)

var skills = []Skill{Magic, Shielding, Distance, Club, Sword, Axe}

var skillNames = map[Skill]string{
	Magic:     "Magic",
	Shielding: "Shielding",
	Distance:  "Distance",
	Club:      "Club",
	Sword:     "Sword",
	Axe:       "Axe",
}

// Skills returns every skill in declaration order.
func Skills() []Skill {
	return slices.Clone(skills)
}

func (s Skill) String() string {
	name, ok := skillNames[s]
	if !ok {
		return fmt.Sprintf("Skill(%d)", int(s))
	}
	return name
}

// Key is the lowercase name used for configuration keys.
func (s Skill) Key() string {
	return textutil.NormalizeName(s.String())
}

// ParseSkill resolves a skill from its name, ignoring case and whitespace.
// "dist" is accepted as an alias of Distance.
func ParseSkill(name string) (Skill, error) {
	key := textutil.NormalizeName(name)
	if key == "dist" {
		return Distance, nil
	}
	for _, s := range skills {
		if s.Key() == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown skill %q", name)
}
