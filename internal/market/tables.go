package market

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

const DefaultAuctionURL = "https://www.ezodus.net/auction"

// PagePlaceholder is replaced with the zero-based page number in
// highscores url templates.
const PagePlaceholder = "{page}"

var applicability = map[Profession][]Skill{
	Druid:    {Magic},
	Sorcerer: {Magic},
	Knight:   {Sword, Axe, Club},
	Paladin:  {Distance, Magic},
}

// ApplicableSkills returns the skills whose highscores a character of the
// given profession can appear on. No profession maps to Shielding, so it
// is never looked up.
func ApplicableSkills(p Profession) []Skill {
	return slices.Clone(applicability[p])
}

var defaultSkillURLTemplates = map[Skill]string{
	Magic:     "https://www.ezodus.net/charts/highscores/magic/all/{page}",
	Shielding: "https://www.ezodus.net/charts/highscores/shielding/all/{page}",
	Distance:  "https://www.ezodus.net/charts/highscores/distance/all/{page}",
	Sword:     "https://www.ezodus.net/charts/highscores/sword/knight/{page}",
	Axe:       "https://www.ezodus.net/charts/highscores/axe/knight/{page}",
	Club:      "https://www.ezodus.net/charts/highscores/club/knight/{page}",
}

func DefaultSkillURLTemplates() map[Skill]string {
	return maps.Clone(defaultSkillURLTemplates)
}

func PageURL(template string, page int) string {
	return strings.ReplaceAll(template, PagePlaceholder, strconv.Itoa(page))
}
