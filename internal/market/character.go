package market

// Character is identified by its name, which is assumed to be unique
// within a run.
type Character struct {
	Name       string
	Profession Profession
	Level      int
	// absent key means the value is unknown
	Skills map[Skill]int
}

func NewCharacter(name string, profession Profession, level int) *Character {
	return &Character{
		Name:       name,
		Profession: profession,
		Level:      level,
		Skills:     map[Skill]int{},
	}
}

func (c *Character) SetSkill(skill Skill, value int) {
	if c.Skills == nil {
		c.Skills = map[Skill]int{}
	}
	c.Skills[skill] = value
}

func (c *Character) SkillValue(skill Skill) (int, bool) {
	value, ok := c.Skills[skill]
	return value, ok
}

// Auction is a character listed for sale at a given price.
type Auction struct {
	Character *Character
	Price     int
}

func CharactersOf(auctions []Auction) []*Character {
	out := make([]*Character, len(auctions))
	for i, a := range auctions {
		out[i] = a.Character
	}
	return out
}
