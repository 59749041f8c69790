package export

import (
	"ezodus-market/internal/market"
	"strconv"
)

// Header is the column header row of every export.
var Header = []string{"name", "price", "profession", "lvl", "sword", "axe", "club", "dist", "magic", "shielding"}

// order of the skill columns in Header
var skillColumns = []market.Skill{
	market.Sword,
	market.Axe,
	market.Club,
	market.Distance,
	market.Magic,
	market.Shielding,
}

// Record is a flattened auction, Skills follows the order of the skill
// columns in Header and holds nil for unknown values.
type Record struct {
	Name       string
	Price      int
	Profession string
	Level      int
	Skills     []*int
}

func NewRecord(a market.Auction) Record {
	c := a.Character
	skills := make([]*int, len(skillColumns))
	for i, skill := range skillColumns {
		if value, ok := c.SkillValue(skill); ok {
			skills[i] = &value
		}
	}
	return Record{
		Name:       c.Name,
		Price:      a.Price,
		Profession: c.Profession.Name(),
		Level:      c.Level,
		Skills:     skills,
	}
}

func Records(auctions []market.Auction) []Record {
	out := make([]Record, len(auctions))
	for i, a := range auctions {
		out[i] = NewRecord(a)
	}
	return out
}

// Values returns the record's cells, unknown skills are nil.
func (r Record) Values() []any {
	out := []any{r.Name, r.Price, r.Profession, r.Level}
	for _, s := range r.Skills {
		if s == nil {
			out = append(out, nil)
			continue
		}
		out = append(out, *s)
	}
	return out
}

// Strings returns the record's cells as text, unknown skills are empty.
func (r Record) Strings() []string {
	out := []string{r.Name, strconv.Itoa(r.Price), r.Profession, strconv.Itoa(r.Level)}
	for _, s := range r.Skills {
		if s == nil {
			out = append(out, "")
			continue
		}
		out = append(out, strconv.Itoa(*s))
	}
	return out
}
