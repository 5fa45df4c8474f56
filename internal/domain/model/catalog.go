package model

// Catalog is a static lookup of known skills. It carries no behavior
// beyond existence checks and name resolution.
type Catalog struct {
	skills map[SkillID]Skill
}

// NewCatalog builds a catalog from a skill list. Later duplicates win.
func NewCatalog(skills []Skill) *Catalog {
	c := &Catalog{skills: make(map[SkillID]Skill, len(skills))}
	for _, s := range skills {
		c.skills[s.ID] = s
	}
	return c
}

// Has reports whether the skill is known to the catalog.
func (c *Catalog) Has(id SkillID) bool {
	_, ok := c.skills[id]
	return ok
}

// Lookup returns the skill entry for id, if present.
func (c *Catalog) Lookup(id SkillID) (Skill, bool) {
	s, ok := c.skills[id]
	return s, ok
}

// Len returns the number of cataloged skills.
func (c *Catalog) Len() int {
	return len(c.skills)
}
