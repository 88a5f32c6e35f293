package hero

// Skill is a named skill tied to one governing ability.
type Skill string

const (
	Acrobatics     Skill = "acrobatics"
	AnimalHandling Skill = "animalHandling"
	Arcana         Skill = "arcana"
	Athletics      Skill = "athletics"
	Deception      Skill = "deception"
	History        Skill = "history"
	Insight        Skill = "insight"
	Intimidation   Skill = "intimidation"
	Investigation  Skill = "investigation"
	Medicine       Skill = "medicine"
	Nature         Skill = "nature"
	Perception     Skill = "perception"
	Performance    Skill = "performance"
	Persuasion     Skill = "persuasion"
	Religion       Skill = "religion"
	SleightOfHand  Skill = "sleightOfHand"
	Stealth        Skill = "stealth"
	Survival       Skill = "survival"
)

// SkillAbility maps each skill to its governing ability.
var SkillAbility = map[Skill]Ability{
	Acrobatics:     Dexterity,
	AnimalHandling: Wisdom,
	Arcana:         Intelligence,
	Athletics:      Strength,
	Deception:      Charisma,
	History:        Intelligence,
	Insight:        Wisdom,
	Intimidation:   Charisma,
	Investigation:  Intelligence,
	Medicine:       Wisdom,
	Nature:         Intelligence,
	Perception:     Wisdom,
	Performance:    Charisma,
	Persuasion:     Charisma,
	Religion:       Intelligence,
	SleightOfHand:  Dexterity,
	Stealth:        Dexterity,
	Survival:       Wisdom,
}

// Skills lists all skills in display order.
var Skills = []Skill{
	Acrobatics, AnimalHandling, Arcana, Athletics, Deception, History,
	Insight, Intimidation, Investigation, Medicine, Nature, Perception,
	Performance, Persuasion, Religion, SleightOfHand, Stealth, Survival,
}
