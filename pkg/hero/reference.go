package hero

// Reference data for character creation. Race, class and background ids are
// the foreign keys scenes treat as opaque strings.

// ClassDefinition describes a playable class.
type ClassDefinition struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	HitDie              int       `json:"hitDie"`
	PrimaryAbilities    []Ability `json:"primaryAbilities"`
	SavingThrows        []Ability `json:"savingThrows"`
	ArmorProficiencies  []string  `json:"armorProficiencies"`
	WeaponProficiencies []string  `json:"weaponProficiencies"`
	ToolProficiencies   []string  `json:"toolProficiencies"`
	SkillOptions        []Skill   `json:"skillOptions"`
	SkillChoices        int       `json:"skillChoices"`
	StartingEquipment   []string  `json:"startingEquipment"`
	Features            []string  `json:"features"`
	SpellcastingAbility Ability   `json:"spellcastingAbility,omitempty"`
}

// RaceDefinition describes a playable race.
type RaceDefinition struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	AbilityBonuses     map[Ability]int `json:"abilityBonuses"`
	Speed              int             `json:"speed"`
	Size               string          `json:"size"`
	Traits             []string        `json:"traits"`
	Languages          []string        `json:"languages"`
	SkillProficiencies []Skill         `json:"skillProficiencies,omitempty"`
}

// BackgroundDefinition describes a character background.
type BackgroundDefinition struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	SkillProficiencies       []Skill  `json:"skillProficiencies"`
	ToolProficiencies        []string `json:"toolProficiencies"`
	Languages                []string `json:"languages"`
	Equipment                []string `json:"equipment"`
	Feature                  string   `json:"feature"`
	SuggestedCharacteristics []string `json:"suggestedCharacteristics"`
}

// StandardArray is the default set of ability scores assigned at creation.
var StandardArray = []int{15, 14, 13, 12, 10, 8}

var Classes = []ClassDefinition{
	{
		ID:                  "fighter",
		Name:                "Fighter",
		HitDie:              10,
		PrimaryAbilities:    []Ability{Strength, Constitution},
		SavingThrows:        []Ability{Strength, Constitution},
		ArmorProficiencies:  []string{"Light armour", "Medium armour", "Heavy armour", "Shields"},
		WeaponProficiencies: []string{"Simple weapons", "Martial weapons"},
		ToolProficiencies:   []string{"Smith’s tools", "Vehicles (land)"},
		SkillOptions:        []Skill{Acrobatics, AnimalHandling, Athletics, History, Insight, Perception, Survival},
		SkillChoices:        2,
		StartingEquipment: []string{
			"Chain mail or leather armour, longbow, and 20 arrows",
			"Martial weapon and shield or two martial weapons",
			"Light crossbow and 20 bolts or two handaxes",
			"Dungeoneer’s pack or Explorer’s pack",
		},
		Features: []string{"Combat Versatility", "Second Wind"},
	},
	{
		ID:                  "rogue",
		Name:                "Rogue",
		HitDie:              8,
		PrimaryAbilities:    []Ability{Dexterity},
		SavingThrows:        []Ability{Dexterity, Intelligence},
		ArmorProficiencies:  []string{"Light armour", "Medium armour (no shields)"},
		WeaponProficiencies: []string{"Simple weapons", "Hand crossbows", "Longswords", "Rapiers", "Shortswords", "Shortbows"},
		ToolProficiencies:   []string{"Thieves’ tools", "Disguise kit"},
		SkillOptions:        []Skill{Acrobatics, Athletics, Deception, Insight, Intimidation, Investigation, Perception, Performance, Persuasion, SleightOfHand, Stealth},
		SkillChoices:        4,
		StartingEquipment: []string{
			"Rapier or shortsword",
			"Shortbow and 20 arrows or shortsword",
			"Burglar’s pack, Dungeoneer’s pack, or Explorer’s pack",
			"Leather armour, two daggers, and thieves’ tools",
		},
		Features: []string{"Expertise", "Sneak Attack", "Cunning Action"},
	},
	{
		ID:                  "wizard",
		Name:                "Wizard",
		HitDie:              8,
		PrimaryAbilities:    []Ability{Intelligence},
		SavingThrows:        []Ability{Intelligence, Wisdom},
		ArmorProficiencies:  []string{"Light armour (mageweave)"},
		WeaponProficiencies: []string{"Simple weapons", "Daggers", "Quarterstaffs", "Light crossbows"},
		ToolProficiencies:   []string{"Calligrapher’s supplies", "Alchemist’s supplies"},
		SkillOptions:        []Skill{Arcana, History, Insight, Investigation, Medicine, Religion},
		SkillChoices:        2,
		StartingEquipment: []string{
			"Quarterstaff or dagger",
			"Component pouch or arcane focus",
			"Scholar’s pack or Explorer’s pack",
			"Mageweave mantle (counts as light armour)",
			"Spellbook",
		},
		Features:            []string{"Spellcasting", "Arcane Recovery"},
		SpellcastingAbility: Intelligence,
	},
	{
		ID:                  "cleric",
		Name:                "Cleric",
		HitDie:              8,
		PrimaryAbilities:    []Ability{Wisdom},
		SavingThrows:        []Ability{Wisdom, Charisma},
		ArmorProficiencies:  []string{"Light armour", "Medium armour", "Shields"},
		WeaponProficiencies: []string{"Simple weapons", "Martial weapons (favoured by domain)"},
		ToolProficiencies:   []string{"Herbalism kit"},
		SkillOptions:        []Skill{History, Insight, Medicine, Persuasion, Religion},
		SkillChoices:        2,
		StartingEquipment: []string{
			"Mace or warhammer (if proficient)",
			"Scale mail, leather armour, or chain mail (if proficient)",
			"Light crossbow and 20 bolts or simple weapon",
			"Priest’s pack or Explorer’s pack",
			"Shield and holy symbol",
		},
		Features:            []string{"Spellcasting", "Divine Domain"},
		SpellcastingAbility: Wisdom,
	},
}

var Races = []RaceDefinition{
	{
		ID:             "human",
		Name:           "Human",
		AbilityBonuses: map[Ability]int{Strength: 1, Dexterity: 1, Wisdom: 1},
		Speed:          30,
		Size:           "Medium",
		Traits:         []string{"Versatile", "Determined"},
		Languages:      []string{"Common", "Choice of one extra language"},
	},
	{
		ID:                 "elf",
		Name:               "High Elf",
		AbilityBonuses:     map[Ability]int{Dexterity: 2, Intelligence: 1},
		Speed:              30,
		Size:               "Medium",
		Traits:             []string{"Darkvision", "Keen Senses", "Fey Ancestry", "Trance", "Cantrip"},
		Languages:          []string{"Common", "Elvish"},
		SkillProficiencies: []Skill{Perception},
	},
	{
		ID:             "dwarf",
		Name:           "Hill Dwarf",
		AbilityBonuses: map[Ability]int{Constitution: 2, Strength: 1},
		Speed:          25,
		Size:           "Medium",
		Traits:         []string{"Darkvision", "Dwarven Resilience", "Dwarven Combat Training", "Stonecunning"},
		Languages:      []string{"Common", "Dwarvish"},
	},
	{
		ID:             "halfling",
		Name:           "Lightfoot Halfling",
		AbilityBonuses: map[Ability]int{Dexterity: 2, Charisma: 1},
		Speed:          25,
		Size:           "Small",
		Traits:         []string{"Lucky", "Brave", "Halfling Nimbleness", "Naturally Stealthy"},
		Languages:      []string{"Common", "Halfling"},
	},
}

var Backgrounds = []BackgroundDefinition{
	{
		ID:                 "acolyte",
		Name:               "Acolyte",
		SkillProficiencies: []Skill{Insight, Religion},
		ToolProficiencies:  []string{},
		Languages:          []string{"Choice of two"},
		Equipment:          []string{"Holy symbol", "Prayer book", "5 sticks of incense", "Vestments", "Common clothes", "15 gp"},
		Feature:            "Shelter of the Faithful",
		SuggestedCharacteristics: []string{
			"Ideals rooted in faith",
			"Bonds tied to temples or mentors",
			"Flaws that test devotion",
		},
	},
	{
		ID:                 "soldier",
		Name:               "Soldier",
		SkillProficiencies: []Skill{Athletics, Intimidation},
		ToolProficiencies:  []string{"Gaming set (one of your choice)", "Vehicles (land)"},
		Languages:          []string{},
		Equipment:          []string{"Insignia of rank", "Trophy from a fallen enemy", "Set of bone dice or deck of cards", "Common clothes", "10 gp"},
		Feature:            "Military Rank",
		SuggestedCharacteristics: []string{
			"Disciplined loyalty",
			"Camaraderie among comrades",
			"Haunted by the memories of war",
		},
	},
	{
		ID:                 "sage",
		Name:               "Sage",
		SkillProficiencies: []Skill{Arcana, History},
		ToolProficiencies:  []string{},
		Languages:          []string{"Choice of two"},
		Equipment:          []string{"Bottle of ink", "Quill", "Small knife", "Letter from a dead colleague", "Common clothes", "10 gp"},
		Feature:            "Researcher",
		SuggestedCharacteristics: []string{
			"Curiosity about the world",
			"Dedicated to uncovering lost knowledge",
			"Distracted by esoteric questions",
		},
	},
	{
		ID:                 "outlander",
		Name:               "Outlander",
		SkillProficiencies: []Skill{Athletics, Survival},
		ToolProficiencies:  []string{"Musical instrument (one of your choice)"},
		Languages:          []string{"Choice of one"},
		Equipment:          []string{"Staff", "Hunting trap", "Trophy from a killed animal", "Traveller’s clothes", "10 gp"},
		Feature:            "Wanderer",
		SuggestedCharacteristics: []string{
			"Prefers the wilds to crowded streets",
			"Protective of the natural world",
			"Slow to trust civilisation",
		},
	},
}

// ClassByID looks up a class definition.
func ClassByID(id string) (*ClassDefinition, bool) {
	for i := range Classes {
		if Classes[i].ID == id {
			return &Classes[i], true
		}
	}
	return nil, false
}

// RaceByID looks up a race definition.
func RaceByID(id string) (*RaceDefinition, bool) {
	for i := range Races {
		if Races[i].ID == id {
			return &Races[i], true
		}
	}
	return nil, false
}

// BackgroundByID looks up a background definition.
func BackgroundByID(id string) (*BackgroundDefinition, bool) {
	for i := range Backgrounds {
		if Backgrounds[i].ID == id {
			return &Backgrounds[i], true
		}
	}
	return nil, false
}
