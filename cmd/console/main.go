// Command console plays an Emberfall campaign in the terminal. The engine
// runs in-process; no server is required.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/emberfall/pkg/campaign"
	"github.com/jwebster45206/emberfall/pkg/engine"
	"github.com/jwebster45206/emberfall/pkg/hero"
	"github.com/jwebster45206/emberfall/pkg/oracle"
)

// ConsoleConfig holds the console client configuration.
type ConsoleConfig struct {
	CampaignFile string
}

func loadConfig() *ConsoleConfig {
	cfg := &ConsoleConfig{
		CampaignFile: os.Getenv("CAMPAIGN_FILE"),
	}
	if len(os.Args) > 1 {
		cfg.CampaignFile = os.Args[1]
	}
	return cfg
}

func main() {
	cfg := loadConfig()

	c, err := loadCampaign(cfg)
	if err != nil {
		fmt.Printf("❌ Failed to load campaign: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("🔥 %s\n", c.Title)
	fmt.Println(strings.Repeat("─", len(c.Title)+3))
	fmt.Println(c.Synopsis)
	fmt.Println()

	build, err := promptHeroBuild(bufio.NewReader(os.Stdin))
	if err != nil {
		fmt.Printf("❌ Character creation aborted: %v\n", err)
		os.Exit(1)
	}

	registry := oracle.NewRegistry()
	eng := engine.NewEngine(c, engine.WithOracle(registry))
	if _, err := eng.CreateHero(*build); err != nil {
		fmt.Printf("❌ Failed to create hero: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		NewConsoleUI(eng, registry),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("❌ Error running console: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Thanks for playing! 🔥")
}

func loadCampaign(cfg *ConsoleConfig) (*campaign.Campaign, error) {
	if cfg.CampaignFile == "" {
		return campaign.Default()
	}
	return campaign.LoadFile(cfg.CampaignFile)
}

// promptHeroBuild walks the player through character creation on stdin
// before the TUI takes over the terminal.
func promptHeroBuild(reader *bufio.Reader) (*hero.Build, error) {
	fmt.Print("Name your hero: ")
	name, err := reader.ReadString('\n')
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Wanderer"
	}

	raceIdx, err := pickOption(reader, "Choose a race", raceNames())
	if err != nil {
		return nil, err
	}
	race := hero.Races[raceIdx]

	classIdx, err := pickOption(reader, "Choose a class", classNames())
	if err != nil {
		return nil, err
	}
	class := hero.Classes[classIdx]

	bgIdx, err := pickOption(reader, "Choose a background", backgroundNames())
	if err != nil {
		return nil, err
	}
	background := hero.Backgrounds[bgIdx]

	skills, err := pickSkills(reader, &class)
	if err != nil {
		return nil, err
	}

	return &hero.Build{
		Name:          name,
		RaceID:        race.ID,
		ClassID:       class.ID,
		BackgroundID:  background.ID,
		AbilityScores: hero.DefaultAbilityAssignment(class.ID),
		Skills:        skills,
	}, nil
}

// pickOption shows a numbered list and reads a selection, retrying on
// invalid input. Returns the zero-based index.
func pickOption(reader *bufio.Reader, title string, options []string) (int, error) {
	fmt.Printf("\n%s:\n", title)
	for i, opt := range options {
		fmt.Printf("%d. %s\n", i+1, opt)
	}

	for {
		fmt.Printf("Enter choice (1-%d): ", len(options))
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Printf("Please enter a number between 1 and %d.\n", len(options))
	}
}

// pickSkills reads the class's allotment of skill choices one at a time.
// Entering nothing skips the remaining picks.
func pickSkills(reader *bufio.Reader, class *hero.ClassDefinition) ([]hero.Skill, error) {
	fmt.Printf("\nChoose up to %d skills (blank to stop):\n", class.SkillChoices)
	for i, s := range class.SkillOptions {
		fmt.Printf("%d. %s\n", i+1, displayLabel(string(s)))
	}

	var picked []hero.Skill
	taken := make(map[hero.Skill]bool)
	for len(picked) < class.SkillChoices {
		fmt.Printf("Skill %d of %d: ", len(picked)+1, class.SkillChoices)
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(class.SkillOptions) {
			fmt.Printf("Please enter a number between 1 and %d.\n", len(class.SkillOptions))
			continue
		}
		skill := class.SkillOptions[n-1]
		if taken[skill] {
			fmt.Println("Already chosen.")
			continue
		}
		taken[skill] = true
		picked = append(picked, skill)
	}
	return picked, nil
}

func raceNames() []string {
	names := make([]string, len(hero.Races))
	for i, r := range hero.Races {
		names[i] = r.Name
	}
	return names
}

func classNames() []string {
	names := make([]string, len(hero.Classes))
	for i, c := range hero.Classes {
		names[i] = c.Name
	}
	return names
}

func backgroundNames() []string {
	names := make([]string, len(hero.Backgrounds))
	for i, b := range hero.Backgrounds {
		names[i] = b.Name
	}
	return names
}
