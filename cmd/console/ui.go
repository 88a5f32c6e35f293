package main

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/emberfall/pkg/engine"
	"github.com/jwebster45206/emberfall/pkg/oracle"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const talkPlaceholder = "npc: your words..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	engine        *engine.Engine
	registry      *oracle.Registry
	storyViewport viewport.Model
	metaViewport  viewport.Model
	input         textinput.Model
	ready         bool
	width         int
	height        int

	// Talk mode routes keystrokes to the dialogue input.
	talkMode  bool
	activeNPC string

	// Transient message shown under the story panel.
	statusLine string

	// Quit confirmation state
	showQuitModal bool
}

var (
	storyPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	sceneTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narrationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	rollStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	effectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // grey

	dialogueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")) // lavender

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

var titleCaser = cases.Title(language.English)

// displayLabel renders a camelCase identifier for humans:
// "sleightOfHand" becomes "Sleight Of Hand".
func displayLabel(id string) string {
	var b strings.Builder
	for i, r := range id {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return titleCaser.String(b.String())
}

func NewConsoleUI(eng *engine.Engine, registry *oracle.Registry) ConsoleUI {
	ti := textinput.New()
	ti.Placeholder = talkPlaceholder
	ti.Prompt = promptStyle.Render(":: ")
	ti.CharLimit = 500

	storyVp := viewport.New(50, 20)
	storyVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		engine:        eng,
		registry:      registry,
		input:         ti,
		storyViewport: storyVp,
		metaViewport:  metaVp,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.storyViewport, vpCmd = m.storyViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.writeStoryContent()
		m.writeMetaContent()

	case tea.KeyMsg:
		if m.talkMode {
			return m.updateTalkMode(msg)
		}
		return m.updatePlayMode(msg)
	}

	m.storyViewport, vpCmd = m.storyViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resize() {
	storyWidth := int(float64(m.width)*0.72) - 4
	metaWidth := m.width - storyWidth - 6

	m.storyViewport.Width = storyWidth - 2
	m.storyViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.input.Width = storyWidth - 8
}

func (m ConsoleUI) updatePlayMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.showQuitModal = true
		return m, nil
	}

	var vpCmd tea.Cmd
	key := msg.String()
	switch key {
	case "q":
		m.showQuitModal = true
		return m, nil

	case "t":
		if m.engine.IsComplete() {
			m.statusLine = errorStyle.Render("The story is over; there is no one left to call.")
			m.writeStoryContent()
			return m, nil
		}
		m.talkMode = true
		m.input.Reset()
		m.input.Focus()
		m.statusLine = promptStyle.Render("Talk mode: \"npc: message\" (npcs: " +
			strings.Join(m.npcIDs(), ", ") + "). Esc to cancel.")
		m.writeStoryContent()
		return m, textinput.Blink

	case "c":
		if err := clipboard.WriteAll(m.plainTranscript()); err != nil {
			m.statusLine = errorStyle.Render("Copy failed: " + err.Error())
		} else {
			m.statusLine = promptStyle.Render("Transcript copied to clipboard.")
		}
		m.writeStoryContent()
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.selectChoice(int(key[0] - '0'))
		return m, nil
	}

	m.storyViewport, vpCmd = m.storyViewport.Update(msg)
	return m, vpCmd
}

func (m *ConsoleUI) selectChoice(n int) {
	choices := m.engine.VisibleChoices()
	if n < 1 || n > len(choices) {
		m.statusLine = errorStyle.Render(fmt.Sprintf("No option %d here.", n))
		m.writeStoryContent()
		return
	}

	choice := choices[n-1]
	if _, err := m.engine.ChooseOption(choice.ID); err != nil {
		m.statusLine = errorStyle.Render(err.Error())
		m.writeStoryContent()
		return
	}

	m.statusLine = ""
	m.writeStoryContent()
	m.writeMetaContent()
}

func (m ConsoleUI) updateTalkMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.showQuitModal = true
		return m, nil

	case tea.KeyEsc:
		m.talkMode = false
		m.input.Blur()
		m.statusLine = ""
		m.writeStoryContent()
		return m, nil

	case tea.KeyEnter:
		npcID, prompt := parseTalkInput(m.input.Value())
		if npcID == "" || prompt == "" {
			m.statusLine = errorStyle.Render("Say it as \"npc: message\".")
			m.writeStoryContent()
			return m, nil
		}
		if _, err := m.engine.Converse(npcID, prompt); err != nil {
			m.statusLine = errorStyle.Render(err.Error())
			m.writeStoryContent()
			return m, nil
		}
		m.activeNPC = npcID
		m.talkMode = false
		m.input.Blur()
		m.input.Reset()
		m.statusLine = ""
		m.writeStoryContent()
		return m, nil
	}

	var tiCmd tea.Cmd
	m.input, tiCmd = m.input.Update(msg)
	return m, tiCmd
}

// parseTalkInput splits "npc: message" into its parts. A space works as the
// separator too.
func parseTalkInput(input string) (npcID, prompt string) {
	input = strings.TrimSpace(input)
	if before, after, found := strings.Cut(input, ":"); found {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	if before, after, found := strings.Cut(input, " "); found {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	return "", ""
}

func (m *ConsoleUI) npcIDs() []string {
	if m.registry == nil {
		return nil
	}
	return m.registry.NPCs()
}

// writeStoryContent rebuilds the story panel: the session log, the current
// scene with numbered options, recent dialogue, and the status line.
func (m *ConsoleUI) writeStoryContent() {
	width := m.storyViewport.Width - 6
	if width < 20 {
		width = 20
	}

	snap := m.engine.Snapshot()
	var content strings.Builder

	content.WriteString(titleStyle.Render(m.engine.Campaign().Title) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")

	for _, entry := range snap.Log {
		switch entry.Type {
		case engine.EntryNarration:
			content.WriteString(narrationStyle.Render(wordwrap.String(entry.Label, width)) + "\n\n")
		case engine.EntryChoice:
			content.WriteString(choiceStyle.Render("➤ "+entry.Label) + "\n\n")
		case engine.EntryRoll:
			line := entry.Label
			if entry.Detail != "" {
				line += ": " + entry.Detail
			}
			content.WriteString(rollStyle.Render(wordwrap.String("🎲 "+line, width)) + "\n\n")
		case engine.EntryEffect:
			content.WriteString(effectStyle.Render(wordwrap.String("• "+entry.Label, width)) + "\n\n")
		}
	}

	if m.engine.IsComplete() {
		content.WriteString(titleStyle.Render("THE END") + "\n\n")
		content.WriteString("Your playthrough is complete. Press C to copy the transcript, Q to quit.\n")
	} else if scene, ok := m.engine.CurrentScene(); ok {
		content.WriteString(sceneTitleStyle.Render(scene.Title) + "\n")
		content.WriteString(wordwrap.String(scene.Narrative, width) + "\n\n")

		for i, choice := range m.engine.VisibleChoices() {
			label := fmt.Sprintf("%d. %s", i+1, choice.Label)
			if m.engine.IsSelectable(&choice) {
				content.WriteString(choiceStyle.Render(label) + "\n")
			} else {
				content.WriteString(lockedStyle.Render(label+" 🔒") + "\n")
			}
		}
	}

	if m.activeNPC != "" {
		turns := snap.Conversation[m.activeNPC]
		if n := len(turns); n >= 2 {
			content.WriteString("\n")
			for _, turn := range turns[n-2:] {
				speaker := displayLabel(m.activeNPC)
				if turn.Speaker == engine.SpeakerPlayer {
					speaker = "You"
				}
				content.WriteString(dialogueStyle.Render(
					wordwrap.String(speaker+": "+turn.Text, width)) + "\n")
			}
		}
	}

	if m.statusLine != "" {
		content.WriteString("\n" + m.statusLine + "\n")
	}

	m.storyViewport.SetContent(content.String())
	m.storyViewport.GotoBottom()
}

// writeMetaContent rebuilds the side panel: hero sheet, status counters, and
// the world map index.
func (m *ConsoleUI) writeMetaContent() {
	snap := m.engine.Snapshot()
	var content strings.Builder

	content.WriteString(titleStyle.Render("HERO") + "\n\n")
	if h := snap.Hero; h != nil {
		content.WriteString(h.Name + "\n")
		content.WriteString(fmt.Sprintf("%s %s, level %d\n",
			displayLabel(h.RaceID), displayLabel(h.ClassID), h.Level))
		content.WriteString(fmt.Sprintf("HP %d/%d  AC %d\n",
			h.Resources.HitPoints, h.Resources.MaxHitPoints, h.ArmorClass))
		if h.Resources.Inspiration > 0 {
			content.WriteString(fmt.Sprintf("Inspiration %d\n", h.Resources.Inspiration))
		}
		content.WriteString("\n")

		counters := make([]string, 0, len(h.Status))
		for name := range h.Status {
			counters = append(counters, name)
		}
		sort.Strings(counters)
		for _, name := range counters {
			content.WriteString(fmt.Sprintf("%s: %d\n", displayLabel(name), h.Status[name]))
		}

		if len(h.Allies) > 0 {
			content.WriteString("\nAllies:\n")
			names := make([]string, 0, len(h.Allies))
			for name := range h.Allies {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				content.WriteString(fmt.Sprintf("• %s (%s)\n", displayLabel(name), h.Allies[name]))
			}
		}
	}

	if idx := m.engine.WorldMapIndex(); idx != nil {
		content.WriteString("\n" + titleStyle.Render("WORLD MAP") + "\n\n")
		for _, loc := range idx.Locations {
			marker := "·"
			switch {
			case loc.Current:
				marker = "▶"
			case loc.Visited:
				marker = "•"
			}
			content.WriteString(fmt.Sprintf("%s %s\n", marker, loc.Name))
		}
	}

	content.WriteString("\n" + titleStyle.Render("KEYS") + "\n\n")
	content.WriteString("1-9: choose option\n")
	content.WriteString("T: talk to an NPC\n")
	content.WriteString("C: copy transcript\n")
	content.WriteString("Q: quit\n")

	m.metaViewport.SetContent(content.String())
}

// plainTranscript renders the session log without styling for the clipboard.
func (m *ConsoleUI) plainTranscript() string {
	snap := m.engine.Snapshot()
	var b strings.Builder
	b.WriteString(m.engine.Campaign().Title + "\n\n")
	for _, entry := range snap.Log {
		switch entry.Type {
		case engine.EntryChoice:
			b.WriteString("> " + entry.Label + "\n")
		case engine.EntryRoll:
			line := entry.Label
			if entry.Detail != "" {
				line += ": " + entry.Detail
			}
			b.WriteString("[roll] " + line + "\n")
		case engine.EntryEffect:
			b.WriteString("* " + entry.Label + "\n")
		default:
			b.WriteString(entry.Label + "\n")
		}
	}
	return b.String()
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.talkMode {
					m.input.Focus()
					return m, textinput.Blink
				}
				return m, nil
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to abandon your climb?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	storyWidth := int(float64(m.width)*0.72) - 4
	metaWidth := m.width - storyWidth - 6

	var inputView string
	if m.talkMode {
		inputView = m.input.View()
	} else {
		inputView = promptStyle.Render("1-9 choose · T talk · C copy · Q quit")
	}

	storyPanel := storyPanelStyle.Width(storyWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.storyViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", storyWidth-4)),
			inputView,
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, storyPanel, metaPanel)
}
