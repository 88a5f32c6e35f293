// Package engine runs a single playthrough: it walks the scene graph,
// resolves skill checks, applies effects, and maintains the session snapshot.
// One Engine value owns one session; callers serialize access themselves.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/emberfall/pkg/campaign"
	"github.com/jwebster45206/emberfall/pkg/dice"
	"github.com/jwebster45206/emberfall/pkg/hero"
	"github.com/jwebster45206/emberfall/pkg/oracle"
)

// Oracle answers NPC dialogue prompts. *oracle.Registry satisfies it.
type Oracle interface {
	Reply(npcID, prompt string, hero oracle.HeroSnapshot) string
}

// Engine orchestrates dice, effects, and navigation over one session.
type Engine struct {
	campaign *campaign.Campaign
	nav      *Navigator
	roller   *dice.Roller
	oracle   Oracle
	logger   *slog.Logger
	snap     *Snapshot
}

// Option configures an Engine.
type Option func(*Engine)

// WithRoller injects the dice roller. Tests use this to force rolls.
func WithRoller(r *dice.Roller) Option {
	return func(e *Engine) { e.roller = r }
}

// WithOracle injects the dialogue oracle. Without one, Converse degrades to
// an unavailable placeholder reply.
func WithOracle(o Oracle) Option {
	return func(e *Engine) { e.oracle = o }
}

// WithLogger injects the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine returns an engine for a fresh session over the given campaign.
func NewEngine(c *campaign.Campaign, opts ...Option) *Engine {
	e := &Engine{
		campaign: c,
		nav:      NewNavigator(c),
		roller:   dice.NewRoller(),
		logger:   slog.Default(),
		snap:     NewSnapshot(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Campaign returns the immutable content handle the engine runs against.
func (e *Engine) Campaign() *campaign.Campaign {
	return e.campaign
}

// Snapshot returns a deep copy of the current session state.
func (e *Engine) Snapshot() *Snapshot {
	return e.snap.Clone()
}

// IsComplete reports whether the session reached a terminal outcome.
func (e *Engine) IsComplete() bool {
	return e.snap.Hero != nil && e.snap.CurrentSceneID == nil
}

// CurrentScene returns the scene the session is at, if any.
func (e *Engine) CurrentScene() (*campaign.Scene, bool) {
	if e.snap.CurrentSceneID == nil {
		return nil, false
	}
	return e.campaign.Scene(*e.snap.CurrentSceneID)
}

// VisibleChoices returns the current scene's choices minus hidden ones.
func (e *Engine) VisibleChoices() []campaign.Choice {
	scene, ok := e.CurrentScene()
	if !ok || e.snap.Hero == nil {
		return nil
	}
	return e.nav.VisibleChoices(scene, e.snap.Hero)
}

// IsSelectable reports whether the hero can currently take the choice.
func (e *Engine) IsSelectable(ch *campaign.Choice) bool {
	return Selectable(ch, e.snap.Hero)
}

// Restore replaces the session with a previously saved snapshot.
func (e *Engine) Restore(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("nil snapshot")
	}
	if snap.CurrentSceneID != nil {
		if _, ok := e.campaign.Scene(*snap.CurrentSceneID); !ok {
			return fmt.Errorf("snapshot references unknown scene %q", *snap.CurrentSceneID)
		}
	}
	restored := snap.Clone()
	restored.normalize()
	e.snap = restored
	return nil
}

// CreateHero starts a new playthrough: it builds the hero, enters the
// campaign's intro scene, and returns the resulting snapshot. Any previous
// session state is discarded.
func (e *Engine) CreateHero(build hero.Build) (*Snapshot, error) {
	h, err := hero.NewHero(build)
	if err != nil {
		return nil, err
	}

	work := NewSnapshot()
	work.Hero = h.Sheet
	if err := e.enterScene(work, e.campaign.IntroSceneID); err != nil {
		return nil, err
	}

	e.snap = work
	e.logger.Debug("hero created",
		"hero", h.Sheet.Name,
		"class", h.Sheet.ClassID,
		"scene", e.campaign.IntroSceneID)
	return e.snap.Clone(), nil
}

// ChooseOption resolves one choice as a single atomic transaction. On any
// error the session is left unchanged.
func (e *Engine) ChooseOption(choiceID string) (*Snapshot, error) {
	if e.snap.Hero == nil {
		return nil, ErrNoHero
	}
	if e.IsComplete() {
		return nil, ErrGameAlreadyComplete
	}

	sceneID := *e.snap.CurrentSceneID
	choice, err := e.nav.Select(sceneID, choiceID, e.snap.Hero)
	if err != nil {
		return nil, err
	}

	work := e.snap.Clone()

	outcome := choice.AutoSuccess
	if sc := choice.SkillCheck; sc != nil {
		resolved, entry, err := e.resolveCheck(work.Hero, sc)
		if err != nil {
			return nil, err
		}
		work.Log = append(work.Log, entry)
		outcome = resolved
	}

	work.Log = append(work.Log, newLogEntry(EntryChoice, choice.Label, ""))

	updated, entries := ApplyEffect(work.Hero, outcome.Effects)
	work.Hero = updated
	work.Log = append(work.Log, entries...)
	work.Log = append(work.Log, newLogEntry(EntryNarration, outcome.Narrative, ""))

	if outcome.NextSceneID == nil {
		work.CurrentSceneID = nil
	} else if err := e.enterScene(work, *outcome.NextSceneID); err != nil {
		return nil, err
	}

	e.snap = work
	e.logger.Debug("choice resolved",
		"scene", sceneID,
		"choice", choiceID,
		"outcome", outcome.ID)
	return e.snap.Clone(), nil
}

// resolveCheck rolls the skill check and picks the matching outcome.
func (e *Engine) resolveCheck(sheet *hero.Sheet, sc *campaign.SkillCheck) (*campaign.Outcome, LogEntry, error) {
	h, err := hero.NewHeroFromSheet(sheet)
	if err != nil {
		return nil, LogEntry{}, fmt.Errorf("failed to rebuild hero for check: %w", err)
	}

	advantage := sc.AdvantageIfFlag != "" && sheet.HasFlag(sc.AdvantageIfFlag)
	disadvantage := sc.DisadvantageIfFlag != "" && sheet.HasFlag(sc.DisadvantageIfFlag)
	bonus := h.EffectiveBonus(sc.Ability, sc.Skill)
	result := e.roller.ResolveCheck(bonus, sc.DC, advantage, disadvantage)

	verdict := "failure"
	if result.Success {
		verdict = "success"
	}
	label := fmt.Sprintf("%s check", sc.Ability)
	if sc.Skill != "" {
		label = fmt.Sprintf("%s (%s) check", sc.Skill, sc.Ability)
	}
	detail := fmt.Sprintf("dice %v, kept %d, modifier %+d, total %d vs DC %d: %s",
		result.Dice, result.Roll, result.Modifier, result.Total, result.DC, verdict)

	outcome := &sc.Failure
	if result.Success {
		outcome = &sc.Success
	}
	return outcome, newLogEntry(EntryRoll, label, detail), nil
}

// enterScene moves the working snapshot into a scene: it increments the visit
// count, fires the scene's onEnter effect (on every entry, intentionally),
// and auto-follows fallbackSceneId when every choice is gated out. The chain
// is capped at the campaign's scene count to catch content cycles.
func (e *Engine) enterScene(work *Snapshot, sceneID string) error {
	limit := len(e.campaign.Scenes)
	id := sceneID
	for hop := 0; ; hop++ {
		if hop > limit {
			return fmt.Errorf("%w: starting from scene %q", ErrNavigationCycle, sceneID)
		}
		scene, ok := e.campaign.Scene(id)
		if !ok {
			return fmt.Errorf("scene %q does not exist", id)
		}

		work.VisitedScenes[scene.ID]++
		current := scene.ID
		work.CurrentSceneID = &current

		if scene.OnEnter != nil {
			updated, entries := ApplyEffect(work.Hero, scene.OnEnter)
			work.Hero = updated
			work.Log = append(work.Log, entries...)
		}

		if len(e.nav.SelectableChoices(scene, work.Hero)) > 0 || scene.FallbackSceneID == nil {
			return nil
		}
		id = *scene.FallbackSceneID
	}
}

// Converse sends a prompt to an NPC and records both turns in the session's
// conversation history. Oracle failures degrade to a placeholder reply and
// never surface as errors.
func (e *Engine) Converse(npcID, prompt string) (string, error) {
	if e.snap.Hero == nil {
		return "", ErrNoHero
	}

	reply := fmt.Sprintf("The link crackles without response. (NPC %q is unavailable.)", npcID)
	if e.oracle != nil {
		sheet := e.snap.Hero
		reply = e.oracle.Reply(npcID, prompt, oracle.HeroSnapshot{
			Name:   sheet.Name,
			Status: sheet.Status,
			Resources: oracle.Resources{
				HitPoints:     sheet.Resources.HitPoints,
				TempHitPoints: sheet.Resources.TempHitPoints,
				Inspiration:   sheet.Resources.Inspiration,
			},
			Flags: sheet.Flags,
		})
	}

	e.snap.Conversation[npcID] = append(e.snap.Conversation[npcID],
		ConversationTurn{Speaker: SpeakerPlayer, Text: prompt},
		ConversationTurn{Speaker: SpeakerNPC, Text: reply},
	)
	return reply, nil
}
