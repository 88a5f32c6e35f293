package engine

import (
	"encoding/json"
	"testing"

	"github.com/jwebster45206/emberfall/pkg/campaign"
	"github.com/jwebster45206/emberfall/pkg/dice"
	"github.com/jwebster45206/emberfall/pkg/hero"
	"github.com/jwebster45206/emberfall/pkg/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource feeds predetermined die faces to the roller.
type scriptedSource struct {
	t     *testing.T
	faces []int
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.faces) == 0 {
		s.t.Fatal("scripted source exhausted")
	}
	face := s.faces[0]
	s.faces = s.faces[1:]
	return face - 1
}

func forcedRoller(t *testing.T, faces ...int) *dice.Roller {
	return dice.NewRollerWithSource(&scriptedSource{t: t, faces: faces})
}

func testBuild() hero.Build {
	return hero.Build{
		Name:          "Rook",
		RaceID:        "human",
		ClassID:       "fighter",
		BackgroundID:  "soldier",
		AbilityScores: hero.DefaultAbilityAssignment("fighter"),
		Skills:        []hero.Skill{hero.Athletics, hero.Perception},
	}
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	c, err := campaign.Default()
	require.NoError(t, err)
	return NewEngine(c, opts...)
}

// moveTo creates a hero and repositions the session at the given scene.
func moveTo(t *testing.T, e *Engine, sceneID string) {
	_, err := e.CreateHero(testBuild())
	require.NoError(t, err)
	snap := e.Snapshot()
	snap.CurrentSceneID = &sceneID
	require.NoError(t, e.Restore(snap))
}

func countEntries(log []LogEntry, et EntryType) int {
	n := 0
	for _, entry := range log {
		if entry.Type == et {
			n++
		}
	}
	return n
}

func TestCreateHero_EntersIntroScene(t *testing.T) {
	e := newTestEngine(t)
	snap, err := e.CreateHero(testBuild())
	require.NoError(t, err)

	require.NotNil(t, snap.CurrentSceneID)
	assert.Equal(t, "intro_arrival", *snap.CurrentSceneID)
	assert.Equal(t, 1, snap.VisitedScenes["intro_arrival"])
	assert.False(t, e.IsComplete())

	// Intro onEnter: stress +1 and one note.
	assert.Equal(t, 1, snap.Hero.Status["stress"])
	assert.Equal(t, 1, countEntries(snap.Log, EntryEffect))
	assert.Equal(t, 0, countEntries(snap.Log, EntryChoice))
}

func TestCreateHero_RejectsBadBuild(t *testing.T) {
	e := newTestEngine(t)
	build := testBuild()
	build.Name = ""
	_, err := e.CreateHero(build)
	require.Error(t, err)

	var verr *hero.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestChooseOption_AutoSuccess(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CreateHero(testBuild())
	require.NoError(t, err)
	before := e.Snapshot()

	snap, err := e.ChooseOption("intro_seek_seraphine")
	require.NoError(t, err)

	require.NotNil(t, snap.CurrentSceneID)
	assert.Equal(t, "seraphine_sanctum", *snap.CurrentSceneID)
	assert.Equal(t, 1, snap.VisitedScenes["seraphine_sanctum"])
	assert.True(t, snap.Hero.HasFlag("met_seraphine"))
	assert.Equal(t, hero.RelationshipAlly, snap.Hero.Allies["seraphine"])
	assert.True(t, snap.Hero.HasItem("Seer’s Charm"))

	assert.Equal(t, countEntries(before.Log, EntryChoice)+1, countEntries(snap.Log, EntryChoice))
	assert.Equal(t, countEntries(before.Log, EntryNarration)+1, countEntries(snap.Log, EntryNarration))
	assert.Equal(t, 0, countEntries(snap.Log, EntryRoll))
}

func TestChooseOption_SkillCheckForcedSuccess(t *testing.T) {
	e := newTestEngine(t, WithRoller(forcedRoller(t, 20)))
	moveTo(t, e, "heart_chamber")
	stressBefore := e.Snapshot().Hero.Status["stress"]

	snap, err := e.ChooseOption("heart_shatter")
	require.NoError(t, err)

	require.NotNil(t, snap.CurrentSceneID)
	assert.Equal(t, "escape_gauntlet", *snap.CurrentSceneID)
	assert.True(t, snap.Hero.HasFlag("heart_shattered"))
	assert.Equal(t, stressBefore+1, snap.Hero.Status["stress"])

	require.Equal(t, 1, countEntries(snap.Log, EntryRoll))
	var roll LogEntry
	for _, entry := range snap.Log {
		if entry.Type == EntryRoll {
			roll = entry
		}
	}
	assert.Equal(t, "athletics (strength) check", roll.Label)
	assert.Contains(t, roll.Detail, "DC 16")
	assert.Contains(t, roll.Detail, "success")
}

func TestChooseOption_SkillCheckForcedFailure(t *testing.T) {
	e := newTestEngine(t, WithRoller(forcedRoller(t, 1)))
	moveTo(t, e, "heart_chamber")

	snap, err := e.ChooseOption("heart_shatter")
	require.NoError(t, err)

	assert.Equal(t, "escape_gauntlet", *snap.CurrentSceneID)
	assert.False(t, snap.Hero.HasFlag("heart_shattered"))
	assert.True(t, snap.Hero.HasFlag("heart_instable"))
	assert.Equal(t, 2, snap.Hero.Status["wounds"])
}

func TestChooseOption_AdvantageDrawsTwoDice(t *testing.T) {
	e := newTestEngine(t, WithRoller(forcedRoller(t, 20, 1)))
	_, err := e.CreateHero(testBuild())
	require.NoError(t, err)

	snap := e.Snapshot()
	snap.Hero.Flags["met_seraphine"] = true
	require.NoError(t, e.Restore(snap))

	got, err := e.ChooseOption("intro_report_thorne")
	require.NoError(t, err)

	assert.Equal(t, "throne_command", *got.CurrentSceneID)
	var roll LogEntry
	for _, entry := range got.Log {
		if entry.Type == EntryRoll {
			roll = entry
		}
	}
	assert.Contains(t, roll.Detail, "dice [20 1]")
	assert.Contains(t, roll.Detail, "kept 20")
}

func TestChooseOption_Gated(t *testing.T) {
	e := newTestEngine(t)
	moveTo(t, e, "marek_clash")

	_, err := e.ChooseOption("marek_ruse")
	assert.ErrorIs(t, err, ErrChoiceGated)
	assert.Equal(t, "marek_clash", *e.Snapshot().CurrentSceneID)

	snap := e.Snapshot()
	snap.Hero.Flags["met_tamsin"] = true
	require.NoError(t, e.Restore(snap))

	scene, ok := e.CurrentScene()
	require.True(t, ok)
	ruse, ok := scene.Choice("marek_ruse")
	require.True(t, ok)
	assert.True(t, e.IsSelectable(ruse))
}

func TestChooseOption_NotFoundLeavesSessionUnchanged(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CreateHero(testBuild())
	require.NoError(t, err)
	before := e.Snapshot()

	_, err = e.ChooseOption("no_such_choice")
	assert.ErrorIs(t, err, ErrChoiceNotFound)

	after := e.Snapshot()
	assert.Equal(t, *before.CurrentSceneID, *after.CurrentSceneID)
	assert.Len(t, after.Log, len(before.Log))
}

func TestChooseOption_TerminalOutcomeCompletesGame(t *testing.T) {
	e := newTestEngine(t)
	moveTo(t, e, "epilogue_resolution")

	snap, err := e.ChooseOption("epilogue_reflect")
	require.NoError(t, err)
	assert.Nil(t, snap.CurrentSceneID)
	assert.True(t, e.IsComplete())

	_, err = e.ChooseOption("epilogue_reflect")
	assert.ErrorIs(t, err, ErrGameAlreadyComplete)
}

func TestChooseOption_NoHero(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.ChooseOption("intro_seek_seraphine")
	assert.ErrorIs(t, err, ErrNoHero)
}

func fallbackFixture() *campaign.Campaign {
	loop := "loop"
	locked := "locked"
	open := "open"
	return &campaign.Campaign{
		ID:           "fixture",
		IntroSceneID: "start",
		Scenes: []campaign.Scene{
			{
				ID: "start", Title: "Start", Narrative: "n",
				Options: []campaign.Choice{
					{ID: "go", Label: "go", AutoSuccess: &campaign.Outcome{ID: "o1", NextSceneID: &loop, Narrative: "n"}},
					{ID: "slip", Label: "slip", AutoSuccess: &campaign.Outcome{ID: "o2", NextSceneID: &locked, Narrative: "n"}},
				},
			},
			{
				ID: "loop", Title: "Loop", Narrative: "n",
				Options: []campaign.Choice{
					{ID: "stuck", Label: "stuck", RequiresFlag: "never_set", AutoSuccess: &campaign.Outcome{ID: "o3", Narrative: "n"}},
				},
				FallbackSceneID: &loop,
			},
			{
				ID: "locked", Title: "Locked", Narrative: "n",
				Options: []campaign.Choice{
					{ID: "barred", Label: "barred", RequiresFlag: "never_set", AutoSuccess: &campaign.Outcome{ID: "o4", Narrative: "n"}},
				},
				FallbackSceneID: &open,
			},
			{
				ID: "open", Title: "Open", Narrative: "n",
				Options: []campaign.Choice{
					{ID: "walk", Label: "walk", AutoSuccess: &campaign.Outcome{ID: "o5", Narrative: "n"}},
				},
			},
		},
	}
}

func TestChooseOption_FallbackCycleDetected(t *testing.T) {
	e := NewEngine(fallbackFixture())
	_, err := e.CreateHero(testBuild())
	require.NoError(t, err)

	_, err = e.ChooseOption("go")
	assert.ErrorIs(t, err, ErrNavigationCycle)

	// Session left at the pre-transition scene.
	assert.Equal(t, "start", *e.Snapshot().CurrentSceneID)
}

func TestChooseOption_FallbackAutoTransition(t *testing.T) {
	e := NewEngine(fallbackFixture())
	_, err := e.CreateHero(testBuild())
	require.NoError(t, err)

	snap, err := e.ChooseOption("slip")
	require.NoError(t, err)
	assert.Equal(t, "open", *snap.CurrentSceneID)
	assert.Equal(t, 1, snap.VisitedScenes["locked"])
	assert.Equal(t, 1, snap.VisitedScenes["open"])
}

func TestConverse(t *testing.T) {
	e := newTestEngine(t, WithOracle(oracle.NewRegistry()))
	_, err := e.CreateHero(testBuild())
	require.NoError(t, err)

	reply, err := e.Converse("lirael", "what do you want?")
	require.NoError(t, err)
	assert.Contains(t, reply, "Also,")

	snap := e.Snapshot()
	turns := snap.Conversation["lirael"]
	require.Len(t, turns, 2)
	assert.Equal(t, SpeakerPlayer, turns[0].Speaker)
	assert.Equal(t, "what do you want?", turns[0].Text)
	assert.Equal(t, SpeakerNPC, turns[1].Speaker)
	assert.Equal(t, reply, turns[1].Text)
}

func TestConverse_UnknownNPCAndMissingOracle(t *testing.T) {
	e := newTestEngine(t, WithOracle(oracle.NewRegistry()))
	_, err := e.CreateHero(testBuild())
	require.NoError(t, err)

	reply, err := e.Converse("ghost", "hello?")
	require.NoError(t, err)
	assert.Contains(t, reply, "unavailable")

	// Without an oracle the engine degrades to the same placeholder.
	bare := newTestEngine(t)
	_, err = bare.CreateHero(testBuild())
	require.NoError(t, err)
	reply, err = bare.Converse("lirael", "hello?")
	require.NoError(t, err)
	assert.Contains(t, reply, "unavailable")
}

func TestConverse_NoHero(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Converse("lirael", "hello?")
	assert.ErrorIs(t, err, ErrNoHero)
}

func TestRestore(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CreateHero(testBuild())
	require.NoError(t, err)
	saved := e.Snapshot()

	fresh := newTestEngine(t)
	require.NoError(t, fresh.Restore(saved))
	assert.Equal(t, *saved.CurrentSceneID, *fresh.Snapshot().CurrentSceneID)

	ghost := "no_such_scene"
	saved.CurrentSceneID = &ghost
	assert.Error(t, fresh.Restore(saved))

	assert.Error(t, fresh.Restore(nil))
}

func TestRestore_NormalizesCollections(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Restore(&Snapshot{}))

	snap := e.Snapshot()
	assert.NotNil(t, snap.Log)
	assert.NotNil(t, snap.VisitedScenes)
	assert.NotNil(t, snap.Conversation)
}

func TestSnapshot_WireFormat(t *testing.T) {
	data, err := json.Marshal(NewSnapshot())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"hero", "currentSceneId", "log", "visitedScenes", "conversation"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "null", string(raw["hero"]))
	assert.Equal(t, "[]", string(raw["log"]))
}

func TestSnapshot_CloneIsolation(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CreateHero(testBuild())
	require.NoError(t, err)

	snap := e.Snapshot()
	snap.Hero.Flags["tampered"] = true
	snap.VisitedScenes["intro_arrival"] = 99

	fresh := e.Snapshot()
	assert.False(t, fresh.Hero.HasFlag("tampered"))
	assert.Equal(t, 1, fresh.VisitedScenes["intro_arrival"])
}

func TestWorldMapIndex(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CreateHero(testBuild())
	require.NoError(t, err)

	idx := e.WorldMapIndex()
	require.NotNil(t, idx)
	require.Len(t, idx.Locations, 14)

	byID := make(map[string]LocationStatus, len(idx.Locations))
	for _, loc := range idx.Locations {
		byID[loc.ID] = loc
	}

	market := byID["emberfall_market"]
	assert.True(t, market.Visited)
	assert.True(t, market.Current)
	assert.Equal(t, 1, market.VisitCount)

	heart := byID["heart_chamber"]
	assert.False(t, heart.Visited)
	assert.False(t, heart.Current)
}

func TestWorldMapIndex_NoMap(t *testing.T) {
	idx := BuildWorldMapIndex(&campaign.Campaign{ID: "x"}, nil, nil)
	assert.Nil(t, idx)
}
