package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jwebster45206/emberfall/internal/storage"
	"github.com/jwebster45206/emberfall/pkg/campaign"
	"github.com/jwebster45206/emberfall/pkg/engine"
	"github.com/jwebster45206/emberfall/pkg/hero"
	"github.com/jwebster45206/emberfall/pkg/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCampaign(t *testing.T) *campaign.Campaign {
	t.Helper()
	c, err := campaign.Default()
	require.NoError(t, err)
	return c
}

func testHeroBuild() hero.Build {
	return hero.Build{
		Name:          "Rook",
		RaceID:        "human",
		ClassID:       "fighter",
		BackgroundID:  "soldier",
		AbilityScores: hero.DefaultAbilityAssignment("fighter"),
		Skills:        []hero.Skill{hero.Athletics, hero.Perception},
	}
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(storage.NewMemoryStorage(), testLogger())
	rr := get(h, "/health")

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "healthy", resp.Components["storage"])
}

func TestCampaignHandler(t *testing.T) {
	h := NewCampaignHandler(testCampaign(t), testLogger())

	rr := get(h, "/v1/campaign")
	assert.Equal(t, http.StatusOK, rr.Code)

	var c campaign.Campaign
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))
	assert.Equal(t, "emberfall-ascent", c.ID)
	assert.Len(t, c.Scenes, 16)

	rr = postJSON(t, h, "/v1/campaign", map[string]string{})
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestOracleHandler(t *testing.T) {
	h := NewOracleHandler(oracle.NewRegistry(), testLogger())

	rr := postJSON(t, h, "/v1/oracle", OracleRequest{
		NPCID:  "lirael",
		Prompt: "what do you guard?",
		Hero: oracle.HeroSnapshot{
			Name:   "Rook",
			Status: map[string]int{"stress": 0},
			Flags:  map[string]bool{},
		},
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp OracleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Reply, "Also,")

	rr = postJSON(t, h, "/v1/oracle", OracleRequest{Prompt: "no npc"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProgressHandler(t *testing.T) {
	store := storage.NewMemoryStorage()
	h := NewProgressHandler(store, testLogger())

	rr := get(h, "/v1/progress/user-1")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	scene := "intro_arrival"
	snap := engine.NewSnapshot()
	snap.CurrentSceneID = &scene
	snap.VisitedScenes["intro_arrival"] = 1

	rr = postJSON(t, h, "/v1/progress/user-1", snap)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = get(h, "/v1/progress/user-1")
	require.Equal(t, http.StatusOK, rr.Code)
	var loaded engine.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loaded))
	require.NotNil(t, loaded.CurrentSceneID)
	assert.Equal(t, "intro_arrival", *loaded.CurrentSceneID)

	req := httptest.NewRequest(http.MethodDelete, "/v1/progress/user-1", nil)
	del := httptest.NewRecorder()
	h.ServeHTTP(del, req)
	assert.Equal(t, http.StatusNoContent, del.Code)

	rr = get(h, "/v1/progress/user-1")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProgressHandler_RejectsTruncatedSnapshot(t *testing.T) {
	h := NewProgressHandler(storage.NewMemoryStorage(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/progress/user-1",
		bytes.NewReader([]byte(`{"currentSceneId":null,"log":[]}`)))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "visitedScenes")
}

func TestProgressHandler_RequiresUserID(t *testing.T) {
	h := NewProgressHandler(storage.NewMemoryStorage(), testLogger())
	rr := get(h, "/v1/progress/")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func newSessionsHandler(t *testing.T) (*SessionsHandler, storage.Storage) {
	store := storage.NewMemoryStorage()
	h := NewSessionsHandler(testCampaign(t), store, oracle.NewRegistry(), testLogger())
	return h, store
}

func TestSessionsHandler_Playthrough(t *testing.T) {
	h, _ := newSessionsHandler(t)

	rr := postJSON(t, h, "/v1/sessions/user-1/hero", testHeroBuild())
	require.Equal(t, http.StatusCreated, rr.Code)

	var snap engine.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	require.NotNil(t, snap.CurrentSceneID)
	assert.Equal(t, "intro_arrival", *snap.CurrentSceneID)
	assert.Equal(t, "Rook", snap.Hero.Name)

	rr = postJSON(t, h, "/v1/sessions/user-1/choice", ChoiceRequest{ChoiceID: "intro_seek_seraphine"})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, "seraphine_sanctum", *snap.CurrentSceneID)
	assert.True(t, snap.Hero.HasFlag("met_seraphine"))

	// Session survives across requests.
	rr = get(h, "/v1/sessions/user-1")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, "seraphine_sanctum", *snap.CurrentSceneID)
}

func TestSessionsHandler_Dialogue(t *testing.T) {
	h, _ := newSessionsHandler(t)

	rr := postJSON(t, h, "/v1/sessions/user-1/hero", testHeroBuild())
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = postJSON(t, h, "/v1/sessions/user-1/dialogue", DialogueRequest{NPCID: "seraphine", Prompt: "what now?"})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp DialogueResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Reply, "lantern")
	require.NotNil(t, resp.Snapshot)
	assert.Len(t, resp.Snapshot.Conversation["seraphine"], 2)
}

func TestSessionsHandler_Errors(t *testing.T) {
	h, _ := newSessionsHandler(t)

	// No session yet.
	rr := get(h, "/v1/sessions/user-1")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = postJSON(t, h, "/v1/sessions/user-1/choice", ChoiceRequest{ChoiceID: "intro_seek_seraphine"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Invalid build.
	build := testHeroBuild()
	build.RaceID = "gnome"
	rr = postJSON(t, h, "/v1/sessions/user-1/hero", build)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Valid session, unknown choice.
	rr = postJSON(t, h, "/v1/sessions/user-1/hero", testHeroBuild())
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = postJSON(t, h, "/v1/sessions/user-1/choice", ChoiceRequest{ChoiceID: "no_such_choice"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Skill-check choice resolves either way.
	rr = postJSON(t, h, "/v1/sessions/user-1/choice", ChoiceRequest{ChoiceID: "intro_report_thorne"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = postJSON(t, h, "/v1/sessions/user-1/choice", ChoiceRequest{ChoiceID: ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
