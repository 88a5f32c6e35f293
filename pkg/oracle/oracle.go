// Package oracle answers NPC dialogue prompts. Each NPC has a fixed responder
// function keyed by id; the set of NPCs is campaign content, not
// user-extensible, so a plain registry map is enough.
package oracle

import (
	"fmt"
	"sort"
	"strings"
)

// HeroSnapshot is the read-only view of the hero a responder may consult.
type HeroSnapshot struct {
	Name      string          `json:"name"`
	Status    map[string]int  `json:"status"`
	Resources Resources       `json:"resources"`
	Flags     map[string]bool `json:"flags"`
}

// Resources mirrors the hero's spendable pools on the oracle wire.
type Resources struct {
	HitPoints     int `json:"hitPoints"`
	TempHitPoints int `json:"tempHitPoints"`
	Inspiration   int `json:"inspiration"`
}

// ResponderFunc maps a prompt and hero snapshot to NPC dialogue.
type ResponderFunc func(prompt string, hero HeroSnapshot) string

// Registry dispatches dialogue prompts to per-NPC responders.
type Registry struct {
	responders map[string]ResponderFunc
}

// NewRegistry returns a registry with the Emberfall NPCs registered.
func NewRegistry() *Registry {
	return &Registry{
		responders: map[string]ResponderFunc{
			"seraphine": seraphineReply,
			"tamsin":    tamsinReply,
			"marek":     marekReply,
			"nerrix":    nerrixReply,
			"lirael":    liraelReply,
		},
	}
}

// NPCs returns the registered NPC ids in sorted order.
func (r *Registry) NPCs() []string {
	ids := make([]string, 0, len(r.responders))
	for id := range r.responders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reply answers a prompt as the named NPC. Unknown NPC ids get a fixed
// unavailable sentinel rather than an error.
func (r *Registry) Reply(npcID, prompt string, hero HeroSnapshot) string {
	responder, ok := r.responders[npcID]
	if !ok {
		return fmt.Sprintf("The link crackles without response. (NPC %q is unavailable.)", npcID)
	}
	return responder(prompt, hero) + " Also, " + describeState(hero) + "."
}

func describeState(hero HeroSnapshot) string {
	var tensions []string
	if hero.Status["stress"] >= 4 {
		tensions = append(tensions, "your nerves are fraying")
	}
	if hero.Status["wounds"] >= 3 {
		tensions = append(tensions, "your wounds need mending")
	}
	if hero.Status["corruption"] >= 3 {
		tensions = append(tensions, "the Heart’s corruption clings to you")
	}
	if hero.Status["influence"] >= 3 {
		tensions = append(tensions, "Emberfall watches and trusts you")
	}
	if len(tensions) == 0 {
		return "you remain balanced for now"
	}
	return strings.Join(tensions, ", ")
}

func seraphineReply(prompt string, hero HeroSnapshot) string {
	insight := "The threads tremble, awaiting your choice."
	if hero.Flags["empathized_lirael"] || hero.Flags["mapped_spire"] {
		insight = "The threads you have already seen are aligning."
	}
	caution := "Hold fast to compassion; it will steady the Heart."
	if hero.Status["corruption"] > 2 {
		caution = "Guard your spirit; the Heart hungers for you."
	}
	return fmt.Sprintf("I cast your words into the lantern. %s %s", insight, caution)
}

func tamsinReply(prompt string, hero HeroSnapshot) string {
	if strings.Contains(strings.ToLower(prompt), "gadget") {
		return "Gadget? Easy. Slam the actuator twice, then let it cool. If it sparks purple, you did it right."
	}
	vertical := "Wish you had snagged my rig, but you will manage."
	if hero.Flags["vertical_advantage"] {
		vertical = "That climb kit should keep you nimble."
	}
	return "Whatever mess you are in, remember: reroute power, hit the weak points, move fast. " + vertical
}

func marekReply(prompt string, hero HeroSnapshot) string {
	tone := "I still have reservations, but Emberfall needs results."
	if hero.Flags["marek_support"] || hero.Flags["marek_respects"] {
		tone = "You have my trust."
	}
	advice := "Keep a low profile until you secure the Heart."
	if hero.Status["influence"] > 2 {
		advice = "Citizens speak of your deeds. Use that goodwill."
	}
	return tone + " " + advice
}

func nerrixReply(prompt string, hero HeroSnapshot) string {
	if hero.Flags["nerrix_rescued"] {
		return "I have recalibrated the failsafes like we discussed. Give the Heart a harmonic pulse—think of a steady heartbeat."
	}
	if hero.Flags["nerrix_failed"] {
		return "Still waiting here. Hurry, or the containment will snap and we both burn."
	}
	return "If you find me, break the rune lattice from the bottom. The top nodes feed off the lower anchors."
}

func liraelReply(prompt string, hero HeroSnapshot) string {
	if hero.Flags["heart_cleansed"] {
		return "Your resolve steadied the Heart. Together we will guard Emberfall."
	}
	if hero.Flags["heart_shattered"] {
		return "The ember-sky still echoes with our choice. I witness your sacrifice."
	}
	return "The Heart aches. Approach with grace or fury, but know I will answer in kind."
}
