package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queueSource feeds predetermined die faces to the roller. Values are the
// faces themselves, so a queued 20 rolls a natural 20.
type queueSource struct {
	t     *testing.T
	queue []int
}

func (q *queueSource) Intn(n int) int {
	if len(q.queue) == 0 {
		q.t.Fatal("roller drew more dice than queued")
	}
	v := q.queue[0]
	q.queue = q.queue[1:]
	return v - 1
}

func TestRoll_SingleDie(t *testing.T) {
	src := &queueSource{t: t, queue: []int{13}}
	r := NewRollerWithSource(src)

	res := r.Roll(false, false)
	assert.Equal(t, 13, res.Value)
	assert.Equal(t, []int{13}, res.Dice)
	assert.Empty(t, src.queue)
}

func TestRoll_Advantage(t *testing.T) {
	r := NewRollerWithSource(&queueSource{t: t, queue: []int{4, 17}})
	res := r.Roll(true, false)
	assert.Equal(t, 17, res.Value)
	assert.Equal(t, []int{4, 17}, res.Dice)
}

func TestRoll_Disadvantage(t *testing.T) {
	r := NewRollerWithSource(&queueSource{t: t, queue: []int{4, 17}})
	res := r.Roll(false, true)
	assert.Equal(t, 4, res.Value)
	assert.Equal(t, []int{4, 17}, res.Dice)
}

func TestRoll_AdvantageBeatsDisadvantageForSameDice(t *testing.T) {
	// For any underlying pair, advantage keeps a die >= what disadvantage keeps.
	pairs := [][2]int{{1, 20}, {20, 1}, {7, 7}, {3, 12}, {19, 2}}
	for _, p := range pairs {
		adv := NewRollerWithSource(&queueSource{t: t, queue: []int{p[0], p[1]}}).Roll(true, false)
		dis := NewRollerWithSource(&queueSource{t: t, queue: []int{p[0], p[1]}}).Roll(false, true)
		assert.GreaterOrEqual(t, adv.Value, dis.Value, "pair %v", p)
	}
}

func TestRoll_AdvantageAndDisadvantageCancel(t *testing.T) {
	// Both set draws exactly one die's worth of entropy.
	src := &queueSource{t: t, queue: []int{9}}
	res := NewRollerWithSource(src).Roll(true, true)
	assert.Equal(t, 9, res.Value)
	assert.Len(t, res.Dice, 1)
	assert.Empty(t, src.queue)
}

func TestResolveCheck(t *testing.T) {
	tests := []struct {
		name         string
		queue        []int
		modifier     int
		dc           int
		advantage    bool
		disadvantage bool
		wantTotal    int
		wantSuccess  bool
	}{
		{"meets dc exactly", []int{12}, 4, 16, false, false, 16, true},
		{"misses by one", []int{12}, 3, 16, false, false, 15, false},
		{"negative modifier", []int{10}, -1, 10, false, false, 9, false},
		{"advantage rescues", []int{2, 18}, 1, 15, true, false, 19, true},
		{"disadvantage sinks", []int{2, 18}, 1, 15, false, true, 3, false},
		{"nat 20 vs dc 16", []int{20}, 3, 16, false, false, 23, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRollerWithSource(&queueSource{t: t, queue: tt.queue})
			res := r.ResolveCheck(tt.modifier, tt.dc, tt.advantage, tt.disadvantage)
			assert.Equal(t, tt.wantTotal, res.Total)
			assert.Equal(t, tt.wantSuccess, res.Success)
			assert.Equal(t, tt.dc, res.DC)
			assert.Equal(t, tt.modifier, res.Modifier)
		})
	}
}

func TestNewRoller_StaysInRange(t *testing.T) {
	r := NewRoller()
	for i := 0; i < 1000; i++ {
		res := r.Roll(i%2 == 0, i%3 == 0)
		require.GreaterOrEqual(t, res.Value, 1)
		require.LessOrEqual(t, res.Value, 20)
	}
}
