// Package dice resolves d20 skill checks with modifiers, advantage and
// disadvantage. Randomness is injectable so tests can force specific rolls.
package dice

import (
	"math/rand"
	"time"
)

const sides = 20

// Source supplies raw die entropy. math/rand's *Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Roller rolls d20s against difficulty classes.
type Roller struct {
	src Source
}

// NewRoller returns a Roller backed by a time-seeded math/rand source.
func NewRoller() *Roller {
	return &Roller{src: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewRollerWithSource returns a Roller that draws from src.
// Tests use this to force deterministic rolls.
func NewRollerWithSource(src Source) *Roller {
	return &Roller{src: src}
}

// RollResult is the raw outcome of a single d20 roll.
type RollResult struct {
	Dice  []int `json:"dice"`  // every die drawn, in draw order
	Value int   `json:"value"` // the kept die
}

// CheckResult is a resolved skill check.
type CheckResult struct {
	Dice     []int `json:"dice"`
	Roll     int   `json:"roll"`
	Modifier int   `json:"modifier"`
	Total    int   `json:"total"`
	DC       int   `json:"dc"`
	Success  bool  `json:"success"`
}

func (r *Roller) d20() int {
	return r.src.Intn(sides) + 1
}

// Roll draws a d20. With advantage it draws twice and keeps the higher die,
// with disadvantage the lower. Advantage and disadvantage cancel, drawing a
// single die.
func (r *Roller) Roll(advantage, disadvantage bool) RollResult {
	if advantage == disadvantage {
		v := r.d20()
		return RollResult{Dice: []int{v}, Value: v}
	}

	a, b := r.d20(), r.d20()
	kept := max(a, b)
	if disadvantage {
		kept = min(a, b)
	}
	return RollResult{Dice: []int{a, b}, Value: kept}
}

// ResolveCheck rolls against dc with the given flat modifier. The caller is
// responsible for folding ability modifier and proficiency bonus into
// modifier before calling.
func (r *Roller) ResolveCheck(modifier, dc int, advantage, disadvantage bool) CheckResult {
	roll := r.Roll(advantage, disadvantage)
	total := roll.Value + modifier
	return CheckResult{
		Dice:     roll.Dice,
		Roll:     roll.Value,
		Modifier: modifier,
		Total:    total,
		DC:       dc,
		Success:  total >= dc,
	}
}
