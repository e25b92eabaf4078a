package questions

import (
	"fmt"
	"strings"
	"time"
)

// Tier is a difficulty level. It governs question selection, time limit and score weighting.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// Tiers lists every tier from easiest to hardest.
var Tiers = []Tier{TierEasy, TierMedium, TierHard}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	for _, known := range Tiers {
		if t == known {
			return true
		}
	}
	return false
}

// Label is the upper-cased tier name shown to candidates.
func (t Tier) Label() string {
	return strings.ToUpper(string(t))
}

// Slot is one position in the interview: its tier and how long the candidate has to answer.
type Slot struct {
	Tier      Tier
	TimeLimit time.Duration
}

var schedule = []Slot{
	{Tier: TierEasy, TimeLimit: 20 * time.Second},
	{Tier: TierEasy, TimeLimit: 20 * time.Second},
	{Tier: TierMedium, TimeLimit: 60 * time.Second},
	{Tier: TierMedium, TimeLimit: 60 * time.Second},
	{Tier: TierHard, TimeLimit: 120 * time.Second},
	{Tier: TierHard, TimeLimit: 120 * time.Second},
}

// Total is the number of questions in every interview.
var Total = len(schedule)

// Schedule returns a copy of the fixed question schedule.
func Schedule() []Slot {
	out := make([]Slot, len(schedule))
	copy(out, schedule)
	return out
}

// SlotAt returns the slot for the 0-based ordinal.
func SlotAt(ordinal int) (Slot, error) {
	if ordinal < 0 || ordinal >= len(schedule) {
		return Slot{}, fmt.Errorf("question ordinal %d out of range [0,%d)", ordinal, len(schedule))
	}
	return schedule[ordinal], nil
}

// Question is an issued question.
type Question struct {
	Ordinal   int
	Text      string
	Tier      Tier
	TimeLimit time.Duration
}

// Prompt formats the question the way it is shown in the transcript.
func (q Question) Prompt() string {
	return fmt.Sprintf("Question %d/%d (%s): %s", q.Ordinal+1, Total, q.Tier.Label(), q.Text)
}
