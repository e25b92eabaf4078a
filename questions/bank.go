package questions

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bank holds the question pool for every tier.
type Bank struct {
	pools map[Tier][]string
}

// DefaultBank returns the built-in question pools.
func DefaultBank() *Bank {
	return &Bank{pools: map[Tier][]string{
		TierEasy: {
			"What is the difference between let, const, and var?",
			"Explain what React hooks are.",
		},
		TierMedium: {
			"How would you optimize a React application?",
			"Explain the event loop in Node.js.",
		},
		TierHard: {
			"Design a rate limiting system for an API.",
			"How would you implement server-side rendering (SSR)?",
		},
	}}
}

// NewBank validates the pools and returns a Bank. Every tier needs at least one question.
func NewBank(pools map[Tier][]string) (*Bank, error) {
	b := &Bank{pools: make(map[Tier][]string, len(Tiers))}
	for tier := range pools {
		if !tier.Valid() {
			return nil, fmt.Errorf("unknown tier %q", tier)
		}
	}
	for _, tier := range Tiers {
		var pool []string
		for _, q := range pools[tier] {
			if q = strings.TrimSpace(q); q != "" {
				pool = append(pool, q)
			}
		}
		if len(pool) == 0 {
			return nil, fmt.Errorf("tier %s has no questions", tier)
		}
		b.pools[tier] = pool
	}
	return b, nil
}

// Question returns the question for the tier and 0-based ordinal. The pool wraps around.
func (b *Bank) Question(tier Tier, ordinal int) (string, error) {
	pool := b.pools[tier]
	if len(pool) == 0 {
		return "", fmt.Errorf("no questions for tier %q", tier)
	}
	if ordinal < 0 {
		return "", fmt.Errorf("negative question ordinal %d", ordinal)
	}
	return pool[ordinal%len(pool)], nil
}

// Issue resolves the slot and question text for the ordinal.
func (b *Bank) Issue(ordinal int) (Question, error) {
	slot, err := SlotAt(ordinal)
	if err != nil {
		return Question{}, err
	}
	text, err := b.Question(slot.Tier, ordinal)
	if err != nil {
		return Question{}, err
	}
	return Question{Ordinal: ordinal, Text: text, Tier: slot.Tier, TimeLimit: slot.TimeLimit}, nil
}

type bankFile struct {
	Easy   []string `yaml:"easy"`
	Medium []string `yaml:"medium"`
	Hard   []string `yaml:"hard"`
}

// Parse reads a YAML question bank.
func Parse(data []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	bank, err := NewBank(map[Tier][]string{
		TierEasy:   f.Easy,
		TierMedium: f.Medium,
		TierHard:   f.Hard,
	})
	if err != nil {
		return nil, fmt.Errorf("validate question bank: %w", err)
	}
	return bank, nil
}

// LoadFile reads a YAML question bank from disk.
func LoadFile(filename string) (*Bank, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read question bank %s: %w", filename, err)
	}
	return Parse(data)
}
