package questions_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-interview-server/questions"
	"github.com/stretchr/testify/require"
)

func TestSchedule(t *testing.T) {
	slots := questions.Schedule()
	require.Len(t, slots, 6)
	require.Equal(t, 6, questions.Total)

	wantTiers := []questions.Tier{
		questions.TierEasy, questions.TierEasy,
		questions.TierMedium, questions.TierMedium,
		questions.TierHard, questions.TierHard,
	}
	wantLimits := []time.Duration{20, 20, 60, 60, 120, 120}
	for i, slot := range slots {
		require.Equal(t, wantTiers[i], slot.Tier, "tier at %d", i)
		require.Equal(t, wantLimits[i]*time.Second, slot.TimeLimit, "limit at %d", i)
	}

	slots[0].Tier = questions.TierHard
	require.Equal(t, questions.TierEasy, questions.Schedule()[0].Tier, "Schedule must return a copy")

	_, err := questions.SlotAt(6)
	require.Error(t, err)
	_, err = questions.SlotAt(-1)
	require.Error(t, err)
}

func TestDefaultBankIsDeterministic(t *testing.T) {
	bank := questions.DefaultBank()

	q0, err := bank.Question(questions.TierEasy, 0)
	require.NoError(t, err)
	require.Equal(t, "What is the difference between let, const, and var?", q0)

	q1, err := bank.Question(questions.TierEasy, 1)
	require.NoError(t, err)
	require.Equal(t, "Explain what React hooks are.", q1)

	again, err := bank.Question(questions.TierEasy, 2)
	require.NoError(t, err)
	require.Equal(t, q0, again, "pool wraps around")
}

func TestIssue(t *testing.T) {
	bank := questions.DefaultBank()

	q, err := bank.Issue(4)
	require.NoError(t, err)
	require.Equal(t, questions.TierHard, q.Tier)
	require.Equal(t, 120*time.Second, q.TimeLimit)
	require.Equal(t, "Design a rate limiting system for an API.", q.Text)
	require.Equal(t, "Question 5/6 (HARD): Design a rate limiting system for an API.", q.Prompt())

	_, err = bank.Issue(6)
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	bank, err := questions.Parse([]byte(`
easy:
  - What is a goroutine?
medium:
  - Explain channels.
  - "  "
hard:
  - Design a job scheduler.
`))
	require.NoError(t, err)

	q, err := bank.Question(questions.TierMedium, 3)
	require.NoError(t, err)
	require.Equal(t, "Explain channels.", q, "blank entries are dropped")
}

func TestParseRejectsEmptyTier(t *testing.T) {
	_, err := questions.Parse([]byte("easy: [a]\nmedium: [b]\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "tier hard has no questions")

	_, err = questions.Parse([]byte("easy: [a"))
	require.Error(t, err)
}

func TestNewBankRejectsUnknownTier(t *testing.T) {
	_, err := questions.NewBank(map[questions.Tier][]string{
		questions.TierEasy:   {"a"},
		questions.TierMedium: {"b"},
		questions.TierHard:   {"c"},
		"expert":             {"d"},
	})
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("easy: [a]\nmedium: [b]\nhard: [c]\n"), 0o600))

	bank, err := questions.LoadFile(path)
	require.NoError(t, err)
	q, err := bank.Question(questions.TierHard, 5)
	require.NoError(t, err)
	require.Equal(t, "c", q)

	_, err = questions.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
