package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-interview-server/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	for _, v := range []string{"PORT", "ENV", "DATABASE_URL", "EVALUATOR", "EVALUATION_LATENCY", "BCRYPT_COST", "PASSKEY_ISSUE_ATTEMPTS", "ALLOWED_ORIGINS", "SESSION_RETENTION"} {
		t.Setenv(v, "")
	}
	c := config.New()

	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "DEV", c.GetEnv())
	require.Empty(t, c.GetDatabaseURL())
	require.Equal(t, config.EvaluatorPlaceholder, c.GetEvaluator())
	require.Equal(t, 800*time.Millisecond, c.GetEvaluationLatency())
	require.Equal(t, 5, c.GetPasskeyIssueAttempts())
	require.Equal(t, 10*time.Minute, c.GetSessionRetention())
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("http://localhost:3000"))

	cost, err := c.GetBcryptCost()
	require.NoError(t, err)
	require.Equal(t, 12, cost)
}

func TestOverrides(t *testing.T) {
	t.Setenv("PORT", ":9000")
	t.Setenv("EVALUATION_LATENCY", "0s")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("PASSKEY_ISSUE_ATTEMPTS", "0")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	c := config.New()

	require.Equal(t, ":9000", c.GetPort())
	require.Equal(t, time.Duration(0), c.GetEvaluationLatency())
	require.True(t, c.GetLogJSON())
	require.Equal(t, 1, c.GetPasskeyIssueAttempts())
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("https://b.example"))
}

func TestBcryptCostRange(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{name: "lower bound", value: "10", want: 10},
		{name: "upper bound", value: "14", want: 14},
		{name: "too low", value: "9", wantErr: true},
		{name: "too high", value: "15", wantErr: true},
		{name: "not a number falls back to default", value: "abc", want: 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.value)
			cost, err := config.New().GetBcryptCost()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, cost)
		})
	}
}
