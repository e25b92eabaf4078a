package config

import "fmt"

type SecurityConfig interface {
	GetBcryptCost() (int, error)
	GetPasswordPepper() string
	GetPasskeyIssueAttempts() int
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetBcryptCost reads BCRYPT_COST (default 12) and rejects values outside 10-14.
func (Security) GetBcryptCost() (int, error) {
	cost := GetEnvInt("BCRYPT_COST", 12)
	if cost < 10 || cost > 14 {
		return 0, fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cost)
	}
	return cost, nil
}

func (Security) GetPasswordPepper() string {
	return GetEnv("PASSWORD_PEPPER", "")
}

func (Security) GetPasskeyIssueAttempts() int {
	attempts := GetEnvInt("PASSKEY_ISSUE_ATTEMPTS", 5)
	if attempts < 1 {
		return 1
	}
	return attempts
}
