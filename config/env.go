package config

import (
	"os"
)

// Environment is the deployment the catalog API runs in. It selects the
// validation rules and whether Docker secrets are read.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads the environment from CI and ENV. CI=true wins.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch env := Environment(os.Getenv("ENV")); env {
	case Production, Test, Development:
		return env
	default:
		return Development
	}
}

// ReadsSecrets reports whether Docker secret files override plain variables.
// CI runners inject everything through the environment.
func (e Environment) ReadsSecrets() bool {
	return e != CI
}

// ReleaseMode reports whether gin runs in release mode.
func (e Environment) ReleaseMode() bool {
	return e == Production
}
