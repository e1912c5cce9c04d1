package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR_NAME} patterns in config values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw config value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(strings.TrimSpace(rawValue))
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// ResolveSecret resolves a secret config value. A pure ${VAR} reference is
// read from the environment; anything else is returned trimmed.
func ResolveSecret(rawValue string) string {
	if name, ok := DetectEnvVar(rawValue); ok {
		return strings.TrimSpace(os.Getenv(name))
	}
	return strings.TrimSpace(rawValue)
}
