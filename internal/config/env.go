package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv reads envVar with parse. Unset, empty or unparsable values yield defaultVal.
func parseEnv[T any](envVar string, defaultVal T, parse func(string) (T, error)) T {
	val, ok := os.LookupEnv(envVar)
	if !ok || val == "" {
		return defaultVal
	}
	parsed, err := parse(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

func parseString(envVar, defaultVal string) string {
	return parseEnv(envVar, defaultVal, func(s string) (string, error) { return s, nil })
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	return parseEnv(envVar, defaultVal, time.ParseDuration)
}

func parseInt(envVar string, defaultVal int) int {
	return parseEnv(envVar, defaultVal, strconv.Atoi)
}

func parseBool(envVar string, defaultVal bool) bool {
	return parseEnv(envVar, defaultVal, strconv.ParseBool)
}
