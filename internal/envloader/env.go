package envloader

import (
	"bufio"
	"log/slog"
	"os"
	"strings"
)

// LoadDotEnv loads KEY=value pairs from a .env file into the process
// environment. Variables already set in the environment win over the file.
// It returns the number of variables applied.
func LoadDotEnv(path string) int {
	file, err := os.Open(path)
	if err != nil {
		slog.Debug("[ENV] No .env file loaded", "path", path)
		return 0
	}
	defer file.Close()

	applied := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			slog.Warn("[ENV] Failed to set variable", "key", key, "err", err)
			continue
		}
		applied++
	}
	if err := scanner.Err(); err != nil {
		slog.Warn("[ENV] Failed to read .env file", "path", path, "err", err)
	}
	slog.Debug("[ENV] Loaded .env file", "path", path, "vars", applied)
	return applied
}

// parseLine handles `KEY=value`, `export KEY=value` and quoted values.
// Comments and malformed lines are skipped.
func parseLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		if q := value[0]; (q == '"' || q == '\'') && value[len(value)-1] == q {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}
