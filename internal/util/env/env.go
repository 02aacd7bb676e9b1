// Package env reads and writes the project's .forge/.env file.
//
// The file holds the text-generation settings that should not live in
// config.json: HF_API_TOKEN for the Hugging Face provider, and the
// FORGE_LLM_PROVIDER, FORGE_LLM_MODEL, FORGE_LLM_BASE_URL and
// FORGE_LLM_MAX_TOKENS overrides. A value in the process environment always
// wins over the file.
package env

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Path is the project env file consulted by Get.
var Path = filepath.Join(".forge", ".env")

// Get returns keyName from the process environment, falling back to Path.
func Get(keyName string) string {
	if v := os.Getenv(keyName); v != "" {
		return v
	}
	return Lookup(Path, keyName)
}

// Lookup returns the value of key in the env file at path, or "" when the
// file or the key is missing. When a key repeats, the last line wins.
func Lookup(path, key string) string {
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() { _ = file.Close() }()

	value := ""
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if k, v, ok := parseLine(scanner.Text()); ok && k == key {
			value = v
		}
	}
	return value
}

// Set writes key=value to the env file at path, replacing any existing
// assignment of key and keeping every other line. The file is created with
// owner-only permissions since it holds tokens.
func Set(path, key, value string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	var lines []string
	replaced := false
	if len(data) > 0 {
		for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
			if k, _, ok := parseLine(line); ok && k == key {
				if !replaced {
					lines = append(lines, key+"="+value)
					replaced = true
				}
				continue
			}
			lines = append(lines, line)
		}
	}

	if !replaced {
		if n := len(lines); n > 0 && lines[n-1] != "" {
			lines = append(lines, "")
		}
		lines = append(lines, key+"="+value)
	}

	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600)
}

// parseLine splits an assignment such as `HF_API_TOKEN=hf_x`,
// `export FORGE_LLM_MODEL="google/gemma-2b"` or `KEY='v'`. Comments and
// blank lines report ok == false.
func parseLine(line string) (key, value string, ok bool) {
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
	if n := len(value); n >= 2 && (value[0] == '"' || value[0] == '\'') && value[n-1] == value[0] {
		value = value[1 : n-1]
	}
	return key, value, true
}
