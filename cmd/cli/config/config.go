package config

import (
	"os"
	"path/filepath"
)

const defaultAPIURL = "http://localhost:5000"
const tokenFileName = ".fundflow_token"

// APIURL returns the base URL for the FundFlow API.
// It can be overridden with the FUNDFLOW_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("FUNDFLOW_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// SaveToken stores the JWT token in the user's home directory for later commands.
func SaveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

// LoadToken reads the stored JWT token. Returns an error if the user never logged in.
func LoadToken() (string, error) {
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RemoveToken deletes the stored token (logout).
func RemoveToken() error {
	return os.Remove(tokenPath())
}

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
