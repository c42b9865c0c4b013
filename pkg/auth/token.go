// Package auth stores and retrieves the service credentials used by
// the scoring pipeline: the GitHub API token and the LLM evaluator API
// key. Secrets live in the OS keychain, with an environment variable
// and a legacy file under the app home dir as fallbacks.
package auth

import (
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/zalando/go-keyring"
)

const (
	keyringService = "modeltrust"

	// KeyGitHubToken identifies the GitHub API token secret.
	KeyGitHubToken = "github_token"
	// KeyLLMAPIKey identifies the LLM evaluator API key secret.
	KeyLLMAPIKey = "genai_api_key"
)

// envNames maps secret identifiers to their environment overrides,
// checked in order.
var envNames = map[string][]string{
	KeyGitHubToken: {"GITHUB_TOKEN", "GITHUB_ACCESS_TOKEN"},
	KeyLLMAPIKey:   {"GEN_AI_STUDIO_API_KEY"},
}

// Save stores a secret in the OS keychain, falling back to a file in
// the app home dir when no keychain is available.
func Save(homeDir, name, secret string) error {
	if name == "" || secret == "" {
		return errors.New("secret name and value required")
	}

	if err := keyring.Set(keyringService, name, secret); err != nil {
		log.Warnf("keychain unavailable, falling back to file: %v", err)
		return saveFile(homeDir, name, secret)
	}

	// Clean up the legacy file if one exists.
	os.Remove(path.Join(homeDir, name))

	return nil
}

// Get retrieves a secret: environment first, then the OS keychain,
// then the legacy file. File hits are migrated to the keychain.
func Get(homeDir, name string) (string, error) {
	for _, env := range envNames[name] {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v, nil
		}
	}

	secret, err := keyring.Get(keyringService, name)
	if err == nil && secret != "" {
		return secret, nil
	}

	secret, err = getFile(homeDir, name)
	if err != nil {
		return "", err
	}

	if migrateErr := keyring.Set(keyringService, name, secret); migrateErr == nil {
		log.Infof("migrated %s from file to OS keychain", name)
		os.Remove(path.Join(homeDir, name))
	}

	return secret, nil
}

func saveFile(homeDir, name, secret string) error {
	p := path.Join(homeDir, name)
	if err := os.WriteFile(p, []byte(secret), 0600); err != nil {
		return errors.Wrapf(err, "failed to write secret file: %s", p)
	}
	return nil
}

func getFile(homeDir, name string) (string, error) {
	p := path.Join(homeDir, name)
	b, err := os.ReadFile(p)
	if err != nil {
		return "", errors.Wrapf(err, "no stored secret for %s", name)
	}
	return strings.TrimSpace(string(b)), nil
}
