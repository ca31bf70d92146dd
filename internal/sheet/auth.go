package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/chingu-voyage/heartbeat/internal/contract"
)

// FileAuthorizer reads a stored credential file and yields its access
// token. The file is the JSON credential captured after an interactive
// OAuth consent flow.
type FileAuthorizer struct {
	path string
}

var _ contract.Authorizer = &FileAuthorizer{} // Compile-time check

// NewFileAuthorizer creates an authorizer backed by the given credential file.
func NewFileAuthorizer(path string) *FileAuthorizer {
	return &FileAuthorizer{path: path}
}

// storedCredential is the subset of the credential file we read.
type storedCredential struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token implements the Authorizer interface.
func (a *FileAuthorizer) Token(_ context.Context) (string, error) {
	if a.path == "" {
		return "", fmt.Errorf("credential file is not configured; pass --client-secret")
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		return "", fmt.Errorf("failed to read credential file %s: %w", a.path, err)
	}

	var cred storedCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		return "", fmt.Errorf("failed to parse credential file %s: %w", a.path, err)
	}
	if cred.AccessToken == "" {
		return "", fmt.Errorf("credential file %s has no access_token", a.path)
	}

	return cred.AccessToken, nil
}
