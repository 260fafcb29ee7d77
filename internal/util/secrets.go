package util

import (
	"encoding/json"
	"fmt"
	"os"
)

type Secrets struct {
	ChatGPTApiKey string `json:"gpt"`
}

// LoadSecrets reads the optional secrets file. A missing file is fine;
// everything in it is optional.
func LoadSecrets() (*Secrets, error) {
	path := os.Getenv("FOLIO_SECRETS_FILE")
	if path == "" {
		path = "secrets.json"
	}

	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Secrets{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read secrets file: %w", err)
	}

	secrets := Secrets{}
	if err := json.Unmarshal(contents, &secrets); err != nil {
		return nil, fmt.Errorf("failed to parse secrets file: %w", err)
	}

	return &secrets, nil
}
