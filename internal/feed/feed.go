// Package feed loads the raw GitHub event feed and the admin account list
// from their JSON extract files.
package feed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chingu-voyage/heartbeat/schema"
)

// adminsKey is the top-level property of the admin list file.
const adminsKey = "gh-admin-accounts"

// LoadEventFeed reads and decodes an event feed extract.
func LoadEventFeed(path string) (schema.EventFeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event feed: %w", err)
	}
	var feed schema.EventFeed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("decode event feed %s: %w", path, err)
	}
	return feed, nil
}

// LoadAdminList reads the admin account list. An empty path means no
// admins are excluded.
func LoadAdminList(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read admin list: %w", err)
	}
	var doc map[string][]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode admin list %s: %w", path, err)
	}
	accounts, ok := doc[adminsKey]
	if !ok {
		return nil, fmt.Errorf("admin list %s is missing the %q property", path, adminsKey)
	}
	return accounts, nil
}
