package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"calmirror/internal"
)

const DefaultWindowDays = 31

// Config is the whole run configuration: the accounts the rules may
// reference and the ordered list of sync rules. It is loaded once and passed
// around explicitly; nothing in the engine reads it from package state.
type Config struct {
	// CredentialsFile is the OAuth client credentials JSON used for
	// interactive logins.
	CredentialsFile string `yaml:"credentials_file,omitempty"`

	// WindowDays is the look-ahead window queried on both endpoints,
	// relative to wall-clock now.
	WindowDays int `yaml:"window_days,omitempty"`

	Accounts  map[string]*internal.Account `yaml:"accounts"`
	SyncRules []internal.Rule              `yaml:"sync_rules"`
}

func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", filename, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing: %w", err)
	}

	for id, acc := range cfg.Accounts {
		acc.ID = id
		if acc.AuthMode == "" {
			acc.AuthMode = internal.AuthOAuth
		}
		if acc.CalendarID == "" {
			acc.CalendarID = "primary"
		}
	}
	if cfg.WindowDays == 0 {
		cfg.WindowDays = DefaultWindowDays
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("config: no accounts defined")
	}
	if len(c.SyncRules) == 0 {
		return fmt.Errorf("config: no sync rules defined")
	}
	if c.WindowDays < 0 {
		return fmt.Errorf("config: window_days must be positive")
	}
	for id, acc := range c.Accounts {
		if !acc.AuthMode.Valid() {
			return fmt.Errorf("config: account %q: unknown auth_type %q", id, acc.AuthMode)
		}
		if acc.AuthMode == internal.AuthServiceAccount && acc.ServiceAccountFile == "" {
			return fmt.Errorf("config: account %q: auth_type service_account requires service_account_file", id)
		}
	}
	for i, rule := range c.SyncRules {
		if _, ok := c.Accounts[rule.Source]; !ok {
			return fmt.Errorf("config: rule #%d: unknown source account %q", i+1, rule.Source)
		}
		if _, ok := c.Accounts[rule.Destination]; !ok {
			return fmt.Errorf("config: rule #%d: unknown destination account %q", i+1, rule.Destination)
		}
		if rule.Source == rule.Destination {
			return fmt.Errorf("config: rule #%d: source and destination are the same account %q", i+1, rule.Source)
		}
	}
	return nil
}

// RequiredAccounts returns the accounts referenced by at least one rule,
// sorted by id.
func (c Config) RequiredAccounts() []*internal.Account {
	ids := map[string]struct{}{}
	for _, rule := range c.SyncRules {
		ids[rule.Source] = struct{}{}
		ids[rule.Destination] = struct{}{}
	}

	res := make([]*internal.Account, 0, len(ids))
	for id := range ids {
		res = append(res, c.Accounts[id])
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].ID < res[j].ID
	})
	return res
}
