package internal

type AuthMode string

func (m AuthMode) String() string {
	return string(m)
}

var (
	AuthOAuth          AuthMode = "oauth"
	AuthServiceAccount AuthMode = "service_account"
)

func (m AuthMode) Valid() bool {
	switch m {
	case AuthOAuth, AuthServiceAccount:
		return true
	}
	return false
}

// Account is one calendar account on the remote service. ID is the key the
// account is declared under in the configuration; CalendarID is the calendar
// used on that account, "primary" unless overridden.
type Account struct {
	ID                 string   `yaml:"-"`
	Email              string   `yaml:"email"`
	AuthMode           AuthMode `yaml:"auth_type"`
	ServiceAccountFile string   `yaml:"service_account_file,omitempty"`
	CalendarID         string   `yaml:"calendar_id,omitempty"`
}

func (a Account) String() string {
	if a.Email != "" {
		return a.ID + " (" + a.Email + ")"
	}
	return a.ID
}
