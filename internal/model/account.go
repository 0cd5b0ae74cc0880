package model

// Role names used by the remote API. Role checks in this module are UI
// conveniences, the API enforces authorization.
const (
	RoleAdmin     = "admin"
	RoleDataEntry = "data_entry"
)

// User is an operator account.
type User struct {
	ID       string `json:"_id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

// Settings are the per-user preferences stored by the API.
type Settings struct {
	EmailNotifications bool   `json:"emailNotifications"`
	PushNotifications  bool   `json:"pushNotifications"`
	AutoSave           bool   `json:"autoSave"`
	Theme              string `json:"theme"`
	DateFormat         string `json:"dateFormat"`
}

// DefaultSettings mirrors the preferences applied before the API answers.
func DefaultSettings() Settings {
	return Settings{
		EmailNotifications: true,
		PushNotifications:  false,
		AutoSave:           true,
		Theme:              "light",
		DateFormat:         "DD/MM/YYYY",
	}
}

// Credentials are posted to the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the login response.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Location is a burial location managed by operators.
type Location struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

// DefaultLocations are always offered and cannot be deleted.
var DefaultLocations = []string{"Block A", "Main", "Block B", "Lan'gata"}

// IsDefaultLocation reports whether name is one of DefaultLocations.
func IsDefaultLocation(name string) bool {
	for _, l := range DefaultLocations {
		if l == name {
			return true
		}
	}
	return false
}
