// Package models defines the core data structures for account records.
package models

// AccountType selects how an account authenticates.
type AccountType string

const (
	// LDAP accounts authenticate externally and carry no local password.
	LDAP AccountType = "LDAP"
	// Local accounts authenticate with a locally stored password.
	Local AccountType = "Local"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	return t == LDAP || t == Local
}

// LabelItem is a single label derived from Account.Labels.
type LabelItem struct {
	Text string `json:"text"`
}

// Account holds credential metadata for a single entry of the list.
type Account struct {
	// ID is unique within the list and assigned at creation time.
	ID int64 `json:"id"`
	// Labels is the semicolon-separated label string as the user typed it.
	Labels string `json:"labels"`
	// LabelItems is derived from Labels and must never be edited directly.
	LabelItems []LabelItem `json:"labelItems"`
	// Type is either LDAP or Local.
	Type AccountType `json:"type"`
	// Login is the account's user name.
	Login string `json:"login"`
	// Password is nil for accounts without a password (LDAP).
	Password *string `json:"password"`
	// CachedPassword remembers the last local password while the account is LDAP.
	CachedPassword *string `json:"cachedPassword,omitempty"`
}

// Clone returns a deep copy of a.
func (a Account) Clone() Account {
	c := a
	c.LabelItems = make([]LabelItem, len(a.LabelItems))
	copy(c.LabelItems, a.LabelItems)
	c.Password = clonePtr(a.Password)
	c.CachedPassword = clonePtr(a.CachedPassword)
	return c
}

// IsLocal reports whether the account requires a local password.
func (a Account) IsLocal() bool {
	return a.Type == Local
}

// AccountPatch is a partial update of an Account. Nil fields are left
// untouched.
type AccountPatch struct {
	Labels   *string
	Type     *AccountType
	Login    *string
	Password *string
	// ClearPassword sets the password to nil. It wins over Password.
	ClearPassword bool
}

// SetsPassword reports whether the patch supplies a password value.
func (p AccountPatch) SetsPassword() bool {
	return p.Password != nil || p.ClearPassword
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
