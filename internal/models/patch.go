package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalJSON decodes a partial account object. A JSON null password
// clears the password, an absent password leaves it untouched.
func (p *AccountPatch) UnmarshalJSON(data []byte) error {
	var raw struct {
		Labels   *string          `json:"labels"`
		Type     *AccountType     `json:"type"`
		Login    *string          `json:"login"`
		Password *json.RawMessage `json:"password"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.Type != nil && !raw.Type.Valid() {
		return fmt.Errorf("unknown account type %q", *raw.Type)
	}

	*p = AccountPatch{Labels: raw.Labels, Type: raw.Type, Login: raw.Login}

	// encoding/json leaves a *json.RawMessage nil only when the key is absent
	// or the value is null; tell them apart by the raw bytes.
	if raw.Password == nil {
		if hasNullPassword(data) {
			p.ClearPassword = true
		}
		return nil
	}
	var pw string
	if err := json.Unmarshal(*raw.Password, &pw); err != nil {
		return fmt.Errorf("password: %w", err)
	}
	p.Password = &pw
	return nil
}

func hasNullPassword(data []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return false
	}
	v, ok := fields["password"]
	return ok && bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
