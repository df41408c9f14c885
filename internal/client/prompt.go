package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/AccountKeeper/internal/models"
)

// clearPassword typed at the password prompt removes the password.
const clearPassword = "-"

// PromptEditAccount asks for every editable field of a. An empty answer
// keeps the current value.
func PromptEditAccount(scanner *bufio.Scanner, out io.Writer, a models.Account) (models.AccountPatch, error) {
	var patch models.AccountPatch

	if v, ok := ask(scanner, out, fmt.Sprintf("Labels, separated by ';' [%s]: ", a.Labels)); ok {
		patch.Labels = &v
	}

	if v, ok := ask(scanner, out, fmt.Sprintf("Type (LDAP/Local) [%s]: ", a.Type)); ok {
		t, err := parseType(v)
		if err != nil {
			return models.AccountPatch{}, err
		}
		patch.Type = &t
	}

	if v, ok := ask(scanner, out, fmt.Sprintf("Login [%s]: ", a.Login)); ok {
		patch.Login = &v
	}

	if v, ok := ask(scanner, out, "Password (leave empty to keep, '-' to clear): "); ok {
		if v == clearPassword {
			patch.ClearPassword = true
		} else {
			patch.Password = &v
		}
	}

	return patch, nil
}

func ask(scanner *bufio.Scanner, out io.Writer, prompt string) (string, bool) {
	fmt.Fprint(out, prompt)
	if !scanner.Scan() {
		return "", false
	}
	v := strings.TrimRight(scanner.Text(), "\r")
	return v, v != ""
}

func parseType(s string) (models.AccountType, error) {
	switch {
	case strings.EqualFold(s, string(models.LDAP)):
		return models.LDAP, nil
	case strings.EqualFold(s, string(models.Local)):
		return models.Local, nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}
