// Package client implements the interactive account shell.
package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/atinyakov/AccountKeeper/internal/models"
	"github.com/atinyakov/AccountKeeper/internal/service"
	"github.com/atinyakov/AccountKeeper/internal/validation"
)

// Shell reads commands from in and writes results to out.
type Shell struct {
	svc     *service.AccountService
	scanner *bufio.Scanner
	out     io.Writer
}

// NewShell returns a Shell operating on svc.
func NewShell(svc *service.AccountService, in io.Reader, out io.Writer) *Shell {
	return &Shell{svc: svc, scanner: bufio.NewScanner(in), out: out}
}

// Run is the interactive loop. It returns when input ends or on "exit".
func (s *Shell) Run() {
	for {
		fmt.Fprint(s.out, "accounts> ")
		if !s.scanner.Scan() {
			return
		}
		args := strings.Fields(s.scanner.Text())
		if len(args) == 0 {
			continue
		}
		if !s.exec(args) {
			fmt.Fprintln(s.out, "Bye")
			return
		}
	}
}

// exec runs one command and reports whether the loop should continue.
func (s *Shell) exec(args []string) bool {
	switch args[0] {
	case "help":
		fmt.Fprintln(s.out, "Available commands: help, list, add, edit <id>, delete <id>, errors <id>, exit")
	case "list":
		s.list()
	case "add":
		a, err := s.svc.Add()
		switch {
		case errors.Is(err, service.ErrAddBlocked):
			fmt.Fprintln(s.out, "Fill in or delete the incomplete account first")
		case err != nil:
			fmt.Fprintln(s.out, "Failed to save:", err)
		default:
			fmt.Fprintf(s.out, "Account %d added\n", a.ID)
		}
	case "edit":
		id, ok := s.id(args)
		if !ok {
			return true
		}
		s.edit(id)
	case "delete":
		id, ok := s.id(args)
		if !ok {
			return true
		}
		removed, err := s.svc.Remove(id)
		switch {
		case err != nil:
			fmt.Fprintln(s.out, "Failed to save:", err)
		case removed:
			fmt.Fprintln(s.out, "Account deleted")
		default:
			fmt.Fprintln(s.out, "Account not found")
		}
	case "errors":
		id, ok := s.id(args)
		if !ok {
			return true
		}
		s.printErrors(id)
	case "exit":
		return false
	default:
		fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
	}
	return true
}

func (s *Shell) list() {
	accounts := s.svc.List()
	fmt.Fprintf(s.out, "Accounts: %d\n", len(accounts))
	for _, a := range accounts {
		labels := make([]string, len(a.LabelItems))
		for i, l := range a.LabelItems {
			labels[i] = l.Text
		}
		password := "<none>"
		if a.Password != nil {
			password = strings.Repeat("*", len([]rune(*a.Password)))
		}
		fmt.Fprintf(s.out, "ID: %d\nType: %s\nLogin: %s\nPassword: %s\nLabels: [%s]\n---\n",
			a.ID, a.Type, a.Login, password, strings.Join(labels, ", "))
	}
}

func (s *Shell) edit(id int64) {
	var current *models.Account
	for _, a := range s.svc.List() {
		if a.ID == id {
			current = &a
			break
		}
	}
	if current == nil {
		fmt.Fprintln(s.out, "Account not found")
		return
	}

	patch, err := PromptEditAccount(s.scanner, s.out, *current)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	updated, _, err := s.svc.Update(id, patch)
	if err != nil {
		fmt.Fprintln(s.out, "Failed to save:", err)
		return
	}
	fmt.Fprintln(s.out, "Account updated")

	if updated.IsLocal() && updated.Password != nil && *updated.Password != "" &&
		!validation.HasSpecialChar(*updated.Password) {
		fmt.Fprintln(s.out, "Hint: a special character makes the password stronger")
	}
	s.printErrors(id)
}

func (s *Shell) printErrors(id int64) {
	errs, ok := s.svc.Validate(id)
	if !ok {
		fmt.Fprintln(s.out, "Account not found")
		return
	}
	if len(errs) == 0 {
		fmt.Fprintln(s.out, "Account is valid")
		return
	}
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(s.out, "%s: %s\n", f, errs[f])
	}
}

func (s *Shell) id(args []string) (int64, bool) {
	if len(args) < 2 {
		fmt.Fprintf(s.out, "Usage: %s <id>\n", args[0])
		return 0, false
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid id %q\n", args[1])
		return 0, false
	}
	return id, true
}
