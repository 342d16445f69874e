package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"mealscan_backend/internal/app/di"
	"mealscan_backend/internal/feature/auth/domain/entity"
)

// userLookup reads accounts directly from the store.
type userLookup interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ListAll(ctx context.Context) ([]entity.User, error)
}

// command is one parsed subcommand.
type command struct {
	name     string
	email    string
	password string
	role     string
}

func parseCommand(name string, args []string) (*command, error) {
	cmd := &command{name: name}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cmd.email, "email", "", "account email")

	switch name {
	case "reset-password":
		fs.StringVar(&cmd.password, "password", "", "new password (at least 6 characters)")
	case "change-role":
		fs.StringVar(&cmd.role, "role", "", "STUDENT, MESS_CONTRACTOR or CANTEEN_CONTRACTOR")
	case "delete-user", "list-users":
	default:
		return nil, fmt.Errorf("unknown command %q", name)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.email == "" && name != "list-users" {
		return nil, errors.New("-email is required")
	}
	if name == "reset-password" && cmd.password == "" {
		return nil, errors.New("-password is required")
	}
	if name == "change-role" && cmd.role == "" {
		return nil, errors.New("-role is required")
	}
	return cmd, nil
}

func (c *command) exec(ctx context.Context, app *di.App, users userLookup, out io.Writer) error {
	switch c.name {
	case "list-users":
		return listUsers(ctx, users, out)
	case "reset-password":
		return app.Auth.ResetPassword(ctx, c.email, c.password)
	case "change-role":
		return app.Auth.ChangeRole(ctx, c.email, c.role)
	case "delete-user":
		u, err := users.FindByEmail(ctx, c.email)
		if err != nil {
			return err
		}
		// actor 0 is never a real account, so the self-deletion guard never fires
		return app.Users.Delete(ctx, 0, u.ID)
	}
	return fmt.Errorf("unknown command %q", c.name)
}

// listUsers prints every account, grouped by role.
func listUsers(ctx context.Context, users userLookup, out io.Writer) error {
	all, err := users.ListAll(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tROLE\tEMAIL\tNAME")
	for _, u := range all {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Role, u.Email, u.Name)
	}
	return w.Flush()
}
