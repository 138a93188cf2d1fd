package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// commands is what the loop dispatches to; *App implements it.
type commands interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Categories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	DeleteCategory(ctx context.Context, id string) error
	Records(ctx context.Context, categoryID string) error
	AddRecord(ctx context.Context) error
	DeleteRecord(ctx context.Context, id string) error
	Stats(ctx context.Context) error
}

const (
	guestHelp  = "Available commands: signup, login, exit"
	memberHelp = "Available commands: whoami, categories, addcategory, delcategory <id>, " +
		"records [category_id], addrecord, delrecord <id>, stats, logout, exit"
)

// runREPL reads one command per line until EOF or exit. Command errors are
// printed and the loop goes on.
func runREPL(ctx context.Context, c commands, status func() string, sc *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprintf(out, "lifelog %s > ", status())
		if !sc.Scan() {
			return
		}
		parts := strings.Fields(sc.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var err error
		switch cmd {
		case "help":
			if c.isLoggedIn() {
				fmt.Fprintln(out, memberHelp)
			} else {
				fmt.Fprintln(out, guestHelp)
			}
		case "signup", "register":
			err = c.Signup(ctx)
		case "login":
			err = c.Login(ctx)
		case "logout":
			err = c.Logout(ctx)
		case "whoami":
			err = c.WhoAmI(ctx)
		case "categories", "cats":
			err = c.Categories(ctx)
		case "addcategory":
			err = c.AddCategory(ctx)
		case "delcategory":
			err = needArg(arg, "delcategory <id>", func() error { return c.DeleteCategory(ctx, arg) })
		case "records", "l", "list":
			err = c.Records(ctx, arg)
		case "addrecord":
			err = c.AddRecord(ctx)
		case "delrecord":
			err = needArg(arg, "delrecord <id>", func() error { return c.DeleteRecord(ctx, arg) })
		case "stats":
			err = c.Stats(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	}
}

func needArg(arg, usage string, fn func() error) error {
	if arg == "" {
		return fmt.Errorf("usage: %s", usage)
	}
	return fn()
}
