package app

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL needs. App satisfies it; tests
// provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Name(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Tutorial(ctx context.Context) error
	Keys(ctx context.Context) error
	Reset(ctx context.Context) error
}

// runREPL reads commands from scanner and dispatches them to a until EOF or
// "exit"/"quit".
//
//	Always:
//	  - help                   : show available commands
//	  - whoami                 : print the stored session
//	  - tutorial               : show the tutorial again
//	  - keys                   : list stored preference keys
//	  - reset                  : wipe every stored preference
//	  - exit | quit            : leave the program
//
//	Logged out:
//	  - login                  : authenticate
//
//	Logged in:
//	  - name [text]            : set the display name, clear it when omitted
//	  - profile set <path>     : store an image file as the profile image
//	  - profile clear          : remove the profile image
//	  - profile export <path>  : write the current profile image as PNG
//	  - logout                 : log out
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("mm %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: whoami, name, profile, logout, tutorial, keys, reset, exit")
			} else {
				printlnFn("Available commands: login, whoami, tutorial, keys, reset, exit")
			}

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "name":
			err = a.Name(ctx, args)

		case "profile":
			err = a.Profile(ctx, args)

		case "tutorial":
			err = a.Tutorial(ctx)

		case "keys":
			err = a.Keys(ctx)

		case "reset":
			err = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("error:", err)
		}
	}
}
