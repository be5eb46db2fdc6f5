package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dmitrijs2005/mymemory/internal/client/session"
	"github.com/dmitrijs2005/mymemory/internal/common"
)

// Swapped in tests.
var (
	readAccount  = func(r *bufio.Reader, w io.Writer) (string, error) { return promptLine(r, "account", w) }
	readPassword = func(w io.Writer) ([]byte, error) { return promptSecret("password", w) }
)

var (
	errNotLoggedIn     = errors.New("not logged in")
	errAlreadyLoggedIn = errors.New("already logged in, logout first")
)

const tutorialText = `MyMemory keeps your account on this device.
  1. 'login' with your account and password.
  2. 'name <text>' changes the name shown for you.
  3. 'profile set <file>' picks a profile picture.
  4. 'logout' forgets everything except that you saw this tutorial.`

// Login prompts for account and password and hands them to the session store.
// The password bytes are wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if a.store.IsLoggedIn(ctx) {
		return errAlreadyLoggedIn
	}

	account, err := readAccount(a.reader, a.out)
	if err != nil {
		return err
	}

	password, err := readPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ok, err := a.store.Login(ctx, account, string(password))
	if err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Login unsuccessful: wrong account or password")
		return nil
	}

	name, _ := a.store.Name(ctx)
	fmt.Fprintf(a.out, "Welcome, %s!\n", name)
	return nil
}

// Logout clears the stored session.
func (a *App) Logout(ctx context.Context) error {
	if _, err := a.store.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints every stored session field.
func (a *App) WhoAmI(ctx context.Context) error {
	us := a.store.Snapshot(ctx)
	if !us.LoggedIn {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	name := "-"
	if us.Name != nil {
		name = *us.Name
	}
	profile := "default"
	if us.HasProfile {
		profile = "custom"
	}
	fmt.Fprintf(a.out, "id:      %d\naccount: %s\nname:    %s\nprofile: %s\n",
		us.LoginID, *us.Account, name, profile)
	return nil
}

// Name sets the display name to the joined args, or clears it without args.
func (a *App) Name(ctx context.Context, args []string) error {
	if !a.store.IsLoggedIn(ctx) {
		return errNotLoggedIn
	}
	if len(args) == 0 {
		return a.store.SetName(ctx, nil)
	}
	name := strings.Join(args, " ")
	return a.store.SetName(ctx, &name)
}

// Profile handles "profile set <path>", "profile clear" and
// "profile export <path>".
func (a *App) Profile(ctx context.Context, args []string) error {
	if !a.store.IsLoggedIn(ctx) {
		return errNotLoggedIn
	}
	if len(args) == 0 {
		return errors.New("usage: profile set <path> | profile clear | profile export <path>")
	}

	switch args[0] {
	case "set":
		if len(args) != 2 {
			return errors.New("usage: profile set <path>")
		}
		img, err := session.LoadImageFile(args[1])
		if err != nil {
			return err
		}
		if err := a.store.SetProfileImage(ctx, img); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Profile image updated")

	case "clear":
		if err := a.store.SetProfileImage(ctx, nil); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Profile image removed")

	case "export":
		if len(args) != 2 {
			return errors.New("usage: profile export <path>")
		}
		if err := session.SaveImageFile(args[1], a.store.ProfileImage(ctx)); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Profile image written to %s\n", args[1])

	default:
		return fmt.Errorf("unknown profile subcommand %q", args[0])
	}
	return nil
}

// Tutorial prints the tutorial and remembers that it was shown.
func (a *App) Tutorial(ctx context.Context) error {
	fmt.Fprintln(a.out, tutorialText)
	return a.store.SetTutorialSeen(ctx, true)
}

// Keys lists stored preference keys with their value sizes.
func (a *App) Keys(ctx context.Context) error {
	all, err := a.prefs.List(ctx)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(a.out, "%-10s %d bytes\n", k, len(all[k]))
	}
	return nil
}

// Reset wipes every stored preference, the tutorial flag included.
func (a *App) Reset(ctx context.Context) error {
	if err := a.prefs.Clear(ctx); err != nil {
		return err
	}
	if err := a.prefs.Flush(ctx); err != nil {
		return err
	}
	a.log.Info(ctx, "preferences reset")
	fmt.Fprintln(a.out, "All local data removed")
	return nil
}
