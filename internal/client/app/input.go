package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// termReadPassword is replaced in tests; stdin is not a terminal there.
var termReadPassword = term.ReadPassword

// promptLine writes "label: " and returns the next line without surrounding
// whitespace. A final line that lacks a newline still counts.
func promptLine(r *bufio.Reader, label string, w io.Writer) (string, error) {
	fmt.Fprintf(w, "%s: ", label)
	line, err := r.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	default:
		return "", fmt.Errorf("read %s: %w", label, err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a line from the terminal with echo disabled. The caller
// owns the returned bytes and should wipe them.
func promptSecret(label string, w io.Writer) ([]byte, error) {
	fmt.Fprintf(w, "%s: ", label)
	secret, err := termReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", label, err)
	}
	return secret, nil
}
