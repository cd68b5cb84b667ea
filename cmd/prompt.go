package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/illarion/credvault/internal/crypto"
)

// EnvPassword supplies the password for non-interactive use
const EnvPassword = "CREDVAULT_PASSWORD"

var stdin = bufio.NewReader(os.Stdin)

// readPassword reads a password from the terminal without echoing
func readPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine()
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

func readLine() ([]byte, error) {
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// readPasswordConfirm reads a password twice and ensures they match
func readPasswordConfirm() (string, error) {
	if pw := os.Getenv(EnvPassword); pw != "" {
		return pw, nil
	}

	password1, err := readPassword("Enter password: ")
	if err != nil {
		return "", err
	}
	defer crypto.ClearBytes(password1)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return string(password1), nil
	}

	password2, err := readPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	defer crypto.ClearBytes(password2)

	if !crypto.ConstantTimeCompare(password1, password2) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(password1), nil
}

// promptInput reads a single visible line from stdin
func promptInput(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(line)), nil
}
