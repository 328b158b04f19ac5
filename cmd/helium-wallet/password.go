package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// passwordEnv, when set, supplies the wallet password without a prompt.
const passwordEnv = "HELIUM_WALLET_PASSWORD"

// readPassword takes the password from the environment or prompts for it
// on the terminal without echo. With confirm set the prompt is repeated.
func (a *app) readPassword(prompt string, confirm bool) ([]byte, error) {
	if pw, ok := os.LookupEnv(passwordEnv); ok {
		return []byte(pw), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal, set %s to provide the password", passwordEnv)
	}
	password, err := promptHidden(a, fd, prompt)
	if err != nil {
		return nil, err
	}
	if !confirm {
		return password, nil
	}
	again, err := promptHidden(a, fd, "Confirm "+strings.ToLower(prompt))
	if err != nil {
		return nil, err
	}
	defer zero(again)
	if !bytes.Equal(password, again) {
		zero(password)
		return nil, errors.New("passwords do not match")
	}
	return password, nil
}

func promptHidden(a *app, fd int, prompt string) ([]byte, error) {
	fmt.Fprint(a.stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(a.stderr) // newline after hidden input
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return password, nil
}

// readLine prompts on stderr and reads one line from stdin.
func (a *app) readLine(prompt string) (string, error) {
	fmt.Fprint(a.stderr, prompt)
	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
