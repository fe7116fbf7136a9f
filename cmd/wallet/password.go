package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/keyshard/walletkeeper/internal/crypto"
)

// stdin buffers non-terminal password input. One shared reader is
// required: consecutive prompts must consume consecutive lines, and a
// fresh bufio.Reader per prompt would swallow whatever it read ahead.
var stdin *bufio.Reader

func stdinReader() *bufio.Reader {
	if stdin == nil {
		stdin = bufio.NewReader(os.Stdin)
	}
	return stdin
}

// promptPassword reads a password from stdin. When stdin is a terminal the
// input is read without echo; otherwise a plain line is read, which keeps
// the commands scriptable.
func promptPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		return password, nil
	}

	line, err := stdinReader().ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// promptNewPassword reads a password twice and requires both entries to
// match. Used by commands that set a password rather than check one.
func promptNewPassword() ([]byte, error) {
	password, err := promptPassword("Password: ")
	if err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, errors.New("password must not be empty")
	}

	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		crypto.Zero(password)
		return nil, err
	}
	defer crypto.Zero(confirm)

	if !bytes.Equal(password, confirm) {
		crypto.Zero(password)
		return nil, errors.New("passwords do not match")
	}
	return password, nil
}
