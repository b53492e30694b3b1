// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Test seams for terminal interaction.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// promptPassword prints a prompt to w and reads a password from the user's
// terminal without echo. When stdin is not a terminal (scripts, pipes), a
// plain line is read from reader instead. Callers issuing several prompts
// must share one reader so buffered input is not lost between reads.
func promptPassword(w io.Writer, reader *bufio.Reader, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}

	fd := int(os.Stdin.Fd())
	if isTerminal(fd) {
		pw, err := readPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
