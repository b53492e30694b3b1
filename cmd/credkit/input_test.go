// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package main

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubNonTerminal(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

func stubTerminal(t *testing.T, password string, err error) {
	t.Helper()
	origIsTerminal, origReadPassword := isTerminal, readPassword
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte(password), err }
	t.Cleanup(func() {
		isTerminal = origIsTerminal
		readPassword = origReadPassword
	})
}

func TestPromptPassword_Piped(t *testing.T) {
	stubNonTerminal(t)

	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("hunter2hunter2\n"))

	pw, err := promptPassword(&out, reader, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "hunter2hunter2", pw)
	assert.Equal(t, "Password: ", out.String())
}

func TestPromptPassword_PipedCRLF(t *testing.T) {
	stubNonTerminal(t)

	reader := bufio.NewReader(strings.NewReader("secret\r\n"))
	pw, err := promptPassword(&bytes.Buffer{}, reader, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "secret", pw)
}

func TestPromptPassword_PipedLastLineWithoutNewline(t *testing.T) {
	stubNonTerminal(t)

	reader := bufio.NewReader(strings.NewReader("secret"))
	pw, err := promptPassword(&bytes.Buffer{}, reader, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "secret", pw)
}

func TestPromptPassword_SharedReaderKeepsBufferedInput(t *testing.T) {
	stubNonTerminal(t)

	// Both prompts read from one reader, as register does for its
	// password plus confirmation.
	reader := bufio.NewReader(strings.NewReader("first\nsecond\n"))
	var out bytes.Buffer

	first, err := promptPassword(&out, reader, "Password: ")
	require.NoError(t, err)
	second, err := promptPassword(&out, reader, "Confirm password: ")
	require.NoError(t, err)

	assert.Equal(t, "first", first)
	assert.Equal(t, "second", second)
}

func TestPromptPassword_PipedEmptyInput(t *testing.T) {
	stubNonTerminal(t)

	reader := bufio.NewReader(strings.NewReader(""))
	_, err := promptPassword(&bytes.Buffer{}, reader, "Password: ")
	require.Error(t, err)
}

func TestPromptPassword_Terminal(t *testing.T) {
	stubTerminal(t, "tty-secret", nil)

	var out bytes.Buffer
	pw, err := promptPassword(&out, bufio.NewReader(strings.NewReader("")), "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "tty-secret", pw)
	// Prompt plus the newline the suppressed echo never printed.
	assert.Equal(t, "Password: \n", out.String())
}

func TestPromptPassword_TerminalReadFailure(t *testing.T) {
	stubTerminal(t, "", errors.New("read failed"))

	_, err := promptPassword(&bytes.Buffer{}, bufio.NewReader(strings.NewReader("")), "Password: ")
	require.Error(t, err)
}
