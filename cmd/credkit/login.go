// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package main

import (
	"bufio"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// newLoginCmd creates the login subcommand.
func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Verify credentials and start a local session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, args[0])
		},
	}
}

func runLogin(cmd *cobra.Command, username string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	password, err := promptPassword(cmd.OutOrStdout(), reader, "Password: ")
	if err != nil {
		return oops.Code("INPUT_FAILED").With("operation", "read password").Wrap(err)
	}

	ctx := cmd.Context()
	core, err := buildCore(ctx, cfg)
	if err != nil {
		return err
	}
	defer core.Close()

	token, identity, err := core.svc.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := sessionStore(cfg).Save(token, identity); err != nil {
		return err
	}

	cmd.Printf("logged in as %s\n", identity.Username)
	return nil
}
