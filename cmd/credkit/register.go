// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package main

import (
	"bufio"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// newRegisterCmd creates the register subcommand.
func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <username>",
		Short: "Register a new identity and start a local session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd, args[0])
		},
	}
}

func runRegister(cmd *cobra.Command, username string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	password, err := promptPassword(cmd.OutOrStdout(), reader, "Password: ")
	if err != nil {
		return oops.Code("INPUT_FAILED").With("operation", "read password").Wrap(err)
	}
	confirm, err := promptPassword(cmd.OutOrStdout(), reader, "Confirm password: ")
	if err != nil {
		return oops.Code("INPUT_FAILED").With("operation", "read password confirmation").Wrap(err)
	}
	if password != confirm {
		return oops.Code("INPUT_MISMATCH").Errorf("passwords do not match")
	}

	ctx := cmd.Context()
	core, err := buildCore(ctx, cfg)
	if err != nil {
		return err
	}
	defer core.Close()

	token, identity, err := core.svc.Register(ctx, username, password)
	if err != nil {
		return err
	}

	if err := sessionStore(cfg).Save(token, identity); err != nil {
		return err
	}

	cmd.Printf("registered %s (id %s)\n", identity.Username, identity.ID)
	return nil
}
