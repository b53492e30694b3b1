// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package main

import (
	"github.com/spf13/cobra"
)

// newLogoutCmd creates the logout subcommand. Tokens are stateless, so
// logout only clears the local session; the token itself stays valid until
// its natural expiry.
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		Args:  cobra.NoArgs,
		RunE:  runLogout,
	}
}

func runLogout(cmd *cobra.Command, _ []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	if err := sessionStore(cfg).Clear(); err != nil {
		return err
	}

	cmd.Println("logged out")
	return nil
}
