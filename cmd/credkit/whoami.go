// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package main

import (
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/credkit/credkit/internal/auth"
)

// newWhoamiCmd creates the whoami subcommand.
func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Verify the local session token and show the identity",
		Args:  cobra.NoArgs,
		RunE:  runWhoami,
	}
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	sess := sessionStore(cfg)
	token, ok := sess.CurrentToken()
	if !ok {
		return oops.Code(auth.CodeUnauthenticated).Errorf("no local session; run credkit login")
	}

	ctx := cmd.Context()
	core, err := buildCore(ctx, cfg)
	if err != nil {
		return err
	}
	defer core.Close()

	// The verified result is authoritative over the cached snapshot.
	identity, err := core.svc.Identify(ctx, token)
	if err != nil {
		return err
	}

	// Refresh the cached snapshot now that the token verified.
	if err := sess.Save(token, identity); err != nil {
		return err
	}

	cmd.Printf("id:       %s\n", identity.ID)
	cmd.Printf("username: %s\n", identity.Username)
	cmd.Printf("created:  %s\n", identity.CreatedAt.Format(time.RFC3339))
	return nil
}
