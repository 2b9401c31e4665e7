package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agate-ltd/agency-crm/pkg/crmclient"
	"github.com/agate-ltd/agency-crm/pkg/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in once and print the session profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, state, err := signIn(cmd.Context())
		if err != nil {
			return err
		}
		snap := state.Current()
		fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s %s (%s), roles: %s\n",
			snap.Profile.FirstName, snap.Profile.LastName, snap.Profile.StaffID, strings.Join(snap.Profile.Roles, ", "))
		fmt.Fprintf(cmd.OutOrStdout(), "session expires at %s\n", snap.ExpiresAt.Format(time.RFC3339))
		return client.SignOut(cmd.Context())
	},
}

func signIn(ctx context.Context) (*crmclient.Client, *session.State, error) {
	if staffID == "" || password == "" {
		return nil, nil, errors.New("--staff-id and --password (or CRM_STAFF_ID and CRM_PASSWORD) are required")
	}
	client, err := crmclient.New(baseURL)
	if err != nil {
		return nil, nil, err
	}
	profile, expiresAt, err := client.SignIn(ctx, staffID, password)
	if err != nil {
		return nil, nil, err
	}
	state := session.NewState()
	state.SignIn(profile, expiresAt)
	return client, state, nil
}
