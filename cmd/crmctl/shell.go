package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agate-ltd/agency-crm/pkg/crmclient"
	"github.com/agate-ltd/agency-crm/pkg/session"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive session kept alive while you keep typing",
	RunE:  runShell,
}

const shellHelp = `commands:
  clients               list clients with campaign counts
  campaigns [clientId]  list campaigns
  status                show session expiry
  logout                sign out and exit
  quit                  exit`

func runShell(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client, state, err := signIn(ctx)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	state.OnChange(func(snap session.Snapshot) {
		if !snap.SignedIn {
			fmt.Fprintf(out, "\nsession ended (%s); sign in again\n", snap.Reason)
			cancel()
		}
	})

	keeper := session.NewKeeper(state, client, session.Options{Logger: logger})
	go keeper.Run(ctx)

	fmt.Fprintln(out, shellHelp)
	lines := make(chan string)
	go readLines(ctx, cmd.InOrStdin(), lines)

	for {
		fmt.Fprint(out, "> ")
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			keeper.MarkActivity()
			if done := runShellCommand(ctx, out, client, state, line); done {
				return nil
			}
		}
	}
}

// readLines stops once ctx is done, even with a line still undelivered.
func readLines(ctx context.Context, r io.Reader, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
}

func runShellCommand(ctx context.Context, out io.Writer, client *crmclient.Client, state *session.State, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "clients":
		clients, err := client.ListClients(ctx)
		if err != nil {
			reportError(out, state, err)
			return false
		}
		for _, c := range clients {
			fmt.Fprintf(out, "%s  %s %s <%s>  campaigns=%d\n", c.ID, c.Name, c.Surname, c.Email, c.CampaignCount)
		}
	case "campaigns":
		clientID := ""
		if len(fields) > 1 {
			clientID = fields[1]
		}
		campaigns, err := client.ListCampaigns(ctx, clientID)
		if err != nil {
			reportError(out, state, err)
			return false
		}
		for _, c := range campaigns {
			fmt.Fprintf(out, "%s  %s  client=%s  budget=%.2f  estimated=%.2f\n", c.ID, c.Title, c.ClientID, c.Budget, c.EstimatedCost)
		}
	case "status":
		snap := state.Current()
		fmt.Fprintf(out, "signed in as %s, expires in %s\n", snap.Profile.StaffID, time.Until(snap.ExpiresAt).Round(time.Second))
	case "logout":
		if err := client.SignOut(ctx); err != nil {
			fmt.Fprintf(out, "sign out: %v\n", err)
		}
		state.SignOut(session.ReasonSignedOut)
		return true
	case "quit", "exit":
		return true
	default:
		fmt.Fprintln(out, shellHelp)
	}
	return false
}

func reportError(out io.Writer, state *session.State, err error) {
	if errors.Is(err, crmclient.ErrUnauthorized) {
		state.SignOut(session.ReasonUnauthorized)
		return
	}
	fmt.Fprintf(out, "error: %v\n", err)
}
