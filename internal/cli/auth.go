package cli

import (
	"bufio"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada-cloud/internal/auth"
	"github.com/idilsaglam/tada-cloud/internal/ui"
)

func (a *app) authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the bearer token sent to the remote record store",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "login [token]",
			Short: "Save a token (read from stdin when omitted)",
			Args:  maxArgs(1, "tada auth login [token]"),
			RunE:  a.runLogin,
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the saved token",
			Args:  noArgs,
			RunE: func(*cobra.Command, []string) error {
				if err := auth.DeleteToken(); err != nil {
					return err
				}
				ui.OK("logged out")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show where the token comes from and when it expires",
			Args:  noArgs,
			RunE:  a.runAuthStatus,
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Print the claims of a JWT token",
			Args:  noArgs,
			RunE:  a.runWhoami,
		},
	)
	return cmd
}

func (a *app) runLogin(cmd *cobra.Command, args []string) error {
	var token string
	if len(args) == 1 {
		token = args[0]
	} else {
		fmt.Fprint(cmd.ErrOrStderr(), "token: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return usagef("auth login: no token given")
		}
		token = line
	}
	if strings.TrimSpace(token) == "" {
		return usagef("auth login: empty token")
	}
	if err := auth.SetToken(token, nil); err != nil {
		return err
	}
	msg := "token saved"
	if ti, err := auth.GetToken(); err == nil && ti != nil && ti.ExpiresAt != nil {
		msg += ", expires " + ti.ExpiresAt.Local().Format(time.RFC1123)
	}
	ui.OK(msg)
	return nil
}

func (a *app) runAuthStatus(cmd *cobra.Command, _ []string) error {
	ti, err := auth.GetToken()
	if err != nil {
		return err
	}
	if ti == nil {
		return fmt.Errorf("not logged in; run `tada auth login`")
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "source:  %s\n", ti.Source)
	fmt.Fprintf(out, "token:   %s\n", mask(ti.Token))
	switch {
	case ti.ExpiresAt == nil:
		fmt.Fprintln(out, "expires: unknown")
	case ti.Expired(time.Now()):
		fmt.Fprintf(out, "expires: %s (%s)\n", ti.ExpiresAt.Local().Format(time.RFC1123), ui.C(ui.Current().Error, "expired"))
	default:
		fmt.Fprintf(out, "expires: %s\n", ti.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

func (a *app) runWhoami(cmd *cobra.Command, _ []string) error {
	ti, err := auth.GetToken()
	if err != nil {
		return err
	}
	if ti == nil {
		return fmt.Errorf("not logged in; run `tada auth login`")
	}
	claims, err := auth.Claims(ti.Token)
	if err != nil {
		return fmt.Errorf("token is not a JWT: %w", err)
	}
	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %v\n", k+":", claims[k])
	}
	return nil
}

func mask(tok string) string {
	if len(tok) <= 8 {
		return strings.Repeat("*", len(tok))
	}
	return tok[:4] + strings.Repeat("*", 8) + tok[len(tok)-4:]
}
