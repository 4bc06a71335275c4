package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fernwald/rtcgate/pkg/client"
)

var (
	issueChannel string
	issueUID     int64
	issueRole    string
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Request a channel credential from a rtcgate server",
	Long: `Exchanges a session token for a short-lived signed credential to join
a realtime media channel. The session token is the same one the web
client holds after login.`,
	Example: `  # join room-42 as publisher (uses RTCGATE_SERVER / RTCGATE_SESSION)
  rtcgate issue --channel room-42

  # listen-only with a fixed uid
  rtcgate issue --channel town-hall --uid 555 --role subscriber`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		opts := client.IssueOptions{Role: issueRole}
		if cmd.Flags().Changed("uid") {
			opts.UID = &issueUID
		}

		log.Debug().Str("channel", issueChannel).Msg("Requesting credential...")
		cred, correlation, err := cli.IssueCredential(cmd.Context(), issueChannel, opts)
		if err != nil {
			return err
		}
		log.Debug().Str("correlation_id", correlation).Msg("Credential received")

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		expires := time.Unix(cred.ExpireAt, 0)
		fmt.Printf("%s %s\n", bold("App ID:"), cred.AppID)
		fmt.Printf("%s %s %s\n", bold("Expires:"), expires.Format(time.RFC3339),
			faint("("+time.Until(expires).Round(time.Second).String()+")"))
		fmt.Printf("%s %s\n", bold("Token:"), cred.Token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(issueCmd)

	issueCmd.Flags().StringVarP(&issueChannel, "channel", "c", "", "Channel name to join")
	issueCmd.Flags().Int64Var(&issueUID, "uid", 0, "Numeric identity to join with (0 = assigned)")
	issueCmd.Flags().StringVar(&issueRole, "role", "", "Role: publisher (default) or subscriber")

	_ = issueCmd.MarkFlagRequired("channel")
}
