package cmd

import (
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var auditLimit uint

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List recent credential issuance attempts",
	Long: `Retrieves the most recent audit entries from the server: who requested
a credential for which channel, and whether it was granted.

This command requires a session token carrying the service role.`,
	Example: `  rtcgate audit --limit 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		log.Debug().Msg("Fetching audit entries...")
		entries, err := cli.ListAudits(cmd.Context(), auditLimit)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			log.Info().Msg("No audit entries found")
			return nil
		}
		log.Debug().Msgf("Retrieved %d audit entrie(s)", len(entries))

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			"Time", "Principal", "Channel", "UID", "Role", "Outcome",
		})

		bold := color.New(color.Bold).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		for _, entry := range entries {
			principal := "(unauthenticated)"
			if entry.Principal != nil {
				principal = truncate(entry.Principal.ID, 40)
			}

			outcome := green("granted")
			if !entry.Granted {
				outcome = red(entry.Error)
			}

			t.AppendRow(table.Row{
				entry.Time.Format(time.RFC3339),
				bold(principal),
				entry.Channel,
				entry.UID,
				entry.Role,
				outcome,
			})
		}

		s := table.StyleRounded
		s.Format.Header = text.FormatDefault
		t.SetStyle(s)
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().UintVar(&auditLimit, "limit", 50, "Maximum number of entries to fetch")
}
