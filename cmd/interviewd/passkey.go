package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jrsteele09/go-interview-server/internal/config"
	"github.com/jrsteele09/go-interview-server/internal/logging"
	"github.com/spf13/cobra"
)

var passkeyDescription string

var passkeyCmd = &cobra.Command{
	Use:   "passkey",
	Short: "Manage interview passkeys",
}

var passkeyIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a new passkey",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.New()
		a, err := newApp(cmd.Context(), cfg, logging.New(os.Stderr, cfg.GetLogLevel(), cfg.GetLogJSON()))
		if err != nil {
			return err
		}
		defer a.Close()

		record, err := a.service.IssuePasskey(cmd.Context(), passkeyDescription)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), record.Token)
		return nil
	},
}

var passkeyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issued passkeys, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.New()
		a, err := newApp(cmd.Context(), cfg, logging.New(os.Stderr, cfg.GetLogLevel(), cfg.GetLogJSON()))
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.service.ListPasskeys(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TOKEN\tUSES\tCREATED\tDESCRIPTION")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", r.Token, r.UsageCount, r.CreatedAt.Format(time.DateTime), r.Description)
		}
		return w.Flush()
	},
}

func init() {
	passkeyIssueCmd.Flags().StringVar(&passkeyDescription, "description", "", "what the passkey is for")
	_ = passkeyIssueCmd.MarkFlagRequired("description")
	passkeyCmd.AddCommand(passkeyIssueCmd, passkeyListCmd)
	rootCmd.AddCommand(passkeyCmd)
}
