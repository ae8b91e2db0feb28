package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"volunteerhub/internal/dispatch"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/roster"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send roster rows to the webhook",
	Long:  "Apply edits to a saved roster, then forward all, selected or one row to the webhook through the relay, one request per row.",
	RunE:  runSend,
}

var (
	sendIn      string
	sendMode    string
	sendRow     int
	sendSelect  []int
	sendEdits   []string
	sendWebhook string
	sendDryRun  bool
)

func init() {
	sendCmd.Flags().StringVarP(&sendIn, "in", "i", "roster.json", "Roster saved by the extract command")
	sendCmd.Flags().StringVarP(&sendMode, "mode", "m", string(domain.SendAll), "Rows to send: all, selected or row")
	sendCmd.Flags().IntVar(&sendRow, "row", 0, "Row number to send with --mode row")
	sendCmd.Flags().IntSliceVar(&sendSelect, "select", nil, "Row numbers to select for --mode selected (repeats are ignored)")
	sendCmd.Flags().StringArrayVar(&sendEdits, "set", nil, "Edit a cell before sending: ROW:FIELD=VALUE (repeatable)")
	sendCmd.Flags().StringVar(&sendWebhook, "webhook", "", "Webhook URL (defaults to VHUB_INTAKE_WEBHOOK_URL)")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "Apply edits, check rows and save the roster without sending")

	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	file, err := readRoster(sendIn)
	if err != nil {
		return err
	}
	state, err := file.state()
	if err != nil {
		return err
	}

	for _, raw := range sendEdits {
		edit, err := parseEdit(raw)
		if err != nil {
			return err
		}
		if edit.Row >= len(state.Rows) {
			return fmt.Errorf("edit %q: roster has %d rows", raw, len(state.Rows))
		}
		state = roster.Reduce(state, edit)
	}
	state, err = applySelection(state, sendSelect)
	if err != nil {
		return err
	}
	if len(sendEdits) > 0 {
		if err := writeRoster(sendIn, fromState(state)); err != nil {
			return err
		}
	}

	rows, err := state.Resolve(domain.SendMode(sendMode), sendRow-1)
	if err != nil {
		return err
	}
	if err := state.CheckSendable(rows); err != nil {
		printRoster(os.Stderr, state)
		return err
	}
	if sendDryRun {
		printRoster(os.Stdout, state)
		fmt.Fprintf(os.Stderr, "%d rows ready to send\n", len(rows))
		return nil
	}

	webhook := sendWebhook
	if webhook == "" {
		webhook = appConfig.Intake.WebhookURL
	}
	if webhook == "" {
		return fmt.Errorf("webhook URL is required (set VHUB_INTAKE_WEBHOOK_URL or use --webhook)")
	}

	notifier, err := newNotifier(&appConfig.Email)
	if err != nil {
		return err
	}
	relay := dispatch.NewRelayClient(appConfig.Intake.RelayURL, 0)
	sender := dispatch.NewSender(relay, notifier, dispatch.Options{
		WebhookURL: webhook,
		Origin:     appConfig.Intake.Origin,
		Delay:      appConfig.Intake.BatchDelay,
	})
	sender.OnRow = func(r dispatch.RowResult) {
		if r.OK {
			fmt.Fprintf(os.Stdout, "Row %d (%s): sent\n", r.Row+1, r.Name)
			return
		}
		fmt.Fprintf(os.Stdout, "Row %d (%s): failed: %s\n", r.Row+1, r.Name, r.Detail)
	}

	report, err := sender.Send(ctx, state, rows)
	if err != nil {
		return err
	}
	if report.Summary != nil {
		fmt.Fprintf(os.Stdout, "Sent %d of %d rows (%d failed)\n", report.Summary.Succeeded, report.Summary.Total, report.Summary.Failed)
		if report.Summary.Failed > 0 {
			return fmt.Errorf("%d rows failed", report.Summary.Failed)
		}
		return nil
	}
	if r := report.Results[0]; !r.OK {
		return &userError{msg: fmt.Sprintf("row %d (%s) was not delivered: %s", r.Row+1, r.Name, r.Detail), err: r.Err}
	}
	return nil
}
