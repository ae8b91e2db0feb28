package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"volunteerhub/internal/intake"
	"volunteerhub/internal/roster"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a roster from meeting notes or a file",
	Long:  "Send meeting notes, or a text, CSV, HTML, PDF, spreadsheet or image file, to the extraction endpoint and print the resulting roster.",
	RunE:  runExtract,
}

var (
	extractEvent string
	extractNotes string
	extractFile  string
	extractDate  string
	extractOut   string
)

func init() {
	extractCmd.Flags().StringVarP(&extractEvent, "event", "e", "", "Event name (required)")
	extractCmd.Flags().StringVarP(&extractNotes, "notes", "n", "", "Meeting notes text")
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Notes file: local path or s3://bucket/key")
	extractCmd.Flags().StringVar(&extractDate, "date", "", "Event date (YYYY-MM-DD)")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "roster.json", "Where to save the roster for the send command")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var date time.Time
	if extractDate != "" {
		d, err := time.Parse(dateLayout, extractDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", extractDate)
		}
		date = d
	}

	ingestor, err := newIngestor(appConfig)
	if err != nil {
		return err
	}
	client := intake.NewClient(&appConfig.Intake, ingestor)

	req, err := client.BuildRequest(ctx, intake.Input{EventName: extractEvent, Notes: extractNotes, File: extractFile})
	if err != nil {
		return &userError{msg: intake.UserMessage(err), err: err}
	}

	fmt.Fprintf(os.Stderr, "Extracting data for %q...\n", req.EventName)
	result, err := client.Extract(ctx, req)
	if err != nil {
		return &userError{msg: intake.UserMessage(err), err: err}
	}

	state := roster.Reduce(roster.State{}, roster.Extracted{
		EventName: req.EventName,
		EventDate: date,
		People:    result.ExtractedData,
	})
	if len(state.Rows) == 0 {
		fmt.Fprintln(os.Stderr, "No people found in the notes.")
	}
	printRoster(os.Stdout, state)

	if err := writeRoster(extractOut, fromState(state)); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved %d rows to %s\n", len(state.Rows), extractOut)
	return nil
}
