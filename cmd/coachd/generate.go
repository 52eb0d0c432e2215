package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL    string
	generateOpts struct {
		Email      string
		WeekID     string
		UseFixture bool
	}
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Trigger a weekly coaching generation on a running server",
	Long: `Trigger a weekly coaching generation on a running coachd server.

Examples:
  # Generate for a user and week
  coachd generate --email user@example.com --week 2026-W35

  # Use the deterministic fixture generator (no external model call)
  coachd generate --email user@example.com --week 2026-W35 --fixture

  # Target a different server
  coachd generate --server http://localhost:8080 --email user@example.com --week 2026-W35`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8085", "coachd server URL")
	generateCmd.Flags().StringVar(&generateOpts.Email, "email", "", "user email (required)")
	generateCmd.Flags().StringVar(&generateOpts.WeekID, "week", "", "week identifier, e.g. 2026-W35 (required)")
	generateCmd.Flags().BoolVar(&generateOpts.UseFixture, "fixture", false, "use the fixture generator instead of the configured provider")
	generateCmd.MarkFlagRequired("email") //nolint:errcheck
	generateCmd.MarkFlagRequired("week")  //nolint:errcheck
}

// generateRequest matches internal/httpapi GenerateRequest.
type generateRequest struct {
	Email      string `json:"email"`
	WeekID     string `json:"weekId"`
	UseFixture bool   `json:"useFixture"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	body, err := json.Marshal(generateRequest{
		Email:      generateOpts.Email,
		WeekID:     generateOpts.WeekID,
		UseFixture: generateOpts.UseFixture,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Post(serverURL+"/generate-weekly-coaching", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed (is the server running at %s?): %w", serverURL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	// Pretty-print whatever the server returned.
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, respBody, "", "  "); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), string(respBody))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
