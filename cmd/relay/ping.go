package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"matchrelay/internal/render"
	"matchrelay/internal/types"
)

var pingCmd = &cobra.Command{
	Use:   "ping [description...]",
	Short: "Push a synthetic ping notification through the relay pipeline",
	Long: `ping synthesizes a TBA ping notification from the command-line
arguments and runs it through the same render, route, and deliver pipeline
as a real inbound request. Ping notifications always route to the test
destination, so this is safe to run against production configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		desc := "Configuration smoke test"
		if len(args) > 0 {
			desc = strings.Join(args, " ")
		}

		n := types.Notification{
			Kind: render.KindPing,
			Data: map[string]any{"desc": desc},
		}

		res, delivery, err := a.handler.Process(cmd.Context(), n)
		if err != nil {
			return err
		}

		fmt.Printf("message:     %s\n", res.Text)
		fmt.Printf("environment: %s\n", res.Environment)
		fmt.Printf("slack:       %d %s\n", delivery.StatusCode, delivery.Body)
		return nil
	},
}
