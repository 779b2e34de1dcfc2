package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "ask <text>",
		Short: "Interpret a single turn and print the response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			text := strings.Join(args, " ")
			resp := application.assistant.Interpret(ctx, sessionID, text)

			color.New(color.FgCyan, color.Bold).Print("aria> ")
			fmt.Println(resp.Text)
			if resp.UIAction != nil {
				color.New(color.FgYellow).Printf("action: %s %v\n", resp.UIAction.Type, resp.UIAction.Payload)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "cli", "session id to converse under")
	return cmd
}
