package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aria/internal/config"
)

func newInitCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter aria-config.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.WriteDefault(out); err != nil {
				return err
			}
			fmt.Println("Wrote", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "aria-config.yaml", "where to write the config file")
	return cmd
}
