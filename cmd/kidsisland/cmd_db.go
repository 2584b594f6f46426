package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/kidsisland/config"
	"github.com/shashiranjanraj/kidsisland/database/seeders"
	"github.com/shashiranjanraj/kidsisland/pkg/database"
)

// kidsisland seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the starter product catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		store, err := database.Connect(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close(context.Background()) //nolint:errcheck

		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return seeders.RunAll(cmd.Context(), store, cmd.OutOrStdout())
	},
}
