package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/kidsisland/app/routes"
	"github.com/shashiranjanraj/kidsisland/pkg/app"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "kidsisland",
	Short:        "Kids Island storefront API",
	Long:         "Kids Island serves the storefront's products, users, orders, reviews and checkout over HTTP.",
	SilenceUsage: true,
}

// newApp is the application every command works against.
func newApp() *app.Application {
	return app.New().Routes(routes.RegisterAPI)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(seedCmd)
}
