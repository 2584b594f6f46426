package app

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/kidsisland/config"
	"github.com/shashiranjanraj/kidsisland/internal/server"
	"github.com/shashiranjanraj/kidsisland/pkg/grpc"
)

// Serve boots the application, serves HTTP (and gRPC health when GRPC_PORT
// is set) until ctx ends or a signal arrives, then releases every resource.
func (a *Application) Serve(ctx context.Context) error {
	if err := a.Boot(ctx); err != nil {
		return err
	}
	defer a.Close(context.Background()) //nolint:errcheck

	handler, err := a.Handler()
	if err != nil {
		return err
	}

	if port := config.GRPCPort(); port != "" {
		srv, err := grpc.Start(port, a.store)
		if err != nil {
			return err
		}
		defer grpc.Stop(srv)
	}

	return server.Start(ctx, fmt.Sprintf(":%s", config.AppPort()), handler)
}
