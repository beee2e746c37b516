package cli

import (
	"context"

	"sample-data-seeder/internal/di"
)

// runSeed builds the container for one run and executes the pipeline.
func runSeed(ctx context.Context, p runParams) error {
	container := di.NewContainer(p.Config, p.Logger)
	defer func() { _ = container.Close() }()

	if err := container.InitializeDatabase(ctx, p.ErrOut); err != nil {
		return err
	}
	if err := container.HealthCheck(ctx); err != nil {
		return err
	}
	if err := container.InitializeSeeder(p.Out, p.Options); err != nil {
		return err
	}

	return container.SeederModule.GetUsecase().Run(ctx, p.Names)
}
