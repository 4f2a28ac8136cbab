package main

import (
	"context"

	"github.com/worklyapp/workly-backend/internal/bootstrap"
	"github.com/worklyapp/workly-backend/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		panic(err)
	}

	logger.Info(ctx, "starting server")
	if err := app.Run(); err != nil {
		logger.Error(ctx, "server stopped", err)
		panic(err)
	}
}
