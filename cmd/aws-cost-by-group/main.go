package main

import (
	"fmt"
	"os"

	"github.com/diillson/aws-cost-by-group-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-cost-by-group-go/internal/adapter/driven/config"
	"github.com/diillson/aws-cost-by-group-go/internal/adapter/driven/export"
	"github.com/diillson/aws-cost-by-group-go/internal/adapter/driven/sqlite"
	"github.com/diillson/aws-cost-by-group-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-cost-by-group-go/internal/application/usecase"
	"github.com/diillson/aws-cost-by-group-go/pkg/console"
	"github.com/diillson/aws-cost-by-group-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.FormatVersion())

	// Inicializa os repositórios
	awsRepo := aws.NewAWSRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	reportUseCase := usecase.NewReportUseCase(
		awsRepo,
		exportRepo,
		configRepo,
		sqlite.OpenCostStore,
		consoleImpl,
	)

	app.SetReportUseCase(reportUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
