package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/diillson/aws-cost-by-group-go/internal/application/usecase"
	"github.com/diillson/aws-cost-by-group-go/internal/shared/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	version       string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:           "aws-cost-by-group",
		Short:         "Monthly AWS cost by usage type and service, stored in SQLite",
		Version:       versionStr,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS Cost by Group version: %s\n" .Version}}`)

	flags := rootCmd.Flags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("profile", "P", "", "AWS profile name")
	flags.StringP("start", "S", "", "Start date YYYY-MM-DD (default: 1st date of current month)")
	flags.StringP("end", "E", "", "End date YYYY-MM-DD (default: last date of current month)")
	flags.StringP("db", "D", "data.db", "SQLite database file")
	flags.Bool("create-table", false, "Create the awscostdata table if it does not exist")
	flags.String("account", "account", "Label written to the account column")
	flags.Bool("resolve-account", false, "Use the AWS account ID (via STS) as the account label")
	flags.Int("max-pages", 0, "Maximum number of Cost Explorer pages to fetch (0 = no limit)")
	flags.Int("max-attempts", 0, "Maximum attempts per Cost Explorer request (0 = SDK default)")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.BoolP("quiet", "q", false, "Do not print the banner and the raw API data")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetArgs define os argumentos usados por Execute, útil em testes.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(flags *pflag.FlagSet) (*types.CLIArgs, error) {
	configFile, _ := flags.GetString("config-file")
	profile, _ := flags.GetString("profile")
	start, _ := flags.GetString("start")
	end, _ := flags.GetString("end")
	database, _ := flags.GetString("db")
	createTable, _ := flags.GetBool("create-table")
	account, _ := flags.GetString("account")
	resolveAccount, _ := flags.GetBool("resolve-account")
	maxPages, _ := flags.GetInt("max-pages")
	maxAttempts, _ := flags.GetInt("max-attempts")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	quiet, _ := flags.GetBool("quiet")

	args := &types.CLIArgs{
		ConfigFile:     configFile,
		Profile:        profile,
		Start:          start,
		End:            end,
		Database:       database,
		CreateTable:    createTable,
		Account:        account,
		ResolveAccount: resolveAccount,
		MaxPages:       maxPages,
		MaxAttempts:    maxAttempts,
		ReportName:     reportName,
		ReportType:     reportType,
		Dir:            dir,
		Quiet:          quiet,
	}

	if args.ConfigFile != "" {
		cfg, err := app.reportUseCase.LoadConfig(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		mergeConfig(args, cfg, flags.Changed)
	}

	if args.MaxPages < 0 || args.MaxAttempts < 0 {
		return nil, errors.New("--max-pages and --max-attempts must not be negative")
	}

	if args.ReportName != "" {
		if args.Dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			args.Dir = cwd
		} else {
			absDir, err := filepath.Abs(args.Dir)
			if err != nil {
				return nil, err
			}
			args.Dir = absDir
		}
	}

	return args, nil
}

// mergeConfig aplica os valores do arquivo de configuração aos campos cujas
// flags não foram informadas explicitamente.
func mergeConfig(args *types.CLIArgs, cfg *types.Config, changed func(name string) bool) {
	setString := func(flag string, dst *string, v string) {
		if !changed(flag) && v != "" {
			*dst = v
		}
	}
	setBool := func(flag string, dst *bool, v bool) {
		if !changed(flag) && v {
			*dst = v
		}
	}
	setInt := func(flag string, dst *int, v int) {
		if !changed(flag) && v != 0 {
			*dst = v
		}
	}

	setString("profile", &args.Profile, cfg.Profile)
	setString("start", &args.Start, cfg.Start)
	setString("end", &args.End, cfg.End)
	setString("db", &args.Database, cfg.Database)
	setBool("create-table", &args.CreateTable, cfg.CreateTable)
	setString("account", &args.Account, cfg.Account)
	setBool("resolve-account", &args.ResolveAccount, cfg.ResolveAccount)
	setInt("max-pages", &args.MaxPages, cfg.MaxPages)
	setInt("max-attempts", &args.MaxAttempts, cfg.MaxAttempts)
	setString("report-name", &args.ReportName, cfg.ReportName)
	setString("dir", &args.Dir, cfg.Dir)
	if !changed("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	cliArgs, err := app.parseArgs(cmd.Flags())
	if err != nil {
		return err
	}

	if !cliArgs.Quiet {
		displayWelcomeBanner(cmd.OutOrStdout(), app.version)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.reportUseCase.RunReport(ctx, cliArgs)
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}
