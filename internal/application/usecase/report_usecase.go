package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/diillson/aws-cost-by-group-go/internal/domain/entity"
	"github.com/diillson/aws-cost-by-group-go/internal/domain/repository"
	"github.com/diillson/aws-cost-by-group-go/internal/shared/types"
	"github.com/pterm/pterm"
)

// ReportUseCase handles the cost-by-group report.
type ReportUseCase struct {
	awsRepo    repository.AWSRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	openStore  repository.StoreOpener
	console    types.ConsoleInterface
	now        func() time.Time
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	awsRepo repository.AWSRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	openStore repository.StoreOpener,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		awsRepo:    awsRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		openStore:  openStore,
		console:    console,
		now:        time.Now,
	}
}

// LoadConfig carrega o arquivo de configuração indicado por --config-file.
func (uc *ReportUseCase) LoadConfig(path string) (*types.Config, error) {
	return uc.configRepo.LoadConfigFile(path)
}

// ResolvePeriod retorna o período da consulta. Se --start ou --end estiver
// ausente, ambos são substituídos pelo mês corrente.
func (uc *ReportUseCase) ResolvePeriod(args *types.CLIArgs) (entity.Period, bool, error) {
	if args.Start == "" || args.End == "" {
		return entity.CurrentMonth(uc.now()), true, nil
	}

	start, err := time.Parse(entity.DateLayout, args.Start)
	if err != nil {
		return entity.Period{}, false, fmt.Errorf("%w: start %q", types.ErrInvalidDate, args.Start)
	}
	end, err := time.Parse(entity.DateLayout, args.End)
	if err != nil {
		return entity.Period{}, false, fmt.Errorf("%w: end %q", types.ErrInvalidDate, args.End)
	}
	if !start.Before(end) {
		return entity.Period{}, false, fmt.Errorf("%w: %s is not before %s", types.ErrInvalidPeriod, args.Start, args.End)
	}

	return entity.Period{Start: args.Start, End: args.End}, false, nil
}

func (uc *ReportUseCase) validateProfile(profile string) error {
	if profile == "" {
		return nil
	}
	for _, available := range uc.awsRepo.GetAWSProfiles() {
		if available == profile {
			return nil
		}
	}
	uc.console.LogWarning("Profile '%s' not found in AWS configuration", profile)
	return fmt.Errorf("%w: %s", types.ErrNoValidProfilesFound, profile)
}

// RunReport executa o relatório completo: busca, agregação/persistência e exibição.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	period, defaulted, err := uc.ResolvePeriod(args)
	if err != nil {
		return err
	}
	if defaulted {
		uc.console.LogWarning("--start/--end not both given, using the current month: %s", period)
	}

	if err := uc.validateProfile(args.Profile); err != nil {
		return err
	}

	// O banco é aberto antes da consulta: se ele não estiver disponível,
	// a execução falha sem gastar chamadas ao Cost Explorer.
	store, err := uc.openStore(ctx, args.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	if args.CreateTable {
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	account := args.Account
	if account == "" {
		account = entity.DefaultAccountLabel
	}
	if args.ResolveAccount {
		account, err = uc.awsRepo.GetAccountID(ctx, args.Profile)
		if err != nil {
			return err
		}
	}

	uc.console.LogInfo("Writing rows to %s as account %q", args.Database, account)

	status := uc.console.Status(fmt.Sprintf("Fetching cost and usage for %s...", period))
	buckets, err := uc.awsRepo.GetCostAndUsageByGroup(ctx, args.Profile, period, entity.FetchOptions{
		MaxPages:    args.MaxPages,
		MaxAttempts: args.MaxAttempts,
	})
	status.Stop()
	if err != nil {
		return err
	}

	if !args.Quiet {
		uc.console.DumpJSON(buckets)
	}

	table := uc.newDisplayTable()
	report, err := uc.AggregateAndPersist(ctx, buckets, account, store, table)
	if err != nil {
		return err
	}
	report.Period = period

	uc.PrintReport(report, table)

	if count, err := store.CountRows(ctx); err == nil {
		uc.console.LogSuccess("Stored %d rows (%d below %.5f skipped), table now holds %d rows",
			len(report.Rows), report.Skipped, entity.NegligibleAmount, count)
	}

	uc.exportReport(report, args)
	return nil
}

// newDisplayTable cria a tabela de exibição vazia com as colunas fixas.
func (uc *ReportUseCase) newDisplayTable() types.TableInterface {
	table := uc.console.CreateTable()

	table.AddColumn("TimePeriodStart")
	table.AddColumn("USAGE_TYPE")
	table.AddColumn("Service")
	table.AddColumn("Amount", types.AlignRight)

	return table
}

// AggregateAndPersist percorre todos os grupos na ordem retornada pela API.
// Todo valor entra no total; valores abaixo de NegligibleAmount não são
// gravados nem exibidos. Cada linha gravada é confirmada individualmente.
func (uc *ReportUseCase) AggregateAndPersist(
	ctx context.Context,
	buckets []entity.TimeBucket,
	account string,
	store repository.CostStore,
	table types.TableInterface,
) (entity.CostReport, error) {
	report := entity.CostReport{Account: account}

	for _, bucket := range buckets {
		for _, group := range bucket.Groups {
			amount, err := strconv.ParseFloat(group.Amount, 64)
			if err != nil {
				return report, fmt.Errorf("invalid amount %q for %s/%s in period %s: %w",
					group.Amount, group.UsageType, group.Service, bucket.Start, err)
			}

			report.Records++
			report.Total += amount

			if amount < entity.NegligibleAmount {
				report.Skipped++
				continue
			}

			row := entity.PersistedRow{
				Account:         account,
				TimePeriodStart: bucket.Start,
				UsageType:       group.UsageType,
				Service:         group.Service,
				Amount:          formatAmount(amount),
			}
			if err := store.InsertCostRow(ctx, row); err != nil {
				return report, err
			}

			table.AddRow(row.TimePeriodStart, row.UsageType, row.Service, row.Amount)
			report.Rows = append(report.Rows, row)
		}
	}

	return report, nil
}

// PrintReport imprime o total e a tabela renderizada.
func (uc *ReportUseCase) PrintReport(report entity.CostReport, table types.TableInterface) {
	uc.console.Println(formatTotal(report.Total))
	uc.console.Print(table.Render())
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.5f", amount)
}

// formatTotal usa largura 5 e a precisão padrão de seis casas: "Total: 0.123451".
func formatTotal(total float64) string {
	return fmt.Sprintf("Total: %5f", total)
}

func (uc *ReportUseCase) exportReport(report entity.CostReport, args *types.CLIArgs) {
	if args.ReportName == "" || len(args.ReportType) == 0 {
		return
	}

	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv":
			csvPath, err := uc.exportRepo.ExportToCSV(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		default:
			uc.console.LogWarning("Unknown report type %s", pterm.FgYellow.Sprint(reportType))
		}
	}
}
