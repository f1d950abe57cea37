package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/aws-cost-by-group-go/internal/adapter/driven/config"
	"github.com/diillson/aws-cost-by-group-go/internal/adapter/driven/export"
	"github.com/diillson/aws-cost-by-group-go/internal/adapter/driven/sqlite"
	"github.com/diillson/aws-cost-by-group-go/internal/application/usecase"
	"github.com/diillson/aws-cost-by-group-go/internal/domain/entity"
	"github.com/diillson/aws-cost-by-group-go/internal/shared/types"
	"github.com/diillson/aws-cost-by-group-go/pkg/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAWSRepo struct {
	buckets []entity.TimeBucket
	period  entity.Period
	profile string
	opts    entity.FetchOptions
}

func (s *stubAWSRepo) GetAWSProfiles() []string { return []string{"default", "billing"} }

func (s *stubAWSRepo) GetAccountID(context.Context, string) (string, error) {
	return "123456789012", nil
}

func (s *stubAWSRepo) GetCostAndUsageByGroup(_ context.Context, profile string, period entity.Period, opts entity.FetchOptions) ([]entity.TimeBucket, error) {
	s.profile = profile
	s.period = period
	s.opts = opts
	return s.buckets, nil
}

func newTestApp(t *testing.T, awsRepo *stubAWSRepo) (*CLIApp, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	uc := usecase.NewReportUseCase(
		awsRepo,
		export.NewExportRepository(),
		config.NewConfigRepository(),
		sqlite.OpenCostStore,
		console.NewConsoleWithWriter(out),
	)

	app := NewCLIApp("test")
	app.SetReportUseCase(uc)
	app.rootCmd.SetOut(out)
	return app, out
}

func TestExecuteEndToEnd(t *testing.T) {
	awsRepo := &stubAWSRepo{buckets: []entity.TimeBucket{
		{Start: "2022-03-01", End: "2022-04-01", Groups: []entity.GroupRecord{
			{UsageType: "BoxUsage:t2.micro", Service: "EC2", Amount: "0.12345"},
			{UsageType: "DataTransfer", Service: "EC2", Amount: "0.000001"},
		}},
	}}
	app, out := newTestApp(t, awsRepo)

	dir := t.TempDir()
	db := filepath.Join(dir, "data.db")
	app.SetArgs([]string{
		"-P", "billing",
		"-S", "2022-03-01",
		"-E", "2022-03-31",
		"-D", db,
		"--create-table",
		"--max-pages", "5",
		"-n", "march", "-y", "csv", "-d", dir,
		"-q",
	})

	require.NoError(t, app.Execute())

	assert.Equal(t, "billing", awsRepo.profile)
	assert.Equal(t, entity.Period{Start: "2022-03-01", End: "2022-03-31"}, awsRepo.period)
	assert.Equal(t, 5, awsRepo.opts.MaxPages)
	assert.Contains(t, out.String(), "Total: 0.123451")
	assert.Contains(t, out.String(), "table now holds 1 rows")

	matches, err := filepath.Glob(filepath.Join(dir, "march_*.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestExecuteMissingTableFails(t *testing.T) {
	awsRepo := &stubAWSRepo{buckets: []entity.TimeBucket{
		{Start: "2022-03-01", Groups: []entity.GroupRecord{{UsageType: "u", Service: "s", Amount: "1"}}},
	}}
	app, _ := newTestApp(t, awsRepo)
	app.SetArgs([]string{"-S", "2022-03-01", "-E", "2022-03-31", "-D", filepath.Join(t.TempDir(), "data.db"), "-q"})

	err := app.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "awscostdata")
}

func TestExecuteRejectsPositionalArgs(t *testing.T) {
	app, _ := newTestApp(t, &stubAWSRepo{})
	app.SetArgs([]string{"report"})

	assert.Error(t, app.Execute())
}

func TestExecuteRejectsNegativeMaxPages(t *testing.T) {
	app, _ := newTestApp(t, &stubAWSRepo{})
	app.SetArgs([]string{"--max-pages=-1", "-q"})

	assert.ErrorContains(t, app.Execute(), "must not be negative")
}

func TestExecuteWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cost.yaml")
	cfg := "profile: billing\nstart: \"2022-01-01\"\nend: \"2022-02-01\"\ncreate_table: true\naccount: payer\ndatabase: " +
		filepath.Join(dir, "cfg.db") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	awsRepo := &stubAWSRepo{}
	app, _ := newTestApp(t, awsRepo)
	app.SetArgs([]string{"-C", cfgPath, "-E", "2022-03-01", "-q"})

	require.NoError(t, app.Execute())
	assert.Equal(t, "billing", awsRepo.profile)
	assert.Equal(t, entity.Period{Start: "2022-01-01", End: "2022-03-01"}, awsRepo.period)
	assert.FileExists(t, filepath.Join(dir, "cfg.db"))
}

func TestMergeConfigFlagsWin(t *testing.T) {
	args := &types.CLIArgs{Profile: "cli", Database: "data.db", Account: "account", ReportType: []string{"csv"}}
	cfg := &types.Config{
		Profile:     "file",
		Start:       "2022-03-01",
		Database:    "file.db",
		MaxPages:    3,
		ReportType:  []string{"pdf"},
		CreateTable: true,
	}
	changed := map[string]bool{"profile": true}

	mergeConfig(args, cfg, func(name string) bool { return changed[name] })

	assert.Equal(t, "cli", args.Profile)
	assert.Equal(t, "2022-03-01", args.Start)
	assert.Equal(t, "file.db", args.Database)
	assert.Equal(t, 3, args.MaxPages)
	assert.Equal(t, []string{"pdf"}, args.ReportType)
	assert.True(t, args.CreateTable)
	assert.Equal(t, "account", args.Account)
}

func TestBannerShowsVersion(t *testing.T) {
	app, out := newTestApp(t, &stubAWSRepo{})
	app.SetArgs([]string{"-S", "2022-03-01", "-E", "2022-03-31", "-D", filepath.Join(t.TempDir(), "data.db"), "--create-table"})

	require.NoError(t, app.Execute())
	assert.Contains(t, out.String(), "AWS Cost by Group CLI (vtest)")
}
