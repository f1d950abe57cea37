package aws

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/diillson/aws-cost-by-group-go/internal/domain/entity"
	"github.com/diillson/aws-cost-by-group-go/internal/domain/repository"
	"github.com/diillson/aws-cost-by-group-go/internal/shared/types"
)

// CostExplorerAPI é o subconjunto do cliente do Cost Explorer usado pelo repositório.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

// STSAPI é o subconjunto do cliente STS usado pelo repositório.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// AWSRepositoryImpl implementa o AWSRepository com cache de clientes.
type AWSRepositoryImpl struct {
	cfgCache    map[string]aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
	homeDir     func() (string, error)
}

// NewAWSRepository cria uma nova implementação do AWSRepository.
func NewAWSRepository() repository.AWSRepository {
	return &AWSRepositoryImpl{
		cfgCache:    make(map[string]aws.Config),
		clientCache: make(map[string]interface{}),
		homeDir:     os.UserHomeDir,
	}
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", profile, err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

func clientCacheKey(profile, region, service string) string {
	return fmt.Sprintf("%s-%s-%s", profile, region, service)
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, profile, service string) (interface{}, error) {
	// Cost Explorer e STS global respondem em us-east-1.
	const region = "us-east-1"
	cacheKey := clientCacheKey(profile, region, service)

	r.mu.Lock()
	if client, ok := r.clientCache[cacheKey]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()
	regionalCfg.Region = region

	var client interface{}
	switch service {
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "costexplorer":
		client = costexplorer.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[cacheKey] = client
	r.mu.Unlock()

	return client, nil
}

// sharedFilePath segue a mesma resolução do SDK: a variável de ambiente,
// quando definida, substitui o arquivo em ~/.aws.
func (r *AWSRepositoryImpl) sharedFilePath(envVar, name string) string {
	if p := os.Getenv(envVar); p != "" {
		return p
	}
	homeDir, err := r.homeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".aws", name)
}

// GetAWSProfiles lista os perfis declarados nos arquivos compartilhados
// (AWS_SHARED_CREDENTIALS_FILE / AWS_CONFIG_FILE ou ~/.aws/credentials e ~/.aws/config).
func (r *AWSRepositoryImpl) GetAWSProfiles() []string {
	credentialsPath := r.sharedFilePath("AWS_SHARED_CREDENTIALS_FILE", "credentials")
	configPath := r.sharedFilePath("AWS_CONFIG_FILE", "config")

	profiles := make(map[string]bool)
	profileRegex := regexp.MustCompile(`\[([^]]+)\]`)

	parseFile := func(path string, isConfig bool) {
		if path == "" {
			return
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return
		}
		matches := profileRegex.FindAllStringSubmatch(string(content), -1)
		for _, match := range matches {
			profileName := match[1]
			if isConfig {
				profileName = strings.TrimPrefix(profileName, "profile ")
			}
			profiles[profileName] = true
		}
	}

	parseFile(credentialsPath, false)
	parseFile(configPath, true)

	if len(profiles) == 0 {
		profiles["default"] = true
	}

	result := make([]string, 0, len(profiles))
	for profile := range profiles {
		result = append(result, profile)
	}
	sort.Strings(result)
	return result
}

func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context, profile string) (string, error) {
	client, err := r.getServiceClient(ctx, profile, "sts")
	if err != nil {
		return "", err
	}
	stsClient := client.(STSAPI)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %q: %w", profile, err)
	}
	return aws.ToString(result.Account), nil
}

// GetCostAndUsageByGroup busca o custo mensal agrupado por USAGE_TYPE e SERVICE,
// seguindo o NextPageToken até que a API não retorne mais nenhum.
func (r *AWSRepositoryImpl) GetCostAndUsageByGroup(ctx context.Context, profile string, period entity.Period, opts entity.FetchOptions) ([]entity.TimeBucket, error) {
	client, err := r.getServiceClient(ctx, profile, "costexplorer")
	if err != nil {
		return nil, err
	}
	return fetchCostAndUsageByGroup(ctx, client.(CostExplorerAPI), period, opts)
}

func costAndUsageInput(period entity.Period, token *string) *costexplorer.GetCostAndUsageInput {
	return &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(period.Start),
			End:   aws.String(period.End),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{entity.CostMetric},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String(entity.DimensionUsageType)},
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String(entity.DimensionService)},
		},
		NextPageToken: token,
	}
}

// fetchCostAndUsageByGroup has no page cap unless opts.MaxPages is set: the
// loop ends only when the API stops returning a continuation token.
func fetchCostAndUsageByGroup(ctx context.Context, client CostExplorerAPI, period entity.Period, opts entity.FetchOptions) ([]entity.TimeBucket, error) {
	var optFns []func(*costexplorer.Options)
	if opts.MaxAttempts > 0 {
		optFns = append(optFns, func(o *costexplorer.Options) {
			o.RetryMaxAttempts = opts.MaxAttempts
		})
	}

	var buckets []entity.TimeBucket
	var token *string

	for page := 1; ; page++ {
		if opts.MaxPages > 0 && page > opts.MaxPages {
			return nil, fmt.Errorf("%w: stopped after %d pages", types.ErrPageLimitExceeded, opts.MaxPages)
		}

		result, err := client.GetCostAndUsage(ctx, costAndUsageInput(period, token), optFns...)
		if err != nil {
			var apiErr smithy.APIError
			if errors.As(err, &apiErr) {
				return nil, fmt.Errorf("cost explorer request failed on page %d (%s): %w", page, apiErr.ErrorCode(), err)
			}
			return nil, fmt.Errorf("cost explorer request failed on page %d: %w", page, err)
		}

		for _, rbt := range result.ResultsByTime {
			buckets = append(buckets, toTimeBucket(rbt))
		}

		if aws.ToString(result.NextPageToken) == "" {
			return buckets, nil
		}
		token = result.NextPageToken
	}
}

func toTimeBucket(rbt ceTypes.ResultByTime) entity.TimeBucket {
	bucket := entity.TimeBucket{
		Estimated: rbt.Estimated,
		Groups:    make([]entity.GroupRecord, 0, len(rbt.Groups)),
	}
	if rbt.TimePeriod != nil {
		bucket.Start = aws.ToString(rbt.TimePeriod.Start)
		bucket.End = aws.ToString(rbt.TimePeriod.End)
	}

	for _, group := range rbt.Groups {
		record := entity.GroupRecord{}
		if len(group.Keys) > 0 {
			record.UsageType = group.Keys[0]
		}
		if len(group.Keys) > 1 {
			record.Service = group.Keys[1]
		}
		if metric, ok := group.Metrics[entity.CostMetric]; ok {
			record.Amount = aws.ToString(metric.Amount)
			record.Unit = aws.ToString(metric.Unit)
		}
		bucket.Groups = append(bucket.Groups, record)
	}
	return bucket
}
