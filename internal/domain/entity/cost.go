package entity

// Parâmetros fixos da consulta ao Cost Explorer.
const (
	CostMetric         = "UnblendedCost"
	DimensionUsageType = "USAGE_TYPE"
	DimensionService   = "SERVICE"
)

// NegligibleAmount é o valor abaixo do qual um grupo não é persistido nem exibido.
// O valor continua somando no total.
const NegligibleAmount = 0.00001

// DefaultAccountLabel é o rótulo literal gravado na coluna account.
const DefaultAccountLabel = "account"

// GroupRecord represents one (usage type, service) group inside a time bucket.
// Amount is kept exactly as the API returned it.
type GroupRecord struct {
	UsageType string `json:"usage_type"`
	Service   string `json:"service"`
	Amount    string `json:"amount"`
	Unit      string `json:"unit,omitempty"`
}

// TimeBucket is one monthly period returned by GetCostAndUsage.
type TimeBucket struct {
	Start     string        `json:"start"`
	End       string        `json:"end"`
	Estimated bool          `json:"estimated"`
	Groups    []GroupRecord `json:"groups"`
}

// PersistedRow é a forma durável de um GroupRecord, na ordem das colunas da tabela.
type PersistedRow struct {
	Account         string `json:"account"`
	TimePeriodStart string `json:"time_period_start"`
	UsageType       string `json:"usage_type"`
	Service         string `json:"service"`
	Amount          string `json:"amount"`
}

// CostReport contains the outcome of one aggregation pass.
type CostReport struct {
	Period  Period         `json:"period"`
	Account string         `json:"account"`
	Total   float64        `json:"total"`
	Records int            `json:"records"`
	Skipped int            `json:"skipped"`
	Rows    []PersistedRow `json:"rows"`
}
