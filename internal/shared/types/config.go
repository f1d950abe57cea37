package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Profile        string   `json:"profile" yaml:"profile" toml:"profile"`
	Start          string   `json:"start" yaml:"start" toml:"start"`
	End            string   `json:"end" yaml:"end" toml:"end"`
	Database       string   `json:"database" yaml:"database" toml:"database"`
	CreateTable    bool     `json:"create_table" yaml:"create_table" toml:"create_table"`
	Account        string   `json:"account" yaml:"account" toml:"account"`
	ResolveAccount bool     `json:"resolve_account" yaml:"resolve_account" toml:"resolve_account"`
	MaxPages       int      `json:"max_pages" yaml:"max_pages" toml:"max_pages"`
	MaxAttempts    int      `json:"max_attempts" yaml:"max_attempts" toml:"max_attempts"`
	ReportName     string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType     []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir            string   `json:"dir" yaml:"dir" toml:"dir"`
}
