package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile     string
	Profile        string
	Start          string
	End            string
	Database       string
	CreateTable    bool
	Account        string
	ResolveAccount bool
	MaxPages       int
	MaxAttempts    int
	ReportName     string
	ReportType     []string
	Dir            string
	Quiet          bool
}
