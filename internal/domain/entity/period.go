package entity

import (
	"fmt"
	"time"
)

// DateLayout é o formato ISO usado pelo Cost Explorer.
const DateLayout = "2006-01-02"

// Period is the [Start, End] range sent to the billing API unchanged.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// String retorna o período no formato "start to end".
func (p Period) String() string {
	return fmt.Sprintf("%s to %s", p.Start, p.End)
}

// CurrentMonth retorna o primeiro e o último dia do mês de ref.
func CurrentMonth(ref time.Time) Period {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return Period{
		Start: first.Format(DateLayout),
		End:   last.Format(DateLayout),
	}
}

// FetchOptions controls pagination and retries of the fetcher.
type FetchOptions struct {
	// MaxPages limits the number of API calls. Zero means no limit.
	MaxPages int
	// MaxAttempts overrides the SDK retryer. Zero keeps the SDK default.
	MaxAttempts int
}
