package types

import "errors"

var (
	ErrNoValidProfilesFound = errors.New("the specified profile was not found in AWS configuration")
	ErrStoreUnavailable     = errors.New("cost database is unavailable")
	ErrPageLimitExceeded    = errors.New("cost explorer returned more pages than allowed")
	ErrInvalidDate          = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidPeriod        = errors.New("start date must be before end date")
)
