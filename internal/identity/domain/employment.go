package domain

import (
	"time"
	_ "time/tzdata" // tenant timezones must resolve on minimal images

	"github.com/aussiebroadwan/roster/pkg/idx"
)

type EmploymentType string

const (
	EmploymentFulltime EmploymentType = "fulltime"
	EmploymentParttime EmploymentType = "parttime"
	EmploymentContract EmploymentType = "contract"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFulltime, EmploymentParttime, EmploymentContract:
		return true
	}
	return false
}

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = time.DateOnly

type Employment struct {
	ID              idx.ID
	TenantID        idx.ID
	AccountID       idx.ID
	EmployeeNo      string
	Type            EmploymentType
	HireDate        time.Time // date only, midnight UTC
	TerminationDate *time.Time
	Stamp
}

// Today returns the calendar date of now in the tenant's timezone, as a
// midnight UTC value. Unknown zones fall back to UTC.
func Today(now time.Time, timezone string) time.Time {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
