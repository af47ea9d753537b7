package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"

	DefaultPageSize = 50
	MaxPageSize     = 200
)

// ValidateUUID parses a required id parameter.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("Invalid %s", fieldName)
	}
	return id, nil
}

// DateRange is an inclusive range of calendar days. Either end may be open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ParseDateRange reads YYYY-MM-DD bounds in loc (time.Local when nil). To is
// moved to the last instant of its day.
func ParseDateRange(from, to string, loc *time.Location) (DateRange, error) {
	var r DateRange
	var err error
	if r.From, err = ParseDate(from, "from", loc); err != nil {
		return DateRange{}, err
	}
	if r.To, err = ParseDate(to, "to", loc); err != nil {
		return DateRange{}, err
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return DateRange{}, fmt.Errorf("from must not be after to")
	}
	if r.To != nil {
		end := r.To.AddDate(0, 0, 1).Add(-time.Nanosecond)
		r.To = &end
	}
	return r, nil
}

// ParseDate reads one optional YYYY-MM-DD value in loc (time.Local when
// nil). Blank input yields nil.
func ParseDate(value, field string, loc *time.Location) (*time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return nil, fmt.Errorf("%s must be in YYYY-MM-DD format", field)
	}
	return &day, nil
}

// Page is a limit/offset window over a listing.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ParsePage reads raw limit and offset query values. Blank or zero limit
// means DefaultPageSize and larger limits are capped at MaxPageSize.
func ParsePage(limit, offset string) (Page, error) {
	p := Page{Limit: DefaultPageSize}
	if s := strings.TrimSpace(limit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return Page{}, fmt.Errorf("limit must be a non-negative integer")
		}
		if n > 0 {
			p.Limit = min(n, MaxPageSize)
		}
	}
	if s := strings.TrimSpace(offset); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return Page{}, fmt.Errorf("offset must be a non-negative integer")
		}
		p.Offset = n
	}
	return p, nil
}
