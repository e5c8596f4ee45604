package changeset

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the layout used by Date.String.
const DateFormat = "Mon Jan 02 15:04:05 2006 -0700"

// Date is the commit date of a changeset.
type Date struct {
	// Unix is the number of seconds since the Unix epoch, in UTC.
	Unix int64
	// Offset is the committer's zone offset in seconds west of UTC.
	Offset int
}

// Time returns the date in the committer's zone.
func (d Date) Time() time.Time {
	return time.Unix(d.Unix, 0).In(time.FixedZone("", -d.Offset))
}

func (d Date) String() string {
	return d.Time().Format(DateFormat)
}

// parseDateLine splits a date line into the date and the raw extra field.
func parseDateLine(line string) (Date, string, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return Date{}, "", fmt.Errorf("%w: %q", ErrMalformedDate, line)
	}

	unix, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Date{}, "", fmt.Errorf("%w: timestamp %q", ErrMalformedDate, parts[0])
	}

	offset, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, "", fmt.Errorf("%w: offset %q", ErrMalformedDate, parts[1])
	}

	var extra string
	if len(parts) == 3 {
		extra = parts[2]
	}

	return Date{Unix: unix, Offset: offset}, extra, nil
}
