package serial

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TransmittalCategory is the ledger category of transmittal numbers.
const TransmittalCategory = "TRN"

const transmittalWidth = 3

var (
	codeRe   = regexp.MustCompile(`^[A-Z][A-Z0-9]*$`)
	numberRe = regexp.MustCompile(`^[0-9]+$`)
	periodRe = regexp.MustCompile(`^[0-9]{2}(0[1-9]|1[0-2])$`)
)

// Parts are the components of a formatted serial number.
type Parts struct {
	ProjectCode string // empty when the serial carries no project prefix
	Prefix      string
	Category    string
	Period      string // yymm, transmittal numbers only
	Number      int64
}

// Format renders {PREFIX}-{CATEGORY}-{N} with N zero-padded to width,
// optionally preceded by {PROJECT}-.
func Format(prefix, category string, n int64, width int, projectCode string) string {
	s := fmt.Sprintf("%s-%s-%0*d", prefix, strings.ToUpper(category), width, n)
	if projectCode != "" {
		s = strings.ToUpper(projectCode) + "-" + s
	}
	return s
}

// FormatTransmittal renders {PREFIX}-TRN-{yymm}-{seq:3}, optionally preceded
// by {PROJECT}-.
func FormatTransmittal(prefix, period string, seq int64, projectCode string) string {
	s := fmt.Sprintf("%s-%s-%s-%0*d", prefix, TransmittalCategory, period, transmittalWidth, seq)
	if projectCode != "" {
		s = strings.ToUpper(projectCode) + "-" + s
	}
	return s
}

// Period returns the yymm key of t in UTC.
func Period(t time.Time) string {
	return t.UTC().Format("0601")
}

// Parse splits a serial produced by Format or FormatTransmittal.
func Parse(serial string) (Parts, error) {
	tokens := strings.Split(serial, "-")
	n := len(tokens)

	var p Parts
	switch {
	case n >= 4 && tokens[n-3] == TransmittalCategory && periodRe.MatchString(tokens[n-2]):
		if n > 5 {
			return Parts{}, fmt.Errorf("parse serial %q: too many segments", serial)
		}
		p.Prefix, p.Category, p.Period = tokens[n-4], TransmittalCategory, tokens[n-2]
		if n == 5 {
			p.ProjectCode = tokens[0]
		}
	case n == 3 || n == 4:
		p.Prefix, p.Category = tokens[n-3], tokens[n-2]
		if n == 4 {
			p.ProjectCode = tokens[0]
		}
	default:
		return Parts{}, fmt.Errorf("parse serial %q: want 3 or 4 segments, got %d", serial, n)
	}

	if !codeRe.MatchString(p.Prefix) {
		return Parts{}, fmt.Errorf("parse serial %q: bad prefix %q", serial, p.Prefix)
	}
	if !codeRe.MatchString(p.Category) {
		return Parts{}, fmt.Errorf("parse serial %q: bad category %q", serial, p.Category)
	}
	if p.ProjectCode != "" && !codeRe.MatchString(p.ProjectCode) {
		return Parts{}, fmt.Errorf("parse serial %q: bad project code %q", serial, p.ProjectCode)
	}

	num := tokens[n-1]
	if !numberRe.MatchString(num) {
		return Parts{}, fmt.Errorf("parse serial %q: bad number %q", serial, num)
	}
	v, err := strconv.ParseInt(num, 10, 64)
	if err != nil || v < 1 {
		return Parts{}, fmt.Errorf("parse serial %q: number out of range", serial)
	}
	p.Number = v
	return p, nil
}

// Validate reports whether serial is well formed and belongs to category.
func Validate(serial, category string) bool {
	p, err := Parse(serial)
	if err != nil {
		return false
	}
	return p.Category == strings.ToUpper(category)
}
