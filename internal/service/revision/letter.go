package revision

import (
	"fmt"
	"regexp"
)

var letterRe = regexp.MustCompile(`^[A-Z]*$`)

// NextRevisionLetter increments a revision letter the way spreadsheet columns
// are numbered: "" -> A, Z -> AA, AZ -> BA, ZZ -> AAA.
func NextRevisionLetter(current string) (string, error) {
	if !letterRe.MatchString(current) {
		return "", fmt.Errorf("revision letter %q: must contain only A-Z", current)
	}

	b := []byte(current)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != 'Z' {
			b[i]++
			return string(b), nil
		}
		b[i] = 'A'
	}
	return "A" + string(b), nil
}
