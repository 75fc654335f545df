package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var serialPrefixRe = regexp.MustCompile(`^[A-Z][A-Z0-9]*$`)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Serial.validate(); err != nil {
		return fmt.Errorf("serial: %w", err)
	}

	if c.Revision.MaxRetries < 1 || c.Revision.MaxRetries > 20 {
		return fmt.Errorf("revision: max_retries must be in [1, 20] (got %d)", c.Revision.MaxRetries)
	}

	if c.Notify.QueueSize <= 0 {
		return fmt.Errorf("notify: queue_size must be > 0 (got %d)", c.Notify.QueueSize)
	}
	if c.Notify.Workers <= 0 {
		return fmt.Errorf("notify: workers must be > 0 (got %d)", c.Notify.Workers)
	}

	if c.Server.WritesPerMinute < 0 {
		return fmt.Errorf("server: writes_per_minute must be >= 0 (got %d)", c.Server.WritesPerMinute)
	}

	return nil
}

func (s *SerialConfig) validate() error {
	if !serialPrefixRe.MatchString(s.Prefix) {
		return fmt.Errorf("prefix must match %s (got %q)", serialPrefixRe, s.Prefix)
	}
	if s.ReservationTTL <= 0 {
		return fmt.Errorf("reservation_ttl must be > 0 (got %v)", s.ReservationTTL)
	}
	if s.MaxRetries < 1 || s.MaxRetries > 20 {
		return fmt.Errorf("max_retries must be in [1, 20] (got %d)", s.MaxRetries)
	}

	rules, err := ParseSerialCategories(s.CategoriesRaw)
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	s.Categories = rules

	return nil
}

// ParseSerialCategories parses a comma-separated list of CODE:start:width
// rules (e.g. "NCR:1:4,DWG:1000:4"). An empty string returns a nil slice.
func ParseSerialCategories(raw string) ([]CategoryRule, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	rules := make([]CategoryRule, 0, len(parts))
	seen := make(map[string]bool, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		fields := strings.Split(p, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("invalid rule %q: want CODE:start:width", p)
		}

		code := strings.ToUpper(strings.TrimSpace(fields[0]))
		if !serialPrefixRe.MatchString(code) {
			return nil, fmt.Errorf("invalid category code %q", fields[0])
		}
		if seen[code] {
			return nil, fmt.Errorf("duplicate category %q", code)
		}
		seen[code] = true

		start, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
		if err != nil || start < 1 {
			return nil, fmt.Errorf("invalid start %q for %s", fields[1], code)
		}
		width, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil || width < 1 || width > 12 {
			return nil, fmt.Errorf("invalid width %q for %s", fields[2], code)
		}

		rules = append(rules, CategoryRule{Code: code, Start: start, Width: width})
	}

	return rules, nil
}
