// Package config handles application configuration via environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"bizdash/internal/platform/logger"
)

// Conf is a namespaced view over environment variables, e.g. "BIZDASH_API_" or "BIZ_"
// New() reads globally, Prefix narrows the view for a service or module
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully qualified env var name for k
func (c Conf) Key(k string) string { return c.prefix + k }

// lookup returns the trimmed value and whether it was non empty
func (c Conf) lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.Key(k)))
	return v, v != ""
}

func (c Conf) required(k string) string {
	v, ok := c.lookup(k)
	if !ok {
		logger.Get().Panic().Str("key", c.Key(k)).Msg("missing required env")
	}
	return v
}

// MustString panics if the key is missing or empty
func (c Conf) MustString(key string) string { return c.required(key) }

// MustInt panics if the key is missing or not an int
func (c Conf) MustInt(key string) int {
	s := c.required(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.Key(key)).Str("value", s).Msg("invalid int value")
	}
	return v
}

// MustLocation panics if the key is missing or not an IANA zone name
func (c Conf) MustLocation(key string) *time.Location {
	s := c.required(key)
	loc, err := time.LoadLocation(s)
	if err != nil {
		logger.Get().Panic().Err(err).Str("key", c.Key(key)).Str("value", s).Msg("invalid time zone")
	}
	return loc
}

// MayString returns the value or def if missing
func (c Conf) MayString(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// MayInt returns the value or def if missing; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		c.warnDefault(key, s, strconv.Itoa(def), "invalid int; using default")
		return def
	}
	return v
}

// MayBool returns the value or def if missing; logs and returns def if invalid
func (c Conf) MayBool(key string, def bool) bool {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		c.warnDefault(key, s, strconv.FormatBool(def), "invalid bool; using default")
		return def
	}
	return v
}

// MayDuration returns the value or def if missing; logs and returns def if invalid
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		c.warnDefault(key, s, def.String(), "invalid duration; using default")
		return def
	}
	return d
}

// MayCSV splits a comma separated value, dropping blanks; def if nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it is one of allowed (case insensitive) or def when missing
// an unknown value panics so misconfiguration fails at boot
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	if v == def {
		return def
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}

// MayLocation loads an IANA zone such as "Asia/Manila"; def when missing
// an unknown zone logs and falls back to def, which is itself loaded and panics if invalid
func (c Conf) MayLocation(key, def string) *time.Location {
	s, ok := c.lookup(key)
	if ok {
		loc, err := time.LoadLocation(s)
		if err == nil {
			return loc
		}
		c.warnDefault(key, s, def, "invalid time zone; using default")
	}
	loc, err := time.LoadLocation(def)
	if err != nil {
		logger.Get().Panic().Err(err).Str("key", c.Key(key)).Str("default", def).Msg("invalid default time zone")
	}
	return loc
}

func (c Conf) warnDefault(key, value, def, msg string) {
	logger.Get().Warn().Str("key", c.Key(key)).Str("value", value).Str("default", def).Msg(msg)
}
