// Package raw reads LOG_* and friends before the logger exists; it must not
// import the logger
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed env view with silent defaults
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) value(key string) string { return strings.TrimSpace(os.Getenv(c.prefix + key)) }

// Get returns the value, or def when unset or blank
func (c Conf) Get(key, def string) string {
	if v := c.value(key); v != "" {
		return v
	}
	return def
}

// GetBool understands 1/0, true/false, yes/no and on/off; anything else is def
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.value(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

// GetInt returns a non negative integer, or def when unset or malformed
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.Atoi(c.value(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}
