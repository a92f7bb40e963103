package account

import (
	"os"
	"strconv"
)

type Config struct {
	// AutoVerify marks new accounts verified at creation instead of asking
	// the notify publisher for a verification email.
	AutoVerify bool
}

// ConfigFromEnv reads PROVISION_AUTO_VERIFY (default true).
func ConfigFromEnv() Config {
	autoVerify := true
	if v := os.Getenv("PROVISION_AUTO_VERIFY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			autoVerify = b
		}
	}
	return Config{AutoVerify: autoVerify}
}
