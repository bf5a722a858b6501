package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"accounts-server/internal/shared/utils"
)

// envReader reads typed settings and collects every parse error instead of stopping at the first.
type envReader struct {
	errs []error
}

func (r *envReader) str(key, fallback string) string {
	return utils.GetEnv(key, fallback)
}

func (r *envReader) integer(key string, fallback int) int {
	raw := utils.GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	n, err := parseInt(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be an integer, got %q", key, raw))
		return fallback
	}
	return n
}

func (r *envReader) seconds(key string, fallback int) time.Duration {
	return time.Duration(r.integer(key, fallback)) * time.Second
}

func (r *envReader) flag(key string) bool {
	raw := utils.GetEnv(key, "false")
	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be true or false, got %q", key, raw))
		return false
	}
	return v
}

func (r *envReader) tokenTTL(key string) time.Duration {
	ttl, err := ParseTokenTTL(utils.GetEnv(key, "1d"))
	if err != nil {
		r.errs = append(r.errs, err)
		return DefaultTokenTTL
	}
	return ttl
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
