package storage

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/good-yellow-bee/innohub/internal/metrics"
)

// Collection names shared by both backends.
const (
	collUsers       = "users"
	collProfiles    = "profiles"
	collProjects    = "projects"
	collMentors     = "mentors"
	collGrants      = "grants"
	collLaunches    = "launches"
	collSubscribers = "subscribers"
)

var fieldRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// checkField rejects field names that cannot be inlined into a JSON path.
func checkField(name string) error {
	if !fieldRegex.MatchString(name) {
		return fmt.Errorf("invalid field name %q", name)
	}
	return nil
}

// splitElementPath splits "array.field" into its two parts.
func splitElementPath(path string) (string, string, error) {
	array, field, ok := strings.Cut(path, ".")
	if !ok {
		return "", "", fmt.Errorf("element path %q must be array.field", path)
	}
	if err := checkField(array); err != nil {
		return "", "", err
	}
	if err := checkField(field); err != nil {
		return "", "", err
	}
	return array, field, nil
}

// sortedKeys returns map keys in a stable order so generated queries are deterministic.
func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}

// observe records latency and failures for one store operation.
func observe(backend, collection, op string, start time.Time, err *error) {
	metrics.StoreQueryDuration.WithLabelValues(backend, collection, op).Observe(time.Since(start).Seconds())
	if err != nil && *err != nil && !errors.Is(*err, ErrDuplicate) {
		metrics.StoreErrorsTotal.WithLabelValues(backend, collection, op).Inc()
	}
}
