package testkit

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode checks the response code with testify.
func AssertStatusCode(t *testing.T, s *Scenario, got int, body []byte) {
	t.Helper()
	assert.Equal(t, s.Expected.Status, got, "[%s] HTTP status code mismatch\nbody: %s", s.Name, body)
}

// AssertJSONBody checks that every value in the expected body appears in the
// actual response. Key order and whitespace never matter.
func AssertJSONBody(t *testing.T, s *Scenario, actual []byte) {
	t.Helper()

	var act interface{}
	if !assert.NoError(t, json.Unmarshal(actual, &act), "[%s] response is not valid JSON\nbody: %s", s.Name, actual) {
		return
	}

	if n := s.Expected.Len; n != nil {
		list, ok := act.([]interface{})
		if assert.True(t, ok, "[%s] expected a JSON array, got %T", s.Name, act) {
			assert.Len(t, list, *n, "[%s] array length", s.Name)
		}
	}

	if len(s.Expected.Body) == 0 {
		return
	}
	var exp interface{}
	require.NoError(t, json.Unmarshal(s.Expected.Body, &exp), "[%s] expected body is not valid JSON", s.Name)

	for _, d := range DiffJSON("", exp, act) {
		assert.Fail(t, "response body mismatch", "[%s]\n%s", s.Name, d)
	}
}

// AssertMocksAllCalled fails the test if any mock step was never triggered.
func AssertMocksAllCalled(t *testing.T, s *Scenario, mt *MockTransport) {
	t.Helper()
	for _, err := range mt.AssertAllCalled() {
		assert.NoError(t, err, "[%s]", s.Name)
	}
}

// DiffJSON lists where actual departs from expected. Objects are compared as
// subsets; arrays element by element and by length.
func DiffJSON(path string, expected, actual interface{}) []string {
	var diffs []string
	switch exp := expected.(type) {
	case map[string]interface{}:
		act, ok := actual.(map[string]interface{})
		if !ok {
			return append(diffs, fmt.Sprintf("  %s: expected object, got %T", keyPath(path), actual))
		}
		for k, ev := range exp {
			p := keyPath(path) + "." + k
			av, exists := act[k]
			if !exists {
				diffs = append(diffs, fmt.Sprintf("  %s: missing in actual", p))
				continue
			}
			diffs = append(diffs, DiffJSON(p, ev, av)...)
		}
	case []interface{}:
		act, ok := actual.([]interface{})
		if !ok {
			return append(diffs, fmt.Sprintf("  %s: expected array, got %T", keyPath(path), actual))
		}
		if len(exp) != len(act) {
			diffs = append(diffs, fmt.Sprintf("  %s: array length expected=%d actual=%d", keyPath(path), len(exp), len(act)))
		}
		for i := 0; i < len(exp) && i < len(act); i++ {
			diffs = append(diffs, DiffJSON(fmt.Sprintf("%s[%d]", keyPath(path), i), exp[i], act[i])...)
		}
	default:
		if fmt.Sprintf("%v", expected) != fmt.Sprintf("%v", actual) {
			diffs = append(diffs, fmt.Sprintf("  %s:\n    - %v\n    + %v", keyPath(path), expected, actual))
		}
	}
	return diffs
}

func keyPath(path string) string {
	if path == "" {
		return "root"
	}
	return strings.TrimPrefix(path, ".")
}
