// Package testkit drives REST API tests from JSON scenario files.
//
// A scenario describes one request, the status and body it should produce,
// and the outgoing HTTP calls (Stripe, for instance) to intercept:
//
//	testdata/scenarios/
//	  create_product.json
//	  payment_intent.json
//
// Example _test.go:
//
//	func TestScenarios(t *testing.T) {
//	    testkit.RunDir(t, "testdata/scenarios", func(t *testing.T, client *http.Client) http.Handler {
//	        return buildHandler(t, client)
//	    })
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Scenario is a single REST API test case.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Setup requests run in order before the request under test. Their
	// responses only need to be 2xx.
	Setup []Step `json:"setup"`

	Request  Step     `json:"request"`
	Expected Expected `json:"expected"`

	// IsMockRequired fails outgoing calls that match no mock step.
	IsMockRequired bool       `json:"isMockRequired"`
	HTTPMocks      []MockStep `json:"httpMocks"`
}

// Step is one HTTP request fired at the handler.
type Step struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
	Body    json.RawMessage   `json:"body"`
}

// Expected holds the response assertions.
type Expected struct {
	Status int `json:"status"`

	// Body is compared as a subset: every key present here must match, extra
	// keys in the actual response are ignored. Arrays must match in length.
	Body json.RawMessage `json:"body"`

	// Len asserts the response is a JSON array of this length.
	Len *int `json:"len"`
}

// MockStep intercepts outgoing HTTP calls whose method and URL match.
type MockStep struct {
	Method   string `json:"method"`   // empty matches any
	MatchURL string `json:"matchUrl"` // prefix; empty matches any

	// Form lists urlencoded body fields the outgoing request must carry.
	Form map[string]string `json:"form"`

	Status int             `json:"status"` // defaults to 200
	Body   json.RawMessage `json:"body"`
}

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", path, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Request.URL == "" {
		return fmt.Errorf("request.url is required")
	}
	if s.Expected.Status == 0 {
		return fmt.Errorf("expected.status is required")
	}
	for i, step := range s.Setup {
		if step.URL == "" {
			return fmt.Errorf("setup[%d].url is required", i)
		}
	}
	return nil
}

// LoadAllFromDir loads every *.json file in dir, sorted by name. Files that
// fail to load are collected as errors.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(paths) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}
	sort.Strings(paths)

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}
