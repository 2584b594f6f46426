package testkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// MockTransport implements http.RoundTripper. It matches outgoing requests
// against a scenario's HTTP mock steps and answers with synthetic responses.
//
// Hand it to whatever client the code under test uses:
//
//	mt := testkit.NewMockTransport(s)
//	client := &http.Client{Transport: mt}
//	// ... run test ...
//	errs := mt.AssertAllCalled()
type MockTransport struct {
	mu      sync.Mutex
	steps   []httpMockEntry
	require bool
}

type httpMockEntry struct {
	step      MockStep
	callCount int
}

// NewMockTransport builds a MockTransport from the mock steps in s.
func NewMockTransport(s *Scenario) *MockTransport {
	mt := &MockTransport{require: s.IsMockRequired}
	for _, step := range s.HTTPMocks {
		mt.steps = append(mt.steps, httpMockEntry{step: step})
	}
	return mt
}

// RoundTrip returns the response of the first matching step.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	form, err := readForm(req)
	if err != nil {
		return nil, err
	}

	mt.mu.Lock()
	defer mt.mu.Unlock()

	for i := range mt.steps {
		entry := &mt.steps[i]
		if !stepMatches(entry.step, req, form) {
			continue
		}
		entry.callCount++
		return buildHTTPResponse(req, entry.step), nil
	}

	if mt.require {
		return nil, fmt.Errorf("testkit: unexpected outgoing HTTP call %s %s: no matching mock step", req.Method, req.URL)
	}

	return &http.Response{
		StatusCode: http.StatusNotFound,
		Status:     "404 Not Found",
		Body:       io.NopCloser(strings.NewReader(`{"error":{"message":"no mock configured"}}`)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Request:    req,
	}, nil
}

// AssertAllCalled returns one error per step that was never matched.
func (mt *MockTransport) AssertAllCalled() []error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var errs []error
	for _, e := range mt.steps {
		if e.callCount == 0 {
			errs = append(errs, fmt.Errorf("testkit: mock step %s %q was never called", e.step.Method, e.step.MatchURL))
		}
	}
	return errs
}

// Calls reports how many times the step at index i matched.
func (mt *MockTransport) Calls(i int) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.steps[i].callCount
}

func stepMatches(step MockStep, req *http.Request, form url.Values) bool {
	if step.Method != "" && !strings.EqualFold(step.Method, req.Method) {
		return false
	}
	if step.MatchURL != "" && !strings.HasPrefix(req.URL.String(), step.MatchURL) {
		return false
	}
	for k, v := range step.Form {
		if form.Get(k) != v {
			return false
		}
	}
	return true
}

// readForm parses an urlencoded body and puts the bytes back on req.
func readForm(req *http.Request) (url.Values, error) {
	if req.Body == nil {
		return url.Values{}, nil
	}
	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("testkit: read outgoing body: %w", err)
	}
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(raw))

	form, err := url.ParseQuery(string(raw))
	if err != nil {
		return url.Values{}, nil
	}
	return form, nil
}

func buildHTTPResponse(req *http.Request, step MockStep) *http.Response {
	code := step.Status
	if code == 0 {
		code = http.StatusOK
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(step.Body)),
		Request:    req,
	}
}
