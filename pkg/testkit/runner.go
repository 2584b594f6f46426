package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// HandlerFactory builds a fresh handler for one scenario. Outgoing HTTP
// calls made by the handler must go through client.
type HandlerFactory func(t *testing.T, client *http.Client) http.Handler

// Run executes a single scenario file.
//
// Lifecycle per scenario:
//  1. Build a MockTransport from the scenario's HTTP mocks.
//  2. Build the handler with a client using that transport.
//  3. Fire the setup requests; each must answer 2xx.
//  4. Fire the request under test and assert status and body.
//  5. Verify every mock step was called.
func Run(t *testing.T, path string, factory HandlerFactory) {
	t.Helper()

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", path, err)
	}
	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, s, factory)
	})
}

// RunDir runs every *.json scenario in dir as a subtest. Files that fail to
// load are reported as test failures.
func RunDir(t *testing.T, dir string, factory HandlerFactory) {
	t.Helper()

	scenarios, errs := LoadAllFromDir(dir)
	for _, err := range errs {
		t.Error(err)
	}
	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, s, factory)
		})
	}
}

func runScenario(t *testing.T, s *Scenario, factory HandlerFactory) {
	t.Helper()

	mt := NewMockTransport(s)
	handler := factory(t, &http.Client{Transport: mt})

	for i, step := range s.Setup {
		rec := fire(handler, step)
		if rec.Code < 200 || rec.Code > 299 {
			t.Fatalf("[%s] setup[%d] %s %s: status %d\nbody: %s", s.Name, i, step.Method, step.URL, rec.Code, rec.Body.String())
		}
	}

	rec := fire(handler, s.Request)
	AssertStatusCode(t, s, rec.Code, rec.Body.Bytes())
	if len(s.Expected.Body) > 0 || s.Expected.Len != nil {
		AssertJSONBody(t, s, rec.Body.Bytes())
	}
	AssertMocksAllCalled(t, s, mt)
}

func fire(handler http.Handler, step Step) *httptest.ResponseRecorder {
	method := strings.ToUpper(step.Method)
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(step.Body) > 0 {
		body = bytes.NewReader(step.Body)
	}

	req := httptest.NewRequest(method, step.URL, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range step.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
