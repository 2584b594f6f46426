package testkit_test

import (
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kidsisland/pkg/testkit"
)

func writeScenario(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadScenarioValidation(t *testing.T) {
	dir := t.TempDir()

	_, err := testkit.LoadScenario(writeScenario(t, dir, "a.json", `{"request":{"url":"/"},"expected":{"status":200}}`))
	assert.ErrorContains(t, err, "name is required")

	_, err = testkit.LoadScenario(writeScenario(t, dir, "b.json", `{"name":"x","expected":{"status":200}}`))
	assert.ErrorContains(t, err, "request.url is required")

	_, err = testkit.LoadScenario(writeScenario(t, dir, "c.json", `{"name":"x","request":{"url":"/"}}`))
	assert.ErrorContains(t, err, "expected.status is required")

	s, err := testkit.LoadScenario(writeScenario(t, dir, "d.json", `{"name":"ok","request":{"url":"/"},"expected":{"status":204}}`))
	require.NoError(t, err)
	assert.Equal(t, 204, s.Expected.Status)
}

func TestMockTransportMatchesForm(t *testing.T) {
	s := &testkit.Scenario{
		IsMockRequired: true,
		HTTPMocks: []testkit.MockStep{{
			Method:   http.MethodPost,
			MatchURL: "https://api.stripe.test/v1/",
			Form:     map[string]string{"amount": "500"},
			Status:   http.StatusCreated,
			Body:     []byte(`{"ok":true}`),
		}},
	}
	mt := testkit.NewMockTransport(s)
	client := &http.Client{Transport: mt}

	_, err := client.PostForm("https://api.stripe.test/v1/charges", url.Values{"amount": {"499"}})
	assert.Error(t, err, "wrong form value falls through to the required check")
	assert.Len(t, mt.AssertAllCalled(), 1)

	res, err := client.PostForm("https://api.stripe.test/v1/charges", url.Values{"amount": {"500"}})
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, 1, mt.Calls(0))
	assert.Empty(t, mt.AssertAllCalled())
}

func TestMockTransportUnmatchedIs404(t *testing.T) {
	mt := testkit.NewMockTransport(&testkit.Scenario{})
	res, err := (&http.Client{Transport: mt}).Get("https://example.test/anything")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDiffJSONSubset(t *testing.T) {
	exp := map[string]interface{}{"admin": true}
	act := map[string]interface{}{"admin": true, "extra": "ignored"}
	assert.Empty(t, testkit.DiffJSON("", exp, act))

	diffs := testkit.DiffJSON("", []interface{}{1.0, 2.0}, []interface{}{1.0})
	require.Len(t, diffs, 1)
	assert.True(t, strings.Contains(diffs[0], "array length"))

	diffs = testkit.DiffJSON("", map[string]interface{}{"a": "x"}, map[string]interface{}{})
	require.Len(t, diffs, 1)
	assert.Contains(t, diffs[0], "missing in actual")
}

func TestRunDir(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "health.json", `{
		"name": "health",
		"setup": [{"method": "POST", "url": "/touch"}],
		"request": {"method": "GET", "url": "/health"},
		"expected": {"status": 200, "body": {"status": "ok", "touched": 1}}
	}`)

	factory := func(t *testing.T, _ *http.Client) http.Handler {
		touched := 0
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/touch":
				touched++
				w.WriteHeader(http.StatusNoContent)
			case "/health":
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, `{"status":"ok","touched":`+strconv.Itoa(touched)+`}`)
			default:
				http.NotFound(w, r)
			}
		})
	}
	testkit.RunDir(t, dir, factory)
}
