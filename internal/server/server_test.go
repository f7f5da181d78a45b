package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw33tLie/pwcheck/pkg/generator"
	"github.com/sw33tLie/pwcheck/pkg/history"
	"github.com/sw33tLie/pwcheck/pkg/scorer"
)

func newTestServer(user, pass string) (*Server, *httptest.Server) {
	s := New(scorer.New(), generator.New(), history.NewRing(10), user, pass)
	return s, httptest.NewServer(s.Handler())
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

func TestEvaluate(t *testing.T) {
	_, ts := newTestServer("", "")
	defer ts.Close()

	res := do(t, http.MethodPost, ts.URL+"/api/evaluate", `{"password":"password"}`)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out struct {
		Report struct {
			CommonPassword scorer.CheckResult `json:"common_password"`
			TotalScore     int                `json:"total_score"`
			Strength       scorer.Strength    `json:"strength"`
		} `json:"report"`
		Feedback     []string            `json:"feedback"`
		Guessability scorer.Guessability `json:"guessability"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	assert.False(t, out.Report.CommonPassword.Passed)
	assert.Equal(t, scorer.Weak, out.Report.Strength)
	assert.Contains(t, out.Feedback, "Avoid using common passwords that are easy to guess")
	assert.Equal(t, 0, out.Guessability.Score)
}

func TestEvaluate_BadRequests(t *testing.T) {
	_, ts := newTestServer("", "")
	defer ts.Close()

	for _, body := range []string{`{"password":""}`, `not json`} {
		res := do(t, http.MethodPost, ts.URL+"/api/evaluate", body)
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	}
}

func TestGenerate(t *testing.T) {
	_, ts := newTestServer("", "")
	defer ts.Close()

	res := do(t, http.MethodPost, ts.URL+"/api/generate", `{"length":16,"uppercase":true,"digits":true,"special":true}`)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out GenerateResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	assert.Len(t, out.Password, 16)
	assert.Equal(t, 4, out.Report.Classes.Count())
}

func TestGenerate_ValidationError(t *testing.T) {
	_, ts := newTestServer("", "")
	defer ts.Close()

	res := do(t, http.MethodPost, ts.URL+"/api/generate", `{"length":4,"uppercase":true}`)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), "at least 8")
}

func TestGenerate_LengthAboveMaximum(t *testing.T) {
	_, ts := newTestServer("", "")
	defer ts.Close()

	for _, length := range []string{"129", "2000000", "1125899906842624"} {
		res := do(t, http.MethodPost, ts.URL+"/api/generate", `{"length":`+length+`,"uppercase":true}`)
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()

		assert.Equal(t, http.StatusBadRequest, res.StatusCode, length)
		assert.Contains(t, string(body), "at most 128", length)
	}
}

func TestHistoryStatsAndClear(t *testing.T) {
	_, ts := newTestServer("", "")
	defer ts.Close()

	for _, pw := range []string{"password", "Tr0ub4dor&3xyz"} {
		res := do(t, http.MethodPost, ts.URL+"/api/evaluate", `{"password":"`+pw+`"}`)
		res.Body.Close()
	}

	res := do(t, http.MethodGet, ts.URL+"/api/history?limit=1", "")
	var entries []history.Entry
	require.NoError(t, json.NewDecoder(res.Body).Decode(&entries))
	res.Body.Close()
	require.Len(t, entries, 1)
	assert.Equal(t, "T************z", entries[0].Masked)

	res = do(t, http.MethodGet, ts.URL+"/api/stats", "")
	var st history.Stats
	require.NoError(t, json.NewDecoder(res.Body).Decode(&st))
	res.Body.Close()
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Counts[scorer.VeryStrong])

	res = do(t, http.MethodDelete, ts.URL+"/api/history", "")
	res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res = do(t, http.MethodGet, ts.URL+"/api/history?limit=-1", "")
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestBasicAuth(t *testing.T) {
	_, ts := newTestServer("admin", "s3cret")
	defer ts.Close()

	res := do(t, http.MethodGet, ts.URL+"/api/stats", "")
	res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/stats", nil)
	require.NoError(t, err)
	req.SetBasicAuth("admin", "s3cret")
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestMetrics(t *testing.T) {
	_, ts := newTestServer("", "")
	defer ts.Close()

	res := do(t, http.MethodPost, ts.URL+"/api/evaluate", `{"password":"password"}`)
	res.Body.Close()

	res = do(t, http.MethodGet, ts.URL+"/metrics", "")
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `pwcheck_evaluations_total{strength="Weak"} 1`)
}
