package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var csrfPattern = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

// testClient drives the router like a browser: it keeps the cookies the
// server sets and picks the CSRF token out of rendered forms.
type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newTestClient(t *testing.T, h http.Handler) *testClient {
	return &testClient{t: t, handler: h, cookies: map[string]*http.Cookie{}}
}

func (tc *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range tc.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	tc.handler.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(tc.cookies, c.Name)
			continue
		}
		tc.cookies[c.Name] = c
	}
	return w
}

func (tc *testClient) get(target string) *httptest.ResponseRecorder {
	return tc.do(httptest.NewRequest(http.MethodGet, target, nil))
}

// postRaw submits the form as is, without a CSRF token.
func (tc *testClient) postRaw(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return tc.do(req)
}

// post loads target first to obtain a CSRF token, then submits the form.
func (tc *testClient) post(target string, form url.Values) *httptest.ResponseRecorder {
	tc.t.Helper()
	page := tc.get(target)
	require.Equal(tc.t, http.StatusOK, page.Code, "GET %s", target)
	m := csrfPattern.FindStringSubmatch(page.Body.String())
	require.Len(tc.t, m, 2, "no csrf token on %s", target)

	form.Set("csrf_token", m[1])
	return tc.postRaw(target, form)
}

func (tc *testClient) api(method, target, token string, body any) *httptest.ResponseRecorder {
	tc.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(tc.t, err)
		r = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	tc.handler.ServeHTTP(w, req)
	return w
}
