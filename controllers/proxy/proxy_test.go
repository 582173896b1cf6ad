package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ojena-analytics/shopify"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeForwarder struct {
	body  string
	err   error
	calls int
	last  shopify.ProxyRequest
}

func (f *fakeForwarder) Forward(_ context.Context, req shopify.ProxyRequest) (json.RawMessage, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.body), nil
}

var testCreds = shopify.Credentials{Domain: "ojena.myshopify.com", ClientID: "id", ClientSecret: "secret", APIVersion: "2026-01"}

func serve(t *testing.T, p *ProxyController, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/shopify", p.Forward)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/shopify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestForwardMissingCredentials(t *testing.T) {
	fwd := &fakeForwarder{}
	w := serve(t, NewProxyController(fwd, shopify.Credentials{}), `{"query":"{ shop { name } }"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body shopify.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Shopify credentials not configured", body.Error)
	require.NotNil(t, body.Missing)
	assert.True(t, body.Missing.Domain)
	assert.True(t, body.Missing.ClientID)
	assert.True(t, body.Missing.ClientSecret)
	assert.Zero(t, fwd.calls)
}

func TestForwardInvalidBody(t *testing.T) {
	fwd := &fakeForwarder{}
	w := serve(t, NewProxyController(fwd, testCreds), `not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), shopify.ErrMissingQuery.Error())
	assert.Zero(t, fwd.calls)
}

func TestForwardPassesBodyThrough(t *testing.T) {
	upstream := `{"data":{"shop":{"name":"OJENA"}},"extensions":{"cost":{"requestedQueryCost":1}}}`
	fwd := &fakeForwarder{body: upstream}
	w := serve(t, NewProxyController(fwd, testCreds), `{"query":"query Shop { shop { name } }","variables":{"first":5}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, upstream, w.Body.String())
	assert.Equal(t, "query Shop { shop { name } }", fwd.last.Query)
	assert.JSONEq(t, `{"first":5}`, string(fwd.last.Variables))
}

func TestForwardMapsErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		label  string
	}{
		{"missing query", shopify.ErrMissingQuery, http.StatusBadRequest, "GraphQL query is required"},
		{"graphql errors", &shopify.GraphQLError{Details: json.RawMessage(`[{"message":"Field 'x' doesn't exist"}]`)}, http.StatusBadRequest, "Shopify API error"},
		{"upstream status", &shopify.UpstreamError{Status: 503, Body: []byte("unavailable")}, http.StatusBadGateway, "Shopify upstream error"},
		{"token exchange", shopify.ErrTokenExchange, http.StatusInternalServerError, "Shopify authentication failed"},
		{"network", errors.New("dial tcp: connection refused"), http.StatusBadGateway, "Shopify upstream unreachable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(t, NewProxyController(&fakeForwarder{err: tc.err}, testCreds), `{"query":"{ shop { name } }"}`)
			assert.Equal(t, tc.status, w.Code)

			var body shopify.ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.label, body.Error)
		})
	}
}
