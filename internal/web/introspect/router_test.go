package introspect_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pld-lang/pld/internal/compiler/resolver"
	"github.com/pld-lang/pld/internal/compiler/source"
	"github.com/pld-lang/pld/internal/tooling"
	"github.com/pld-lang/pld/internal/web/introspect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	rc := resolver.New()
	_, err := rc.AddFile(source.New("billing.pld", `namespace billing;
struct Invoice { id: str; amount: i64; };
enum Status { Open = 0, Paid = 1 };
`))
	require.NoError(t, err)

	api := tooling.New(rc)
	return httptest.NewServer(introspect.NewRouter(api))
}

func TestListNamespaces(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/namespaces")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var names []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&names))
	assert.Equal(t, []string{"billing"}, names)
}

func TestShowNamespace(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/namespaces/billing")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "billing", body["path"])
	assert.Len(t, body["symbols"], 2)
}

func TestShowNamespaceMissing(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/namespaces/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestShowDecl(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/namespaces/billing/struct/Invoice")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invoice", body["name"])
	assert.Equal(t, "struct", body["kind"])
	assert.Contains(t, body["hover"], "struct Invoice")
}

func TestShowDeclWrongKind(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/namespaces/billing/enum/Invoice")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
