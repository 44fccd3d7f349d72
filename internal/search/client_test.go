package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeES answers the handful of endpoints the client touches.
func fakeES(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			_, _ = io.WriteString(w, `{"version":{"number":"8.19.0","build_flavor":"default"},"tagline":"You Know, for Search"}`)
			return
		}
		handle(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchDecodesHits(t *testing.T) {
	var gotBody map[string]any
	srv := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/products/_search"))
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":1},"hits":[{"_id":"7","_source":{"id":7,"name":"Yerba"}}]}}`)
	})

	c, err := NewClient(&Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	res, err := c.Search(context.Background(), "products", map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Hits.Total.Value)
	require.Len(t, res.Hits.Hits, 1)
	assert.Equal(t, "7", res.Hits.Hits[0].ID)
	assert.JSONEq(t, `{"id":7,"name":"Yerba"}`, string(res.Hits.Hits[0].Source))
	assert.Contains(t, gotBody, "query")
}

func TestDeleteIgnoresMissingDocument(t *testing.T) {
	srv := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"result":"not_found"}`)
	})

	c, err := NewClient(&Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	assert.NoError(t, c.Delete(context.Background(), "products", "42"))
}

func TestIndexReportsServerError(t *testing.T) {
	srv := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"mapper_parsing_exception"}`)
	})

	c, err := NewClient(&Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	err = c.Index(context.Background(), "products", "1", map[string]any{"id": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapper_parsing_exception")
}
