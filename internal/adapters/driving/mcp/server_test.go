package mcp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil retrieval service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingRetrievalService)
	})

	t.Run("retrieval only creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Handler())
	})

	t.Run("all ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Retrieval: &mockRetrievalService{},
			Assistant: newMockAssistant("order_tool", "returns_tool", "inventory_tool"),
			Orders:    &mockOrders{},
			Returns:   &mockReturns{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestServer_HandlerServesInitialize(t *testing.T) {
	server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}}, WithVersion("1.2.3"))
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", server.version)

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{` +
		`"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"shopdesk"`)
	assert.Contains(t, rec.Body.String(), `"version":"1.2.3"`)
	assert.Contains(t, rec.Body.String(), "ecom_rag_tool")
}

func TestWithVersion_IgnoresEmpty(t *testing.T) {
	server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}}, WithVersion(""))
	require.NoError(t, err)
	assert.Equal(t, "dev", server.version)
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingRetrievalService)
	assert.NoError(t, (&Ports{Retrieval: &mockRetrievalService{}}).Validate())
}
