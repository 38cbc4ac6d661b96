package watch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiagnosticServer(t *testing.T) {
	ds := NewDiagnosticServer()
	defer ds.Close()

	require.NotNil(t, ds)
	assert.NotNil(t, ds.connections)
	assert.NotNil(t, ds.broadcast)
}

func dialDiagnosticServer(t *testing.T, ds *DiagnosticServer) (*websocket.Conn, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(ds.HandleWebSocket))
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn, server
}

func TestDiagnosticServerTracksConnections(t *testing.T) {
	ds := NewDiagnosticServer()
	defer ds.Close()

	conn, server := dialDiagnosticServer(t, ds)
	defer server.Close()
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, ds.ConnectionCount())
}

func TestDiagnosticServerBroadcastsBuildingMessage(t *testing.T) {
	ds := NewDiagnosticServer()
	defer ds.Close()

	conn, server := dialDiagnosticServer(t, ds)
	defer server.Close()
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)
	ds.NotifyBuilding([]string{"billing.pld"})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "building", msg.Type)
	assert.Equal(t, []string{"billing.pld"}, msg.Files)
}

func TestDiagnosticServerBroadcastsSuccess(t *testing.T) {
	ds := NewDiagnosticServer()
	defer ds.Close()

	conn, server := dialDiagnosticServer(t, ds)
	defer server.Close()
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)
	ds.NotifySuccess(10 * time.Millisecond)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "success", msg.Type)
}
