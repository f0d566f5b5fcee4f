package server

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/flip7/internal/advisor"
)

func dialTestServer(t *testing.T) (*Server, *websocket.Conn) {
	t.Helper()

	srv := New(DefaultConfig(), advisor.DefaultStrategy(), log.New(io.Discard))
	httpSrv := httptest.NewServer(srv.Handler())
	t.Cleanup(httpSrv.Close)
	t.Cleanup(srv.Stop)

	wsURL := "ws" + strings.TrimPrefix(httpSrv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return srv, conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, cmd Command) Response {
	t.Helper()
	require.NoError(t, conn.WriteJSON(cmd))

	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func TestServerRoundTrip(t *testing.T) {
	_, conn := dialTestServer(t)

	resp := roundTrip(t, conn, Command{Type: CmdDraw, Card: "7"})
	require.True(t, resp.OK)
	require.NotNil(t, resp.Status)
	assert.Equal(t, []int{7}, resp.Status.Numbers)

	resp = roundTrip(t, conn, Command{Type: CmdRecommend})
	require.True(t, resp.OK)
	require.NotNil(t, resp.Recommendation)
	assert.NotEmpty(t, resp.Recommendation.Reason)
}

func TestServerSessionsAreIsolated(t *testing.T) {
	srv := New(DefaultConfig(), advisor.DefaultStrategy(), log.New(io.Discard))
	httpSrv := httptest.NewServer(srv.Handler())
	t.Cleanup(httpSrv.Close)
	t.Cleanup(srv.Stop)

	wsURL := "ws" + strings.TrimPrefix(httpSrv.URL, "http") + "/ws"

	connA, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = connA.Close() })

	connB, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = connB.Close() })

	resp := roundTrip(t, connA, Command{Type: CmdDraw, Card: "12"})
	require.True(t, resp.OK)
	assert.Equal(t, 95, resp.Status.CardsRemaining)

	// Client B sees an untouched deck
	resp = roundTrip(t, connB, Command{Type: CmdStatus})
	require.True(t, resp.OK)
	assert.Equal(t, 96, resp.Status.CardsRemaining)
	assert.Empty(t, resp.Status.Numbers)
}
