package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pollingClient speaks the engine.io v4 polling transport, enough to join
// the default namespace and exchange events
type pollingClient struct {
	t    *testing.T
	base string
	sid  string
	http *http.Client
}

func connectPolling(t *testing.T, srv *httptest.Server) *pollingClient {
	t.Helper()
	c := &pollingClient{
		t:    t,
		base: srv.URL + "/socket.io/?EIO=4&transport=polling",
		http: &http.Client{Timeout: 3 * time.Second},
	}

	open := c.get(c.base)
	require.True(t, strings.HasPrefix(open, "0"), "unexpected open packet %q", open)
	var handshake struct {
		SID string `json:"sid"`
	}
	require.NoError(t, json.Unmarshal([]byte(open[1:]), &handshake))
	require.NotEmpty(t, handshake.SID)
	c.sid = handshake.SID

	c.post("40")
	packets := c.poll()
	require.NotEmpty(t, packets)
	require.True(t, strings.HasPrefix(packets[0], "40"), "unexpected connect ack %q", packets[0])
	return c
}

func (c *pollingClient) url() string {
	return c.base + "&sid=" + c.sid
}

func (c *pollingClient) get(url string) string {
	c.t.Helper()
	resp, err := c.http.Get(url)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	require.Equal(c.t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return string(body)
}

func (c *pollingClient) post(packet string) {
	c.t.Helper()
	resp, err := c.http.Post(c.url(), "text/plain;charset=UTF-8", strings.NewReader(packet))
	require.NoError(c.t, err)
	defer resp.Body.Close()
	require.Equal(c.t, http.StatusOK, resp.StatusCode)
}

// poll returns the packets of one long-poll, split on the record separator
func (c *pollingClient) poll() []string {
	c.t.Helper()
	return strings.Split(c.get(c.url()), "\x1e")
}

// nextEvent polls until an event packet arrives and returns its arguments
func (c *pollingClient) nextEvent() (string, []json.RawMessage) {
	c.t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		for _, p := range c.poll() {
			if !strings.HasPrefix(p, "42") {
				continue
			}
			var parts []json.RawMessage
			require.NoError(c.t, json.Unmarshal([]byte(p[2:]), &parts))
			require.NotEmpty(c.t, parts)
			var name string
			require.NoError(c.t, json.Unmarshal(parts[0], &name))
			return name, parts[1:]
		}
	}
	c.t.Fatal("no event received")
	return "", nil
}

func emitPacket(t *testing.T, event string, args ...interface{}) string {
	t.Helper()
	data, err := json.Marshal(append([]interface{}{event}, args...))
	require.NoError(t, err)
	return "42" + string(data)
}

func TestSocketIOTeamsPayloadStaysText(t *testing.T) {
	srv, hub := newGatewayServer(t)
	dash := connectPolling(t, srv)
	view := connectPolling(t, srv)
	// each Socket.IO client joins the teams and draft channels
	waitForSubscribers(t, hub, 4)

	dash.post(emitPacket(t, EventSendTeamsData, teamsPayload))

	event, args := view.nextEvent()
	assert.Equal(t, EventSendTeamsData, event)
	require.Len(t, args, 1)

	var text string
	require.NoError(t, json.Unmarshal(args[0], &text), "payload must arrive as a JSON string, got %s", args[0])
	assert.JSONEq(t, teamsPayload, text)
}

func TestSocketIORequestReachesOtherClients(t *testing.T) {
	srv, hub := newGatewayServer(t)
	dash := connectPolling(t, srv)
	view := connectPolling(t, srv)
	waitForSubscribers(t, hub, 4)

	view.post(emitPacket(t, EventRequestTeamsData))

	event, args := dash.nextEvent()
	assert.Equal(t, EventRequestTeamsData, event)
	assert.Empty(t, args)
}

func TestSocketIOReceivesWebSocketAnnouncement(t *testing.T) {
	srv, hub := newGatewayServer(t)
	view := connectPolling(t, srv)
	dash := dial(t, srv, "/ws/teams")
	waitForSubscribers(t, hub, 3)

	require.NoError(t, dash.WriteJSON(Frame{Event: EventSendTeamsData, Data: json.RawMessage(teamsPayload)}))

	event, args := view.nextEvent()
	assert.Equal(t, EventSendTeamsData, event)
	require.Len(t, args, 1)
	var text string
	require.NoError(t, json.Unmarshal(args[0], &text))
	assert.JSONEq(t, teamsPayload, text)
}
