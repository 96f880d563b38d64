package outbox

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ncalf/draftboard/go/internal/draft/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	e := newEvent(events.TypePlayerSold)
	assert.Equal(t, "draft.events.PlayerSold", Subject(DefaultJetStreamConfig().SubjectPrefix, e))
}

func TestEncode(t *testing.T) {
	e := newEvent(events.TypeSaleUndone)
	e.Metadata = events.Metadata{ClientID: "dash-2"}

	data, err := Encode(e)
	require.NoError(t, err)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &got))
	assert.JSONEq(t, `"`+e.ID.String()+`"`, string(got["eventId"]))
	assert.JSONEq(t, `"SaleUndone"`, string(got["eventType"]))
	assert.JSONEq(t, `2024`, string(got["season"]))
	assert.JSONEq(t, `"dash-2"`, string(got["clientId"]))
	assert.JSONEq(t, `"2024-03-01T19:00:00Z"`, string(got["timestamp"]))
	assert.JSONEq(t, `{"season":2024}`, string(got["payload"]))
}

func TestLogPublisher(t *testing.T) {
	assert.NoError(t, LogPublisher{}.Publish(context.Background(), newEvent(events.TypePositionUpdated)))
}
