package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type payload struct {
	MatchID string         `json:"match_id"`
	Counts  map[string]int `json:"counts"`
	Skipped string         `json:"-"`
}

func TestEncodeUsesJSONFieldNames(t *testing.T) {
	data, err := Encode(payload{MatchID: "m1", Counts: map[string]int{"legs": 3}, Skipped: "x"})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, msgpack.Unmarshal(data, &raw))
	assert.Contains(t, raw, "match_id")
	assert.NotContains(t, raw, "MatchID")
	assert.NotContains(t, raw, "Skipped")

	var back payload
	require.NoError(t, Decode(data, &back))
	assert.Equal(t, "m1", back.MatchID)
	assert.Equal(t, 3, back.Counts["legs"])
}

func TestDecodeRejectsGarbage(t *testing.T) {
	var p payload
	assert.Error(t, Decode([]byte{0xc1}, &p))
}
