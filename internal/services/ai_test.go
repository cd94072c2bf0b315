package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDraftedReply(t *testing.T) {
	reply, err := parseDraftedReply("```json\n{\"reply\": \" Thanks for asking! \"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Thanks for asking!", reply)

	_, err = parseDraftedReply(`{"reply": ""}`)
	assert.Error(t, err)

	_, err = parseDraftedReply("not json")
	assert.Error(t, err)
}
