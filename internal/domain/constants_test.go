package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	assert.True(t, ValidChannel(ChannelInApp))
	assert.True(t, ValidChannel(ChannelEmail))
	assert.True(t, ValidChannel(ChannelSMS))
	assert.False(t, ValidChannel("push"))
	assert.False(t, ValidChannel(""))

	assert.True(t, ValidNotificationType(TypeAlert))
	assert.False(t, ValidNotificationType("gossip"))

	assert.True(t, ValidDisplayType(DisplayBoth))
	assert.False(t, ValidDisplayType("banner"))

	assert.True(t, ValidPriority(PriorityUrgent))
	assert.False(t, ValidPriority("extreme"))
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityRank(PriorityUrgent), PriorityRank(PriorityHigh))
	assert.Less(t, PriorityRank(PriorityHigh), PriorityRank(PriorityNormal))
	assert.Less(t, PriorityRank(PriorityNormal), PriorityRank(PriorityLow))
	assert.Greater(t, PriorityRank("unknown"), PriorityRank(PriorityLow), "unknown priorities sort last")
}
