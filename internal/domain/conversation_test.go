package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationKey_Symmetric(t *testing.T) {
	pairs := [][2]int32{
		{1, 2},
		{2, 1},
		{7, 7},
		{100, 3},
		{3, 100},
	}
	for _, p := range pairs {
		assert.Equal(t, ConversationKey(p[0], p[1]), ConversationKey(p[1], p[0]))
	}

	assert.Equal(t, "1_2", ConversationKey(2, 1))
	assert.Equal(t, "1_2", ConversationKey(1, 2))
	assert.Equal(t, "7_7", ConversationKey(7, 7))
}

func TestConversationKey_DistinctPairsDistinctKeys(t *testing.T) {
	assert.NotEqual(t, ConversationKey(1, 2), ConversationKey(1, 3))
	assert.NotEqual(t, ConversationKey(1, 23), ConversationKey(12, 3))
}
