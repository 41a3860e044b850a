package dmgcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAudioConsumerTryPushRespectsCapacity(t *testing.T) {
	c := newAudioConsumer(2, 2)

	assert.True(t, c.tryPush([]int16{1, 2}))
	assert.True(t, c.tryPush([]int16{3, 4}))
	assert.False(t, c.tryPush([]int16{5, 6}), "push beyond capacity should be dropped, not block")
}

func TestAudioConsumerPullDrainsInOrder(t *testing.T) {
	c := newAudioConsumer(4, 2)
	c.tryPush([]int16{1, 2})
	c.tryPush([]int16{3, 4})

	got := c.Pull(10)

	assert.Equal(t, []int16{1, 2, 3, 4}, got)
	assert.Equal(t, []int16{}, c.Pull(10))
}

func TestAudioConsumerChannelsReportsConfiguredCount(t *testing.T) {
	c := newAudioConsumer(4, 1)
	assert.Equal(t, 1, c.Channels())
}
