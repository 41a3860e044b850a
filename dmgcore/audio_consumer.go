package dmgcore

// AudioConsumer is the host-facing end of the emulator's audio ring buffer:
// a bounded single-producer/single-consumer queue the core pushes mixed
// samples into during Run, and the host drains from its own goroutine.
// Pushes never block; a full buffer drops the newest frame rather than
// stalling emulation.
type AudioConsumer struct {
	frames   chan []int16
	channels int
}

// newAudioConsumer allocates a ring buffer holding up to sampleCapacity
// interleaved sample groups, each carrying `channels` int16 samples.
func newAudioConsumer(sampleCapacity, channels int) *AudioConsumer {
	if channels < 1 {
		channels = 1
	}
	if sampleCapacity < 1 {
		sampleCapacity = 1
	}
	return &AudioConsumer{
		frames:   make(chan []int16, sampleCapacity),
		channels: channels,
	}
}

// tryPush offers one interleaved sample group to the queue without
// blocking. It reports whether the group was accepted.
func (c *AudioConsumer) tryPush(group []int16) bool {
	select {
	case c.frames <- group:
		return true
	default:
		return false
	}
}

// Pull drains up to maxGroups buffered sample groups, returned interleaved
// (length is a multiple of Channels()). It never blocks: if fewer groups
// are available, it returns what it has.
func (c *AudioConsumer) Pull(maxGroups int) []int16 {
	if maxGroups <= 0 {
		return nil
	}
	out := make([]int16, 0, maxGroups*c.channels)
	for len(out) < maxGroups*c.channels {
		select {
		case group := <-c.frames:
			out = append(out, group...)
		default:
			return out
		}
	}
	return out
}

// Channels reports how many interleaved channels each sample group carries.
func (c *AudioConsumer) Channels() int {
	return c.channels
}
