package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for different data types
const (
	profilePrefix       = "canpro"
	swipeQueuePrefix    = "swpq"
	swipeQueueSeq       = "swpqseq"
	exclusionPrefix     = "excl"
	exclusionIdemPrefix = "exclidem"
	cardSessionPrefix   = "cardses"
)

// makeProfileKey generates a key for a candidate profile.
func makeProfileKey(candidateId string) []byte {
	return []byte(fmt.Sprintf("%s:%s", profilePrefix, candidateId))
}

// makeSwipeQueueKey generates a composite key for a queued swipe.
// Format: prefix:callerId:position
// The position is written BigEndian so lexicographic iteration follows
// queue order.
func makeSwipeQueueKey(callerId string, position uint64) []byte {
	prefix := swipeQueuePrefix + ":" + callerId + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], position)
	return buf
}

// makeSwipeQueuePrefix generates the iteration prefix for a caller's queue.
func makeSwipeQueuePrefix(callerId string) []byte {
	return []byte(swipeQueuePrefix + ":" + callerId + ":")
}

// queuePositionFromKey extracts the queue position from a swipe queue key.
func queuePositionFromKey(key []byte) uint64 {
	if len(key) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(key[len(key)-8:])
}

// makeExclusionKey generates a key for one (caller, candidate) exclusion.
func makeExclusionKey(callerId, candidateId string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", exclusionPrefix, callerId, candidateId))
}

// makeExclusionPrefix generates the iteration prefix for a caller's exclusions.
func makeExclusionPrefix(callerId string) []byte {
	return []byte(exclusionPrefix + ":" + callerId + ":")
}

// makeExclusionIdemKey generates a key marking a seen idempotency key.
func makeExclusionIdemKey(callerId, idempotencyKey string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", exclusionIdemPrefix, callerId, idempotencyKey))
}

// makeSessionKey generates a key for a caller's card session.
func makeSessionKey(callerId string) []byte {
	return []byte(fmt.Sprintf("%s:%s", cardSessionPrefix, callerId))
}

// makeCheckpointKey generates a key for processor checkpoints.
func makeCheckpointKey(processorType string) []byte {
	return []byte(fmt.Sprintf("%s:chkpt", processorType))
}
