package linearize

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/roach88/linearize/internal/value"
)

const worldKeyDomain = "linearize/worldkey/v1"

// EquivalenceKey exposes worldEquivalenceKey for callers outside the
// package (persistence, CLI rendering) that need a stable identifier for a
// world without reaching into its private fields.
func EquivalenceKey(w *World) (string, error) {
	return worldEquivalenceKey(w)
}

// worldEquivalenceKey derives the hex-encoded key two worlds must share to
// be treated as interchangeable for the rest of the search: the model's
// own content hash, the set of still-outstanding invocations, and the
// history cursor. fixed is deliberately excluded - the model hash already
// reflects everything fixed did, so two worlds that reached the same model
// state via different committed orders must collapse into one.
func worldEquivalenceKey(w *World) (string, error) {
	modelHash, err := w.model.Hash()
	if err != nil {
		return "", fmt.Errorf("linearize: hash model: %w", err)
	}

	pendingVals := make(value.Array, 0, len(w.pending))
	for _, e := range w.pending {
		v := e.invoke.Value
		if v == nil {
			v = value.Null{}
		}
		pendingVals = append(pendingVals, value.Object{
			"process":  value.String(string(e.process)),
			"function": value.String(string(e.invoke.Function)),
			"value":    v,
		})
	}

	obj := value.Object{
		"model":   value.String(modelHash),
		"pending": pendingVals,
		"index":   value.Int(int64(w.index)),
	}

	canonical, err := value.MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("linearize: marshal world key: %w", err)
	}
	return value.HashWithDomain(worldKeyDomain, canonical), nil
}

// worldFingerprint reduces a world's equivalence key to a uint64 for use as
// a Seen cache slot value. A 64-bit fingerprint derived from a SHA-256 hash
// gives a false-match probability low enough that collisions are not a
// practical correctness concern, while avoiding the memory cost of storing
// full 256-bit keys per slot.
func worldFingerprint(w *World) (uint64, error) {
	key, err := worldEquivalenceKey(w)
	if err != nil {
		return 0, err
	}
	raw, err := hex.DecodeString(key)
	if err != nil {
		return 0, fmt.Errorf("linearize: decode world key: %w", err)
	}
	return binary.BigEndian.Uint64(raw[:8]), nil
}
