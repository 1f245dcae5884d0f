package dedupe

import (
	"hash/fnv"
	"math/bits"
	"strconv"

	"github.com/jobscout/agent/pkg/nlp"
)

// DefaultHammingThreshold is the maximum bit distance at which two
// fingerprints are still considered the same posting.
const DefaultHammingThreshold = 4

// Fingerprint computes a 64-bit simhash over the word features of text and
// returns it hex-encoded. Near-identical descriptions land within a few bits
// of each other, which is what IsDup checks.
func Fingerprint(text string) string {
	var vector [64]int
	for _, token := range nlp.Tokens(nlp.NormalizeText(text)) {
		h := fnv.New64a()
		_, _ = h.Write([]byte(token))
		sum := h.Sum64()
		for i := 0; i < 64; i++ {
			if sum&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}
	var out uint64
	for i := 0; i < 64; i++ {
		if vector[i] > 0 {
			out |= 1 << uint(i)
		}
	}
	return strconv.FormatUint(out, 16)
}

// IsDup reports whether two hex fingerprints are within hammingThresh bits.
// Malformed fingerprints never match.
func IsDup(hashA, hashB string, hammingThresh int) bool {
	a, errA := strconv.ParseUint(hashA, 16, 64)
	b, errB := strconv.ParseUint(hashB, 16, 64)
	if errA != nil || errB != nil {
		return false
	}
	return bits.OnesCount64(a^b) <= hammingThresh
}
