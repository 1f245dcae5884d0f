package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJD = `We are hiring a backend engineer to build scalable services in Go.
You will own ingestion pipelines, Postgres schemas and the public REST API.
Experience with Kubernetes and observability tooling is a plus.`

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint(sampleJD)
	b := Fingerprint(sampleJD)
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestFingerprintIgnoresFormatting(t *testing.T) {
	reflowed := "We are   hiring a backend engineer to build scalable services in Go. " +
		"You will own ingestion pipelines, Postgres schemas and the public REST API. " +
		"Experience with Kubernetes and observability tooling is a plus."
	assert.Equal(t, Fingerprint(sampleJD), Fingerprint(reflowed))
}

func TestIsDup(t *testing.T) {
	// reflowed copies hash identically, so the default threshold catches them
	assert.True(t, IsDup(Fingerprint(sampleJD), Fingerprint(sampleJD+" "), DefaultHammingThreshold))

	// an appended sentence drifts a handful of bits but stays close
	nearDup := sampleJD + "\nApply today."
	assert.True(t, IsDup(Fingerprint(sampleJD), Fingerprint(nearDup), 12))

	other := Fingerprint("Barista wanted for a coffee shop in downtown Lisbon, weekend shifts.")
	assert.False(t, IsDup(Fingerprint(sampleJD), other, DefaultHammingThreshold))

	// identical hashes are always dup, even at threshold 0
	h := Fingerprint(sampleJD)
	assert.True(t, IsDup(h, h, 0))
}

func TestIsDupMalformed(t *testing.T) {
	assert.False(t, IsDup("zzz", Fingerprint(sampleJD), DefaultHammingThreshold))
	assert.False(t, IsDup("", "", DefaultHammingThreshold))
}
