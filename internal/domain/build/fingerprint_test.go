package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashStringsSeparatesParts(t *testing.T) {
	assert.NotEqual(t, HashStrings("ab", "c"), HashStrings("a", "bc"))
	assert.Equal(t, HashStrings("a", "b"), HashStrings("a", "b"))
	assert.Len(t, HashStrings(), 64)
}

func TestComputeRunHashTracksEveryPart(t *testing.T) {
	base := Fingerprint{CorpusHash: "c", ConfigHash: "k", OutputHash: "o"}
	base.ComputeRunHash()

	changed := base
	changed.OutputHash = "o2"
	changed.ComputeRunHash()

	again := Fingerprint{CorpusHash: "c", ConfigHash: "k", OutputHash: "o"}
	again.ComputeRunHash()

	assert.NotEqual(t, base.RunHash, changed.RunHash)
	assert.Equal(t, base.RunHash, again.RunHash)
}
