package build

import (
	"crypto/sha256"
	"encoding/hex"
)

type Fingerprint struct {
	CorpusHash string
	ConfigHash string
	OutputHash string
	RunHash    string
}

func (f *Fingerprint) ComputeRunHash() {
	h := sha256.New()
	h.Write([]byte(f.CorpusHash))
	h.Write([]byte(f.ConfigHash))
	h.Write([]byte(f.OutputHash))
	f.RunHash = hex.EncodeToString(h.Sum(nil))
}

// HashStrings hashes parts in order, separated so that ("ab","c") and ("a","bc") differ.
func HashStrings(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
