package plan

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest hashes the ordered (name, content) pairs of every document. Equal
// inputs give equal digests.
func (p *Plan) Digest() string {
	h := sha256.New()
	if p.Empty() {
		h.Write([]byte("empty-plan"))
	}
	for _, d := range p.Documents() {
		h.Write([]byte(d.Name))
		h.Write([]byte{0})
		h.Write([]byte(d.Content))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
