package report

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// HistoryID derives the cross-run fingerprint of a test.
// Hash = SHA256(field(NFC(full_name)) + sorted(field(NFC(name)) + field(NFC(value))))
// where field(b) is the big-endian uint64 length of b followed by b.
// Parameters marked Excluded do not participate, so they can vary between
// runs without splitting history. Names are hashed as given; surrounding
// whitespace is significant.
func HistoryID(fullName string, params []Parameter) string {
	h := sha256.New()

	writeField(h, fullName)

	sorted := make([]Parameter, 0, len(params))
	for _, p := range params {
		if p.Excluded {
			continue
		}
		sorted = append(sorted, p)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].Value < sorted[j].Value
	})

	for _, p := range sorted {
		writeField(h, p.Name)
		writeField(h, p.Value)
	}

	return hex.EncodeToString(h.Sum(nil))
}

func writeField(h hash.Hash, s string) {
	b := norm.NFC.Bytes([]byte(s))
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(b)))
	h.Write(n[:])
	h.Write(b)
}
