package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs are lexicographically sortable by
// creation time and unique per issuance, which makes them suitable both as
// JWT jti values and as DynamoDB partition keys in the revocation ledger.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
