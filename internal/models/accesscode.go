package models

import "time"

// AccessCode is one shared access secret. Only the salted one-way digest
// is stored; the plaintext never touches the database. Several codes may
// be valid at once, which allows phased rotation without locking anyone
// out.
type AccessCode struct {
	ID        int64
	Salt      []byte
	Digest    []byte
	CreatedAt time.Time
}
