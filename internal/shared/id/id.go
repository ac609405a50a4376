// Package id generates prefixed, lexicographically sortable identifiers.
//
// Ids are ULIDs with a short type prefix (sess_*) so logs stay readable
// and time-ordered queries need no extra timestamp.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   io.Reader = ulid.Monotonic(rand.Reader, 0)
)

// New returns a fresh id with the given prefix, e.g. New("sess") yields
// "sess_01J...". An empty prefix yields a bare ULID.
func New(prefix string) string {
	entropyMu.Lock()
	u := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	entropyMu.Unlock()

	if prefix == "" {
		return u.String()
	}
	return fmt.Sprintf("%s_%s", prefix, u.String())
}

// Session returns a new session id.
func Session() string { return New("sess") }

// HasPrefix reports whether s carries the given id prefix.
func HasPrefix(s, prefix string) bool {
	return strings.HasPrefix(s, prefix+"_")
}
