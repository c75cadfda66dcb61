// Package token generates prefixed, time-sortable identifiers for
// quotations (qt_), quotation batches (qb_), catalog components (cmp_)
// and users (usr_).
package token

import (
	crand "crypto/rand"
	"strings"
	"time"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	timestampLen = 6
	randomLen    = 18
)

// encodeTimestamp encodes Unix seconds as a fixed-width base62 string.
// Fixed width keeps ids lexicographically sortable by creation time,
// which gives B-tree index locality in Postgres.
func encodeTimestamp(seconds int64) string {
	n := seconds
	out := make([]byte, timestampLen)
	for i := timestampLen - 1; i >= 0; i-- {
		out[i] = alphabet[n%62]
		n /= 62
	}
	return string(out)
}

// randomBase62 draws length base62 characters from crypto/rand using
// rejection sampling so the distribution stays uniform.
func randomBase62(length int) string {
	buf := make([]byte, (length*6)/8+4)
	if _, err := crand.Read(buf); err != nil {
		panic("token: rand read failed: " + err.Error())
	}

	var b strings.Builder
	var bits uint64
	var nbits uint
	idx := 0
	for b.Len() < length {
		for nbits < 6 && idx < len(buf) {
			bits = (bits << 8) | uint64(buf[idx])
			nbits += 8
			idx++
		}
		v := (bits >> (nbits - 6)) & 0x3f
		nbits -= 6
		if v < 62 {
			b.WriteByte(alphabet[v])
		}
		if idx >= len(buf) && b.Len() < length {
			if _, err := crand.Read(buf); err != nil {
				panic("token: rand read failed: " + err.Error())
			}
			idx, bits, nbits = 0, 0, 0
		}
	}
	return b.String()
}

// New returns an id of the form "<prefix>_<6-char timestamp><18-char random>".
func New(prefix string) string {
	return prefix + "_" + encodeTimestamp(time.Now().Unix()) + randomBase62(randomLen)
}

// Quotation, Batch, Component and User are convenience constructors
// for the id families the service uses.
func Quotation() string { return New("qt") }
func Batch() string     { return New("qb") }
func Component() string { return New("cmp") }
func User() string      { return New("usr") }
