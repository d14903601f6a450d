// Package opaqueid converts element paths to tokens that can be embedded in
// JSON without escaping, and back.
//
// A token is the unpadded base64url encoding of an 8-byte xxhash64 checksum
// of the path followed by the DEFLATE-compressed path. The alphabet is
// [A-Za-z0-9_-], so tokens never contain quotes, slashes, backslashes or
// whitespace.
package opaqueid

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/binary"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"github.com/leonardcser/uipath-mcp/internal/elementpath"
)

// MaxPathSize bounds the decoded size of a token.
const MaxPathSize = 64 * 1024

const checksumSize = 8

// ErrInvalidToken is returned when a token was not produced by Encode or has
// been corrupted.
var ErrInvalidToken = zerr.New("invalid opaque id")

var encoding = base64.RawURLEncoding

// Encode returns the opaque token for path.
func Encode(path string) string {
	var buf bytes.Buffer
	var sum [checksumSize]byte
	binary.BigEndian.PutUint64(sum[:], xxhash.Sum64String(path))
	buf.Write(sum[:])

	// flate.NewWriter only fails on an invalid level.
	w, _ := flate.NewWriter(&buf, flate.BestCompression)
	_, _ = io.WriteString(w, path)
	_ = w.Close()

	return encoding.EncodeToString(buf.Bytes())
}

// Decode returns the path encoded in token.
func Decode(token string) (string, error) {
	if token == "" {
		return "", invalid(token, "empty token")
	}
	raw, err := encoding.DecodeString(token)
	if err != nil {
		return "", invalid(token, "not base64url")
	}
	if len(raw) < checksumSize {
		return "", invalid(token, "token too short")
	}

	r := flate.NewReader(bytes.NewReader(raw[checksumSize:]))
	defer r.Close()
	data, err := io.ReadAll(io.LimitReader(r, MaxPathSize+1))
	if err != nil {
		return "", invalid(token, "corrupt payload")
	}
	if len(data) > MaxPathSize {
		return "", invalid(token, "payload too large")
	}
	if binary.BigEndian.Uint64(raw[:checksumSize]) != xxhash.Sum64(data) {
		return "", invalid(token, "checksum mismatch")
	}
	return string(data), nil
}

// EncodePath returns the token for the canonical form of p.
func EncodePath(p elementpath.Path) string {
	return Encode(p.String())
}

// DecodePath decodes token and parses the result as an element path.
func DecodePath(token string) (elementpath.Path, error) {
	s, err := Decode(token)
	if err != nil {
		return elementpath.Path{}, err
	}
	return elementpath.Parse(s)
}

// ParseAny accepts either a raw element path (recognized by its scheme) or
// a token, and returns the element path.
func ParseAny(value string) (elementpath.Path, error) {
	if strings.HasPrefix(value, elementpath.Scheme) {
		return elementpath.Parse(value)
	}
	return DecodePath(value)
}

func invalid(token, reason string) error {
	return zerr.With(zerr.Wrap(ErrInvalidToken, reason), "token", token)
}
