// Package share encodes a statement state into a URL and back.
//
// The token carried by the "data" query parameter is the state record
// compressed with DEFLATE and encoded in unpadded base64url. Links produced
// before compression carried the record as percent-encoded JSON, Decode still
// reads them.
package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/etnz/costsheet"
	"github.com/klauspost/compress/flate"
)

// Param is the query parameter holding the token.
const Param = "data"

// maxRecord bounds the size of a decompressed record.
const maxRecord = 8 << 20

// ErrNoToken is returned by DecodeURL when the URL has no token.
var ErrNoToken = errors.New("no shared state in URL")

// Codec builds and reads share links.
type Codec struct {
	// Origin is the scheme and host of the links, e.g. "https://cost.example.com".
	Origin string
	// Path is the path of the page restoring a shared state.
	Path string
}

// Encode returns the token of a state.
func Encode(s costsheet.State) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("cannot encode state: %w", err)
	}
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// URL returns the share link of a state.
func (c Codec) URL(s costsheet.State) (string, error) {
	token, err := Encode(s)
	if err != nil {
		return "", err
	}
	q := url.Values{Param: {token}}
	return strings.TrimRight(c.Origin, "/") + "/" + strings.TrimLeft(c.Path, "/") + "?" + q.Encode(), nil
}

// Decode restores the state carried by a token.
//
// It reports false when the token is neither a compressed record nor a legacy
// JSON one, plain or percent-encoded. Fields missing from the record take their initial
// values, see costsheet.DecodeState.
func Decode(token string) (costsheet.State, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return costsheet.State{}, false
	}
	if data, err := inflate(token); err == nil {
		if s, err := costsheet.DecodeState(data); err == nil {
			return s, true
		}
	}
	// legacy links carry the JSON record itself, already unescaped when the
	// token comes out of a parsed query, still escaped otherwise.
	if s, err := costsheet.DecodeState([]byte(token)); err == nil {
		return s, true
	}
	raw, err := url.QueryUnescape(token)
	if err != nil {
		return costsheet.State{}, false
	}
	s, err := costsheet.DecodeState([]byte(raw))
	if err != nil {
		return costsheet.State{}, false
	}
	return s, true
}

// DecodeURL restores the state carried by a share link.
func DecodeURL(raw string) (costsheet.State, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return costsheet.State{}, fmt.Errorf("invalid share link: %w", err)
	}
	token := u.Query().Get(Param)
	if token == "" {
		return costsheet.State{}, ErrNoToken
	}
	s, ok := Decode(token)
	if !ok {
		return costsheet.State{}, fmt.Errorf("%w: share link %q", costsheet.ErrParse, raw)
	}
	return s, nil
}

func inflate(token string) ([]byte, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}
	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	data, err := io.ReadAll(io.LimitReader(r, maxRecord+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxRecord {
		return nil, fmt.Errorf("shared record exceeds %d bytes", maxRecord)
	}
	return data, nil
}
