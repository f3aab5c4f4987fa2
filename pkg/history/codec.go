package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"
)

// Encoded value layout:
//
//	magic (4) | blake2b-256 of payload (32) | zstd(json(History))
var recordMagic = []byte("LPH1")

const digestSize = blake2b.Size256

var (
	errBadMagic       = errors.New("bad magic")
	errDigestMismatch = errors.New("digest mismatch")
	errShortRecord    = errors.New("record too short")
)

// encodeHistory serializes h into the stored value format.
func encodeHistory(h History) ([]byte, error) {
	if h == nil {
		h = History{}
	}
	raw, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("encode history: marshal: %w", err)
	}
	payload, err := compressZstd(raw)
	if err != nil {
		return nil, fmt.Errorf("encode history: compress: %w", err)
	}
	sum := blake2b.Sum256(payload)

	out := make([]byte, 0, len(recordMagic)+digestSize+len(payload))
	out = append(out, recordMagic...)
	out = append(out, sum[:]...)
	out = append(out, payload...)
	return out, nil
}

// decodeHistory parses a stored value. Every failure means the record is
// corrupt; the caller attaches the key.
func decodeHistory(data []byte) (History, error) {
	if len(data) < len(recordMagic)+digestSize {
		return nil, errShortRecord
	}
	if !bytes.Equal(data[:len(recordMagic)], recordMagic) {
		return nil, errBadMagic
	}
	digest := data[len(recordMagic) : len(recordMagic)+digestSize]
	payload := data[len(recordMagic)+digestSize:]
	sum := blake2b.Sum256(payload)
	if !bytes.Equal(digest, sum[:]) {
		return nil, errDigestMismatch
	}

	raw, err := decompressZstd(payload)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	var h History
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	for i, s := range h {
		if s.Count < 0 {
			return nil, fmt.Errorf("snapshot %d: negative count %d", i, s.Count)
		}
	}
	return h, nil
}

func compressZstd(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompressZstd(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}
