package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/skirmish-game/skirmish/pkg/core"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

const maxDecodedSize = 16 << 20

// Codec turns a SaveState into a blob and back. Blobs are JSON, optionally
// zstd-compressed; Decode accepts both regardless of the Compress setting.
type Codec struct {
	compress bool
	enc      *zstd.Encoder
	dec      *zstd.Decoder
}

// NewCodec creates a codec. compress selects the encoding used by Encode.
func NewCodec(compress bool) (*Codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecodedSize))
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Codec{compress: compress, enc: enc, dec: dec}, nil
}

// Close releases the decoder's goroutines.
func (c *Codec) Close() {
	c.dec.Close()
	_ = c.enc.Close()
}

func (c *Codec) Encode(s core.SaveState) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal save state: %w", err)
	}
	if c.compress {
		return c.enc.EncodeAll(data, nil), nil
	}
	return data, nil
}

func (c *Codec) Decode(blob []byte) (core.SaveState, error) {
	var s core.SaveState
	if len(bytes.TrimSpace(blob)) == 0 {
		return s, errors.New("empty save blob")
	}
	if IsCompressed(blob) {
		raw, err := c.dec.DecodeAll(blob, nil)
		if err != nil {
			return s, fmt.Errorf("decompress save: %w", err)
		}
		blob = raw
	}
	if err := json.Unmarshal(blob, &s); err != nil {
		return s, fmt.Errorf("unmarshal save state: %w", err)
	}
	if err := check(s); err != nil {
		return s, err
	}
	return s, nil
}

// IsCompressed reports whether blob starts with a zstd frame.
func IsCompressed(blob []byte) bool {
	return bytes.HasPrefix(blob, zstdMagic)
}

// check rejects states no writer could have produced. Catalog-dependent
// limits are enforced when the state is applied.
func check(s core.SaveState) error {
	if s.Version < 0 || s.Version > core.SaveStateVersion {
		return fmt.Errorf("unsupported save version %d", s.Version)
	}
	if s.PlayerHealth < 0 {
		return fmt.Errorf("negative player health %d", s.PlayerHealth)
	}
	if s.CurrentLevelIndex < 0 {
		return fmt.Errorf("negative level index %d", s.CurrentLevelIndex)
	}
	for i, r := range s.Roster {
		if !r.Kind.Valid() {
			return fmt.Errorf("enemy %d: missing kind", i)
		}
		if r.Health <= 0 {
			return fmt.Errorf("enemy %d: health %d", i, r.Health)
		}
	}
	return nil
}
