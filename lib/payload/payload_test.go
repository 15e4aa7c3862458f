// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"bytes"
	"errors"
	"testing"
)

// octreeLike builds a payload shaped like a binary octree stream: long
// runs of free-space bytes broken by occasional occupied nodes.
func octreeLike(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		if i%97 == 0 {
			data[i] = byte(i / 97)
		}
	}
	return data
}

func TestCompressionTokens(t *testing.T) {
	t.Parallel()

	for _, compression := range []Compression{None, LZ4, Zstd} {
		parsed, err := ParseCompression(compression.String())
		if err != nil {
			t.Fatalf("ParseCompression(%q): %v", compression, err)
		}
		if parsed != compression {
			t.Errorf("ParseCompression(%q) = %v", compression, parsed)
		}
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("ParseCompression(gzip) succeeded")
	}
}

func TestSealOpenRoundtrip(t *testing.T) {
	t.Parallel()

	data := octreeLike(64 * 1024)
	for _, compression := range []Compression{LZ4, Zstd} {
		t.Run(compression.String(), func(t *testing.T) {
			t.Parallel()

			envelope, err := Seal(data, compression)
			if err != nil {
				t.Fatalf("Seal: %v", err)
			}
			if len(envelope.Bytes) >= len(data) {
				t.Errorf("compressed %d bytes to %d", len(data), len(envelope.Bytes))
			}
			if envelope.Size != len(data) {
				t.Errorf("Size = %d, want %d", envelope.Size, len(data))
			}

			opened, err := envelope.Open()
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if !bytes.Equal(opened, data) {
				t.Error("Open returned different bytes")
			}
		})
	}
}

func TestSealIncompressible(t *testing.T) {
	t.Parallel()

	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	for _, compression := range []Compression{LZ4, Zstd} {
		if _, err := Seal(data, compression); !errors.Is(err, ErrIncompressible) {
			t.Errorf("Seal(%s) of 0..255 = %v, want ErrIncompressible", compression, err)
		}
	}
	if _, err := Seal(nil, LZ4); !errors.Is(err, ErrIncompressible) {
		t.Errorf("Seal(lz4) of empty payload = %v, want ErrIncompressible", err)
	}
	if _, err := Seal(data, None); err == nil {
		t.Error("Seal(none) succeeded")
	}
}

func TestOpenRejectsTampering(t *testing.T) {
	t.Parallel()

	data := octreeLike(8 * 1024)
	envelope, err := Seal(data, Zstd)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	wrongSize := envelope
	wrongSize.Size--
	if _, err := wrongSize.Open(); err == nil {
		t.Error("Open accepted a wrong size")
	}

	wrongDigest := envelope
	wrongDigest.Digest[0] ^= 0xff
	if _, err := wrongDigest.Open(); err == nil {
		t.Error("Open accepted a wrong digest")
	}

	truncated := envelope
	truncated.Bytes = envelope.Bytes[:len(envelope.Bytes)/2]
	if _, err := truncated.Open(); err == nil {
		t.Error("Open accepted truncated bytes")
	}

	oversized := envelope
	oversized.Size = MaxSize + 1
	if _, err := oversized.Open(); err == nil {
		t.Error("Open accepted a size above MaxSize")
	}
}

func TestDecompressNone(t *testing.T) {
	t.Parallel()

	data := []byte{1, 2, 3}
	got, err := Decompress(data, None, 3)
	if err != nil || !bytes.Equal(got, data) {
		t.Errorf("Decompress(none) = %v, %v", got, err)
	}
	if _, err := Decompress(data, None, 4); err == nil {
		t.Error("Decompress(none) accepted a size mismatch")
	}
}

func TestDecompressRejectsImplausibleSize(t *testing.T) {
	t.Parallel()

	// Three bytes of LZ4 cannot expand to 512 MiB; the claim must be
	// refused before the destination buffer is allocated.
	if _, err := Decompress([]byte{0, 0, 0}, LZ4, 512<<20); err == nil {
		t.Error("Decompress(lz4) accepted a 512 MiB claim for 3 bytes")
	}

	data := octreeLike(64 * 1024)
	for _, compression := range []Compression{LZ4, Zstd} {
		compressed, err := Compress(data, compression)
		if err != nil {
			t.Fatalf("Compress(%s): %v", compression, err)
		}
		if _, err := Decompress(compressed, compression, 256<<20); err == nil {
			t.Errorf("Decompress(%s) accepted an inflated size claim", compression)
		}
		got, err := Decompress(compressed, compression, len(data))
		if err != nil || !bytes.Equal(got, data) {
			t.Errorf("Decompress(%s) with the true size = %d bytes, %v", compression, len(got), err)
		}
	}
}
