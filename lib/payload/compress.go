// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the algorithm applied to a payload. The
// string forms are the wire tokens written into documents.
type Compression uint8

const (
	// None leaves the payload uncompressed.
	None Compression = 0

	// LZ4 is LZ4 block compression: fast, modest ratio.
	LZ4 Compression = 1

	// Zstd is zstd at the default level: better ratio for the
	// sparse, repetitive octree encodings typical of occupancy maps.
	Zstd Compression = 2
)

// MaxSize bounds the uncompressed size an envelope may claim.
const MaxSize = 1 << 30

// ErrIncompressible is returned by [Compress] and [Seal] when the
// compressed form is not smaller than the input. Callers fall back to
// carrying the payload raw.
var ErrIncompressible = errors.New("payload: data is incompressible")

// String returns the wire token for the algorithm.
func (compression Compression) String() string {
	switch compression {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(compression))
	}
}

// ParseCompression parses a wire token.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("unknown payload compression: %q", name)
	}
}

// Compress compresses data with the given algorithm. For None it
// returns data unchanged.
func Compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case None:
		return data, nil
	case LZ4:
		return compressLZ4(data)
	case Zstd:
		return compressZstd(data)
	default:
		return nil, fmt.Errorf("unsupported payload compression: %d", compression)
	}
}

// Decompress reverses [Compress]. The result must be exactly
// uncompressedSize bytes long.
func Decompress(compressed []byte, compression Compression, uncompressedSize int) ([]byte, error) {
	if uncompressedSize < 0 || uncompressedSize > MaxSize {
		return nil, fmt.Errorf("payload size %d out of range", uncompressedSize)
	}
	switch compression {
	case None:
		if len(compressed) != uncompressedSize {
			return nil, fmt.Errorf("uncompressed payload: size %d does not match expected %d",
				len(compressed), uncompressedSize)
		}
		return compressed, nil
	case LZ4:
		return decompressLZ4(compressed, uncompressedSize)
	case Zstd:
		return decompressZstd(compressed, uncompressedSize)
	default:
		return nil, fmt.Errorf("unsupported payload compression: %d", compression)
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock reports 0 for incompressible input.
	if written == 0 || written >= len(data) {
		return nil, ErrIncompressible
	}
	return destination[:written], nil
}

// lz4MaxRatio is the largest expansion an LZ4 block can encode: a
// match adds at most 255 bytes per byte of input, plus the literals
// that end every block.
const (
	lz4MaxRatio    = 255
	lz4MaxOverhead = 16
)

func decompressLZ4(compressed []byte, uncompressedSize int) ([]byte, error) {
	if uncompressedSize > lz4MaxRatio*len(compressed)+lz4MaxOverhead {
		return nil, fmt.Errorf("lz4 decompress: %d compressed bytes cannot expand to %d",
			len(compressed), uncompressedSize)
	}
	destination := make([]byte, uncompressedSize)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != uncompressedSize {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, uncompressedSize)
	}
	return destination, nil
}

// zstd.Encoder and zstd.Decoder are safe for concurrent use through
// EncodeAll and DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("payload: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxSize))
	if err != nil {
		panic("payload: zstd decoder initialization failed: " + err.Error())
	}
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, ErrIncompressible
	}
	return compressed, nil
}

// decompressZstd only preallocates when the frame header declares the
// same content size as the caller. Frames without a declared size grow
// the buffer as they decode.
func decompressZstd(compressed []byte, uncompressedSize int) ([]byte, error) {
	var header zstd.Header
	if err := header.Decode(compressed); err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	var destination []byte
	if header.HasFCS {
		if header.FrameContentSize != uint64(uncompressedSize) {
			return nil, fmt.Errorf("zstd decompress: frame declares %d bytes, expected %d",
				header.FrameContentSize, uncompressedSize)
		}
		destination = make([]byte, 0, uncompressedSize)
	}
	result, err := zstdDecoder.DecodeAll(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) != uncompressedSize {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), uncompressedSize)
	}
	return result, nil
}
