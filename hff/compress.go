package hff

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how the payload of a file is compressed. The string
// forms are stored in the file envelope.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	}
	return fmt.Sprintf("unknown(%d)", uint8(c))
}

// ParseCompression parses "none", "zstd" or "lz4". The empty string is
// treated as "none".
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	}
	return 0, fmt.Errorf("hff: unknown compression %q", name)
}

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("hff: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("hff: zstd decoder initialization failed: " + err.Error())
	}
}

// compress returns the compressed payload and the compression actually
// used. Incompressible lz4 input is stored uncompressed.
func compress(data []byte, c Compression) ([]byte, Compression, error) {
	switch c {
	case CompressionNone:
		return data, CompressionNone, nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), CompressionZstd, nil
	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, dst, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("hff: lz4 compress: %w", err)
		}
		if n == 0 {
			return data, CompressionNone, nil
		}
		return dst[:n], CompressionLZ4, nil
	}
	return nil, 0, fmt.Errorf("hff: unsupported compression %s", c)
}

func decompress(data []byte, c Compression, size int) ([]byte, error) {
	var out []byte
	switch c {
	case CompressionNone:
		out = data
	case CompressionZstd:
		var err error
		out, err = zstdDecoder.DecodeAll(data, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("hff: zstd decompress: %w", err)
		}
	case CompressionLZ4:
		out = make([]byte, size)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("hff: lz4 decompress: %w", err)
		}
		out = out[:n]
	default:
		return nil, fmt.Errorf("hff: unsupported compression %s", c)
	}
	if len(out) != size {
		return nil, fmt.Errorf("hff: payload is %d bytes, envelope says %d", len(out), size)
	}
	return out, nil
}
