package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipCompress(data []byte) []byte {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write(data)
	_ = gz.Close()
	return buf.Bytes()
}

func brCompress(data []byte) []byte {
	var buf bytes.Buffer
	br := brotli.NewWriter(&buf)
	_, _ = br.Write(data)
	_ = br.Close()
	return buf.Bytes()
}

func zstdCompress(data []byte) []byte {
	var buf bytes.Buffer
	zw, _ := zstd.NewWriter(&buf)
	_, _ = zw.Write(data)
	_ = zw.Close()
	return buf.Bytes()
}

func zlibCompress(data []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, _ = zw.Write(data)
	_ = zw.Close()
	return buf.Bytes()
}

func rawDeflateCompress(data []byte) []byte {
	var buf bytes.Buffer
	dw, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	_, _ = dw.Write(data)
	_ = dw.Close()
	return buf.Bytes()
}

func TestDecodeChain(t *testing.T) {
	plain := []byte(`[{"appId":"com.example.wallet"}]`)

	tests := []struct {
		name     string
		encoding string
		body     []byte
		changed  bool
	}{
		{"none", "", plain, false},
		{"identity", "identity", plain, false},
		{"gzip", "gzip", gzipCompress(plain), true},
		{"brotli", "br", brCompress(plain), true},
		{"zstd", "zstd", zstdCompress(plain), true},
		{"deflate zlib", "deflate", zlibCompress(plain), true},
		{"deflate raw", "deflate", rawDeflateCompress(plain), true},
		{"case and spaces", "  GZip ", gzipCompress(plain), true},
		{"chained gzip then br", "gzip, br", brCompress(gzipCompress(plain)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, changed, err := DecodeChain(tt.encoding, tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, plain, decoded)
		})
	}
}

func TestDecodeChain_UnsupportedEncoding(t *testing.T) {
	_, _, err := DecodeChain("compress", []byte("abc"))
	assert.ErrorContains(t, err, "unsupported content-encoding")
}

func TestDecodeChain_CorruptBody(t *testing.T) {
	_, _, err := DecodeChain("gzip", []byte("not gzip"))
	assert.Error(t, err)
}
