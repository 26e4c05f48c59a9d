package qrcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PNG magic bytes
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47}

func TestQRCodeService_GenerateLinkQR(t *testing.T) {
	t.Parallel()

	svc := NewQRCodeService(128, "M")

	png, err := svc.GenerateLinkQR("https://example.com/articles/go-concurrency")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader))
}

func TestQRCodeService_EmptyLinkRejected(t *testing.T) {
	t.Parallel()

	svc := NewQRCodeService(128, "M")

	_, err := svc.GenerateLinkQR("   ")
	assert.Error(t, err)
}

func TestNewQRCodeService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewQRCodeService(0, "unknown").(*qrcodeService)

	assert.Equal(t, defaultSize, svc.size)
}
