package mimetypes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		content   []byte
		want      MIME
		extension string
	}{
		{"PNG magic bytes", pngHeader, ImagePNG, "png"},
		{"PDF magic bytes", []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n"), ApplicationPDF, "pdf"},
		{"Plain text drops charset", []byte("hello there"), TextPlain, "txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			got := Detect(tt.content)
			req.Equal(tt.want, got.Type)
			req.Equal(tt.extension, got.Extension)
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		detected string
		expected MIME
		want     bool
	}{
		{"Plain text with charset", "text/plain; charset=utf-8", TextPlain, true},
		{"PDF", "application/pdf", ApplicationPDF, true},
		{"PNG", "image/png", ImagePNG, true},
		{"JPEG", "image/jpeg", ImageJPEG, true},
		{"Mismatch", "text/plain; charset=utf-8", ImagePNG, false},
		{"Invalid MIME", "not a mime", TextPlain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Matches(tt.detected, tt.expected)
			require.Equal(t, tt.want, ok)
		})
	}
}

func TestIsImage(t *testing.T) {
	req := require.New(t)
	req.True(IsImage(ImageGIF))
	req.True(IsImage(ImageWebP))
	req.False(IsImage(VideoMP4))
	req.False(IsImage(Unknown))
}

func TestExtensionFor(t *testing.T) {
	req := require.New(t)
	req.Equal("png", ExtensionFor(ImagePNG))
	req.Equal("pdf", ExtensionFor(ApplicationPDF))
	req.Equal("", ExtensionFor(Unknown))
}
