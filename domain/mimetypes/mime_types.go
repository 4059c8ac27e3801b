package mimetypes

import (
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type MIME string

const (
	Unknown   MIME = "unknown"
	TextPlain MIME = "text/plain"

	ApplicationPDF         MIME = "application/pdf"
	ApplicationOctetStream MIME = "application/octet-stream"

	ImagePNG  MIME = "image/png"
	ImageJPEG MIME = "image/jpeg"
	ImageGIF  MIME = "image/gif"
	ImageWebP MIME = "image/webp"

	VideoMP4  MIME = "video/mp4"
	AudioMPEG MIME = "audio/mpeg"
)

// Detection is the result of sniffing uploaded bytes.
type Detection struct {
	Type      MIME
	Extension string // without the leading dot
}

// Detect sniffs the magic bytes of content. Parameters such as charset are dropped.
func Detect(content []byte) Detection {
	detected := mimetype.Detect(content)
	mt, _, err := mime.ParseMediaType(detected.String())
	if err != nil {
		return Detection{Type: Unknown}
	}
	return Detection{
		Type:      MIME(mt),
		Extension: strings.TrimPrefix(detected.Extension(), "."),
	}
}

func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}

func IsImage(m MIME) bool {
	return strings.HasPrefix(string(m), "image/")
}

// ExtensionFor returns the usual extension of m without the dot, or "" when unknown.
func ExtensionFor(m MIME) string {
	known := mimetype.Lookup(string(m))
	if known == nil {
		return ""
	}
	return strings.TrimPrefix(known.Extension(), ".")
}
