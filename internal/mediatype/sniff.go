package mediatype

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen bounds how much of a file is read to identify it.
const sniffLen = 512

// Image format tags returned by Sniff.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatGIF  = "gif"
	FormatWebP = "webp"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatICO  = "ico"
)

var signatureFormats = map[string]string{
	"image/jpeg":               FormatJPEG,
	"image/png":                FormatPNG,
	"image/gif":                FormatGIF,
	"image/webp":               FormatWebP,
	"image/bmp":                FormatBMP,
	"image/tiff":               FormatTIFF,
	"image/x-icon":             FormatICO,
	"image/vnd.microsoft.icon": FormatICO,
}

// Sniffer identifies image formats from leading bytes. Only signatures are
// compared; the content is never decoded.
type Sniffer struct{}

// Sniff reads at most 512 bytes from r and returns the image format tag, or
// "" when the content is not a recognised image.
func (Sniffer) Sniff(r io.Reader) (string, error) {
	head, err := io.ReadAll(io.LimitReader(r, sniffLen))
	if err != nil {
		return "", fmt.Errorf("read header: %w", err)
	}
	return FormatOf(head), nil
}

// SniffFile opens path and sniffs its header.
func (s Sniffer) SniffFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return s.Sniff(f)
}

// FormatOf returns the image format tag for head, or "".
func FormatOf(head []byte) string {
	if len(head) == 0 {
		return ""
	}
	// Walk up the hierarchy so subtypes such as APNG report their base
	// format.
	for m := mimetype.Detect(head); m != nil; m = m.Parent() {
		if format, ok := signatureFormats[baseType(m.String())]; ok {
			return format
		}
	}
	return ""
}

func baseType(mediaType string) string {
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
