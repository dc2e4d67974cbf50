// Package mediatype answers the two questions the organizer asks about a
// file: what media type its name suggests, and which image format its
// leading bytes carry.
package mediatype

import (
	"mime"
	"path/filepath"
	"strings"
)

// builtinTypes covers common extensions the platform table may not know.
// The Go runtime only ships a handful of web types and /etc/mime.types is
// not present everywhere, so audio, video and office formats are listed
// here to keep results stable across machines.
var builtinTypes = map[string]string{
	".3gp":  "video/3gpp",
	".7z":   "application/x-7z-compressed",
	".aac":  "audio/aac",
	".avi":  "video/x-msvideo",
	".bmp":  "image/bmp",
	".csv":  "text/csv",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".epub": "application/epub+zip",
	".flac": "audio/flac",
	".flv":  "video/x-flv",
	".gif":  "image/gif",
	".gz":   "application/gzip",
	".heic": "image/heic",
	".ico":  "image/vnd.microsoft.icon",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".m4a":  "audio/mp4",
	".m4v":  "video/x-m4v",
	".md":   "text/markdown",
	".mid":  "audio/midi",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".odt":  "application/vnd.oasis.opendocument.text",
	".oga":  "audio/ogg",
	".ogg":  "audio/ogg",
	".ogv":  "video/ogg",
	".opus": "audio/opus",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".rar":  "application/vnd.rar",
	".rtf":  "application/rtf",
	".tar":  "application/x-tar",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".txt":  "text/plain",
	".wav":  "audio/x-wav",
	".webm": "video/webm",
	".webp": "image/webp",
	".wmv":  "video/x-ms-wmv",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".zip":  "application/zip",
}

// Guesser maps file names to media types using only the extension.
type Guesser struct {
	overrides map[string]string
	platform  func(ext string) string
}

// NewGuesser builds a Guesser. overrides maps lower-case extensions
// (".heif") to media types and is consulted first.
func NewGuesser(overrides map[string]string) *Guesser {
	cp := make(map[string]string, len(overrides))
	for ext, mediaType := range overrides {
		cp[strings.ToLower(ext)] = mediaType
	}
	return &Guesser{overrides: cp, platform: mime.TypeByExtension}
}

// Guess returns the media type suggested by name's extension, without
// parameters. ok is false for names without an extension or with an
// unknown one.
func (g *Guesser) Guess(name string) (mediaType string, ok bool) {
	base := filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" || ext == "." || len(ext) == len(base) {
		return "", false
	}
	if v, found := g.overrides[ext]; found {
		return clean(v)
	}
	if v, found := builtinTypes[ext]; found {
		return clean(v)
	}
	if g.platform == nil {
		return "", false
	}
	return clean(g.platform(ext))
}

func clean(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if parsed, _, err := mime.ParseMediaType(value); err == nil {
		return parsed, true
	}
	return strings.ToLower(value), true
}
