package organizer

import (
	"path/filepath"
	"testing"

	"filesort/internal/category"
)

func TestRoute(t *testing.T) {
	src := filepath.Join(string(filepath.Separator), "inbox")
	table, err := category.Build(src, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	tests := []struct {
		name      string
		file      string
		ev        Evidence
		action    Action
		reason    Reason
		label     string
		targetDir string
	}{
		{"png", "photo.png", Evidence{MediaType: "image/png"}, ActionMove, ReasonMediaType, "image", "image"},
		{"webp prefers full type", "photo.webp", Evidence{MediaType: "image/webp"}, ActionMove, ReasonMediaType, "image/webp", "video"},
		{"mp4", "clip.mp4", Evidence{MediaType: "video/mp4"}, ActionMove, ReasonMediaType, "video", "video"},
		{"pdf", "report.pdf", Evidence{MediaType: "application/pdf"}, ActionMove, ReasonMediaType, "application", "documents"},
		{"audio unmatched", "song.mp3", Evidence{MediaType: "audio/mpeg"}, ActionSkip, ReasonUnmatched, "", ""},
		{"sniffed webp", "mystery", Evidence{Format: "webp"}, ActionMove, ReasonSniffWebP, "image", "image"},
		{"sniffed png", "mystery", Evidence{Format: "png"}, ActionMove, ReasonSniffFallback, "video", "video"},
		{"not an image", "mystery", Evidence{}, ActionMove, ReasonSniffFallback, "video", "video"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Route(table, tc.file, tc.ev)
			if d.Action != tc.action || d.Reason != tc.reason || d.Label != tc.label {
				t.Fatalf("Route = %+v, want action=%s reason=%s label=%q", d, tc.action, tc.reason, tc.label)
			}
			if tc.targetDir == "" {
				if d.Target != "" {
					t.Fatalf("skip decision has target %q", d.Target)
				}
				return
			}
			want := filepath.Join(src, tc.targetDir, tc.file)
			if d.Target != want {
				t.Fatalf("target = %q, want %q", d.Target, want)
			}
		})
	}
}

func TestRouteUsesConfiguredImageDestination(t *testing.T) {
	src := filepath.Join(string(filepath.Separator), "inbox")
	table, err := category.Build(src, []string{"audio"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	d := Route(table, "song.mp3", Evidence{MediaType: "audio/mpeg"})
	if d.Target != filepath.Join(src, "audio", "song.mp3") {
		t.Fatalf("audio target = %q", d.Target)
	}
	d = Route(table, "noext", Evidence{Format: "webp"})
	if d.Destination != filepath.Join(src, "image") {
		t.Fatalf("webp destination = %q", d.Destination)
	}
}

func TestToBucket(t *testing.T) {
	src := filepath.Join(string(filepath.Separator), "inbox")
	table, err := category.Build(src, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	unmatched := Route(table, "song.mp3", Evidence{MediaType: "audio/mpeg"})

	if got := toBucket(table, "song.mp3", unmatched, ""); got != unmatched {
		t.Fatalf("empty bucket label changed decision: %+v", got)
	}
	got := toBucket(table, "song.mp3", unmatched, "misc")
	if got.Action != ActionMove || got.Reason != ReasonUnmatchedBucket {
		t.Fatalf("bucket decision = %+v", got)
	}
	if got.Target != filepath.Join(src, "misc", "song.mp3") {
		t.Fatalf("bucket target = %q", got.Target)
	}
	if got.MediaType != "audio/mpeg" {
		t.Fatalf("media type lost: %+v", got)
	}

	matched := Route(table, "photo.png", Evidence{MediaType: "image/png"})
	if toBucket(table, "photo.png", matched, "misc") != matched {
		t.Fatal("bucket must not change matched decisions")
	}
}
