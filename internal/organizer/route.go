package organizer

import (
	"path/filepath"

	"filesort/internal/category"
	"filesort/internal/mediatype"
)

// Action tells whether a file is moved or left where it is.
type Action string

const (
	ActionMove Action = "move"
	ActionSkip Action = "skip"
)

// Reason explains how a Decision was reached.
type Reason string

const (
	// ReasonMediaType: the guessed media type matched a rule.
	ReasonMediaType Reason = "media_type"
	// ReasonSniffWebP: no guess, content is a WebP image.
	ReasonSniffWebP Reason = "sniff_webp"
	// ReasonSniffFallback: no guess, content is anything but WebP.
	ReasonSniffFallback Reason = "sniff_fallback"
	// ReasonUnmatched: the guessed media type matched no rule.
	ReasonUnmatched Reason = "unmatched"
	// ReasonUnmatchedBucket: unmatched, sent to the catch-all directory.
	ReasonUnmatchedBucket Reason = "unmatched_bucket"
	ReasonExcluded        Reason = "excluded"
	ReasonSniffFailed     Reason = "sniff_failed"
)

// Evidence is what is known about a file before routing it.
type Evidence struct {
	// MediaType is the type guessed from the name; empty when there was no
	// guess.
	MediaType string
	// Format is the sniffed image format tag, only meaningful when
	// MediaType is empty.
	Format string
}

// Decision is the routing outcome for one file.
type Decision struct {
	Action      Action `json:"action"`
	Reason      Reason `json:"reason"`
	Label       string `json:"label,omitempty"`
	Destination string `json:"destination,omitempty"`
	Target      string `json:"target,omitempty"`
	MediaType   string `json:"media_type,omitempty"`
	Format      string `json:"format,omitempty"`
}

// Route decides where name belongs. A guessed media type is matched against
// the table's rules in order; without a guess, WebP content goes to the
// image destination and everything else to the video destination.
func Route(table category.Table, name string, ev Evidence) Decision {
	if ev.MediaType != "" {
		rule, ok := table.Match(ev.MediaType)
		if !ok {
			return Decision{Action: ActionSkip, Reason: ReasonUnmatched, MediaType: ev.MediaType}
		}
		return Decision{
			Action:      ActionMove,
			Reason:      ReasonMediaType,
			Label:       rule.Label,
			Destination: rule.Destination,
			Target:      filepath.Join(rule.Destination, name),
			MediaType:   ev.MediaType,
		}
	}

	label, reason := category.LabelVideo, ReasonSniffFallback
	if ev.Format == mediatype.FormatWebP {
		label, reason = category.LabelImage, ReasonSniffWebP
	}
	dst := table.DestinationOrDefault(label)
	return Decision{
		Action:      ActionMove,
		Reason:      reason,
		Label:       label,
		Destination: dst,
		Target:      filepath.Join(dst, name),
		Format:      ev.Format,
	}
}

// toBucket redirects an unmatched decision to the catch-all label.
func toBucket(table category.Table, name string, d Decision, label string) Decision {
	if label == "" || d.Action != ActionSkip || d.Reason != ReasonUnmatched {
		return d
	}
	dst := table.DestinationOrDefault(label)
	d.Action = ActionMove
	d.Reason = ReasonUnmatchedBucket
	d.Label = label
	d.Destination = dst
	d.Target = filepath.Join(dst, name)
	return d
}
