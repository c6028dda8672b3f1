package music

import (
	"fmt"
	"strings"
	"time"
)

// SongInfo describes the track a player has loaded.
type SongInfo struct {
	Title    string
	Artist   string
	Album    string
	Filename string

	MusicBrainzTrack  *string
	MusicBrainzArtist *string
	MusicBrainzAlbum  *string

	// Playback is nil when the player does not report its status.
	Playback *PlaybackInfo
}

// PlaybackInfo is the playback state of the current track.
type PlaybackInfo struct {
	Playing       bool
	Progress      time.Duration
	Total         time.Duration
	PlaylistIndex int
	PlaylistTotal int
}

// Empty reports whether no track is loaded.
func (s SongInfo) Empty() bool {
	return s.Title == "" && s.Artist == "" && s.Album == "" && s.Filename == "" && s.Playback == nil
}

// Format expands placeholders in format:
//
//	%t title, %a artist, %l album, %f filename,
//	%s playing state, %p progress, %d duration,
//	%i playlist position, %% a literal percent sign.
func Format(format string, s SongInfo) string {
	var state, progress, duration, position string

	if p := s.Playback; p != nil {
		state = "⏸"
		if p.Playing {
			state = "▶"
		}

		progress = clock(p.Progress)
		duration = clock(p.Total)

		if p.PlaylistTotal > 0 {
			position = fmt.Sprintf("%d/%d", p.PlaylistIndex+1, p.PlaylistTotal)
		}
	}

	return strings.NewReplacer(
		"%%", "%",
		"%t", s.Title,
		"%a", s.Artist,
		"%l", s.Album,
		"%f", s.Filename,
		"%s", state,
		"%p", progress,
		"%d", duration,
		"%i", position,
	).Replace(format)
}

// clock formats d as m:ss, or h:mm:ss for an hour or more.
func clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	secs := int64(d / time.Second)
	h, m, s := secs/3600, secs/60%60, secs%60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%d:%02d", m, s)
}
