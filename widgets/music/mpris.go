package music

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	mprisPrefix = "org.mpris.MediaPlayer2."
	mprisPath   = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	mprisPlayer = "org.mpris.MediaPlayer2.Player"
)

// Player control methods.
const (
	MethodPlay      = "Play"
	MethodPause     = "Pause"
	MethodPlayPause = "PlayPause"
	MethodStop      = "Stop"
	MethodNext      = "Next"
	MethodPrevious  = "Previous"
)

// Backend reads the current song and controls the player.
type Backend interface {
	Connect() error
	// Song returns the current song. found is false when no player is running.
	Song(ctx context.Context) (info SongInfo, found bool, err error)
	// Call invokes a control method on the player, if there is one.
	Call(ctx context.Context, method string) error
	Close() error
}

// MPRIS talks to the first MPRIS player on the session bus.
type MPRIS struct {
	mu   sync.Mutex
	conn *dbus.Conn
}

var _ Backend = &MPRIS{}

// Connect opens the session bus connection.
func (m *MPRIS) Connect() error {
	_, err := m.bus()

	return err
}

func (m *MPRIS) bus() (*dbus.Conn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn != nil {
		return m.conn, nil
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("could not connect to D-Bus session bus: %w", err)
	}

	m.conn = conn

	return conn, nil
}

// Close closes the connection.
func (m *MPRIS) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return nil
	}

	err := m.conn.Close()
	m.conn = nil

	return err
}

func (m *MPRIS) findPlayer(ctx context.Context, conn *dbus.Conn) (string, error) {
	var names []string

	if err := conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return "", err
	}

	for _, name := range names {
		if strings.HasPrefix(name, mprisPrefix) {
			return name, nil
		}
	}

	return "", nil
}

func getProperty(ctx context.Context, obj dbus.BusObject, name string) (dbus.Variant, error) {
	var v dbus.Variant

	err := obj.CallWithContext(ctx, "org.freedesktop.DBus.Properties.Get", 0, mprisPlayer, name).Store(&v)

	return v, err
}

// Song implements Backend.
func (m *MPRIS) Song(ctx context.Context) (SongInfo, bool, error) {
	conn, err := m.bus()
	if err != nil {
		return SongInfo{}, false, err
	}

	player, err := m.findPlayer(ctx, conn)
	if err != nil || player == "" {
		return SongInfo{}, false, err
	}

	obj := conn.Object(player, mprisPath)

	v, err := getProperty(ctx, obj, "Metadata")
	if err != nil {
		return SongInfo{}, true, err
	}

	metadata, _ := v.Value().(map[string]dbus.Variant)

	info := songFromMetadata(metadata)

	if status, err := getProperty(ctx, obj, "PlaybackStatus"); err == nil {
		s, _ := status.Value().(string)

		var position int64
		if pos, err := getProperty(ctx, obj, "Position"); err == nil {
			position = integer(pos)
		}

		info.Playback = &PlaybackInfo{
			Playing:  s == "Playing",
			Progress: time.Duration(position) * time.Microsecond,
			Total:    time.Duration(integer(metadata["mpris:length"])) * time.Microsecond,
		}
	}

	return info, true, nil
}

// Call implements Backend.
func (m *MPRIS) Call(ctx context.Context, method string) error {
	conn, err := m.bus()
	if err != nil {
		return err
	}

	player, err := m.findPlayer(ctx, conn)
	if err != nil || player == "" {
		return err
	}

	return conn.Object(player, mprisPath).CallWithContext(ctx, mprisPlayer+"."+method, 0).Err
}

func songFromMetadata(metadata map[string]dbus.Variant) SongInfo {
	return SongInfo{
		Title:             text(metadata["xesam:title"]),
		Artist:            text(metadata["xesam:artist"]),
		Album:             text(metadata["xesam:album"]),
		Filename:          text(metadata["xesam:url"]),
		MusicBrainzTrack:  optional(metadata, "xesam:musicBrainzTrackID"),
		MusicBrainzArtist: optional(metadata, "xesam:musicBrainzArtistID"),
		MusicBrainzAlbum:  optional(metadata, "xesam:musicBrainzAlbumID"),
	}
}

// text returns a string entry; string lists (xesam:artist) are joined.
func text(v dbus.Variant) string {
	switch t := v.Value().(type) {
	case string:
		return t
	case dbus.ObjectPath:
		return string(t)
	case []string:
		return strings.Join(t, ", ")
	}

	return ""
}

func optional(metadata map[string]dbus.Variant, key string) *string {
	v, ok := metadata[key]
	if !ok {
		return nil
	}

	s := text(v)
	if s == "" {
		return nil
	}

	return &s
}

func integer(v dbus.Variant) int64 {
	switch t := v.Value().(type) {
	case int64:
		return t
	case uint64:
		return int64(t)
	case int32:
		return int64(t)
	case uint32:
		return int64(t)
	}

	return 0
}
