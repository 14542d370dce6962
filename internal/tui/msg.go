package tui

import (
	"time"

	"github.com/papapumpkin/starfield/internal/config"
	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/palette"
	"github.com/papapumpkin/starfield/internal/render"
	"github.com/papapumpkin/starfield/internal/store"
)

// MsgFrame fires a scheduled animation frame. Frames carrying a superseded or
// cancelled ticket are dropped.
type MsgFrame struct {
	Ticket render.Ticket
	At     time.Time
}

// MsgOpDone carries the result of a backend round trip back to the loop,
// where it is applied to the store.
type MsgOpDone struct {
	Result store.Result
}

// MsgRelated carries a related-ideas lookup for the detail panel.
type MsgRelated struct {
	IdeaID  string
	Entries []galaxy.Related
	Err     error
}

// MsgConfigReloaded is sent when the configuration file changed on disk.
type MsgConfigReloaded struct {
	Scene   config.SceneConfig
	Palette palette.Table
}

// MsgConfigError reports a configuration edit that could not be applied.
type MsgConfigError struct {
	Err error
}

// MsgToastExpired dismisses a toast.
type MsgToastExpired struct {
	ID int
}
