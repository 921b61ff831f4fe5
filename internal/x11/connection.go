package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to the X server named by display, or $DISPLAY when
// display is empty.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// RootDepth returns the pixel depth of the root window.
func (c *Connection) RootDepth() uint {
	return uint(c.XUtil.Screen().RootDepth)
}

// Depths returns the pixel depths that have at least one visual, ignoring
// depths below 8 bits.
func (c *Connection) Depths() []uint {
	var depths []uint
	for _, d := range c.XUtil.Screen().AllowedDepths {
		if d.Depth < 8 || len(d.Visuals) == 0 {
			continue
		}
		depths = append(depths, uint(d.Depth))
	}
	if len(depths) == 0 {
		depths = append(depths, c.RootDepth())
	}
	return depths
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
