//go:build windows

package platform

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/1broseidon/displaykit/internal/display"
	"github.com/1broseidon/displaykit/internal/logging"
)

var (
	modUser32                 = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayDevices    = modUser32.NewProc("EnumDisplayDevicesW")
	procEnumDisplaySettings   = modUser32.NewProc("EnumDisplaySettingsW")
	procEnumDisplaySettingsEx = modUser32.NewProc("EnumDisplaySettingsExW")
	procMonitorFromRect       = modUser32.NewProc("MonitorFromRect")
	procGetMonitorInfo        = modUser32.NewProc("GetMonitorInfoW")

	modGdi32          = windows.NewLazySystemDLL("gdi32.dll")
	procCreateDC      = modGdi32.NewProc("CreateDCW")
	procDeleteDC      = modGdi32.NewProc("DeleteDC")
	procGetDeviceCaps = modGdi32.NewProc("GetDeviceCaps")
)

const (
	displayDeviceAttachedToDesktop = 0x00000001
	displayDevicePrimaryDevice     = 0x00000004
	displayDeviceMirroringDriver   = 0x00000008

	eddGetDeviceInterfaceName = 0x00000001
	enumCurrentSettings       = 0xFFFFFFFF
	monitorDefaultToNearest   = 0x00000002

	capLogPixelsX = 88
	capLogPixelsY = 90
	capVRefresh   = 116

	mdtEffectiveDPI = 0
)

type displayDevice struct {
	Cb           uint32
	DeviceName   [32]uint16
	DeviceString [128]uint16
	StateFlags   uint32
	DeviceID     [128]uint16
	DeviceKey    [128]uint16
}

// devMode mirrors DEVMODEW with the display variant of its unions.
type devMode struct {
	DeviceName         [32]uint16
	SpecVersion        uint16
	DriverVersion      uint16
	Size               uint16
	DriverExtra        uint16
	Fields             uint32
	PositionX          int32
	PositionY          int32
	DisplayOrientation uint32
	DisplayFixedOutput uint32
	Color              int16
	Duplex             int16
	YResolution        int16
	TTOption           int16
	Collate            int16
	FormName           [32]uint16
	LogPixels          uint16
	BitsPerPel         uint32
	PelsWidth          uint32
	PelsHeight         uint32
	DisplayFlags       uint32
	DisplayFrequency   uint32
	ICMMethod          uint32
	ICMIntent          uint32
	MediaType          uint32
	DitherType         uint32
	Reserved1          uint32
	Reserved2          uint32
	PanningWidth       uint32
	PanningHeight      uint32
}

type monitorInfoEx struct {
	CbSize    uint32
	RcMonitor windows.Rect
	RcWork    windows.Rect
	DwFlags   uint32
	SzDevice  [32]uint16
}

// Win32Probe enumerates display devices through the GDI display APIs.
type Win32Probe struct{}

var _ display.Probe = (*Win32Probe)(nil)

func newWin32Probe() (display.Probe, error) {
	if err := procEnumDisplayDevices.Find(); err != nil {
		return nil, fmt.Errorf("user32 display APIs unavailable: %w", err)
	}
	return &Win32Probe{}, nil
}

// Enumerate returns every attached, non-mirroring display device. A device
// whose current settings can't be read is skipped.
func (p *Win32Probe) Enumerate() ([]display.RawScreen, error) {
	if err := procEnumDisplayDevices.Find(); err != nil {
		return nil, fmt.Errorf("EnumDisplayDevicesW unavailable: %w", err)
	}

	var screens []display.RawScreen
	for i := uint32(0); ; i++ {
		var dev displayDevice
		dev.Cb = uint32(unsafe.Sizeof(dev))
		r, _, _ := procEnumDisplayDevices.Call(0, uintptr(i), uintptr(unsafe.Pointer(&dev)), 0)
		if r == 0 {
			break
		}

		if dev.StateFlags&displayDeviceMirroringDriver != 0 || dev.StateFlags&displayDeviceAttachedToDesktop == 0 {
			continue
		}

		deviceName := windows.UTF16ToString(dev.DeviceName[:])
		screen, err := probeDevice(&dev)
		if err != nil {
			logger().Warn("couldn't get desktop settings of screen, skipping", logging.KeyDevice, deviceName, logging.KeyError, err)
			continue
		}
		screens = append(screens, screen)
	}

	if screens == nil {
		screens = []display.RawScreen{}
	}
	return screens, nil
}

func probeDevice(dev *displayDevice) (display.RawScreen, error) {
	namePtr := &dev.DeviceName[0]
	deviceName := windows.UTF16ToString(dev.DeviceName[:])

	var current devMode
	current.Size = uint16(unsafe.Sizeof(current))
	r, _, err := procEnumDisplaySettingsEx.Call(
		uintptr(unsafe.Pointer(namePtr)),
		uintptr(enumCurrentSettings),
		uintptr(unsafe.Pointer(&current)),
		0,
	)
	if r == 0 {
		return display.RawScreen{}, fmt.Errorf("EnumDisplaySettingsExW: %w", err)
	}

	refreshRate := uint(current.DisplayFrequency)

	var monitorDev displayDevice
	monitorDev.Cb = uint32(unsafe.Sizeof(monitorDev))
	monitorName := deviceName
	if r, _, _ := procEnumDisplayDevices.Call(
		uintptr(unsafe.Pointer(namePtr)), 0,
		uintptr(unsafe.Pointer(&monitorDev)),
		eddGetDeviceInterfaceName,
	); r != 0 {
		if s := windows.UTF16ToString(monitorDev.DeviceString[:]); s != "" {
			monitorName = s
		}
	}

	bounds := display.Rect{
		Left:   int(current.PositionX),
		Top:    int(current.PositionY),
		Width:  int(current.PelsWidth),
		Height: int(current.PelsHeight),
	}
	workingArea := bounds

	probeRect := windows.Rect{Left: current.PositionX, Top: current.PositionY, Right: current.PositionX + 1, Bottom: current.PositionY + 1}
	monitor, _, _ := procMonitorFromRect.Call(uintptr(unsafe.Pointer(&probeRect)), monitorDefaultToNearest)
	if monitor != 0 {
		var info monitorInfoEx
		info.CbSize = uint32(unsafe.Sizeof(info))
		if r, _, _ := procGetMonitorInfo.Call(monitor, uintptr(unsafe.Pointer(&info))); r != 0 {
			bounds = rectFromWin(info.RcMonitor)
			workingArea = rectFromWin(info.RcWork)
		}
	}

	dpi := monitorDPI(monitor)

	if hdc, _, _ := procCreateDC.Call(uintptr(unsafe.Pointer(namePtr)), 0, 0, 0); hdc != 0 {
		if dpi == (display.Vec2{}) {
			x, _, _ := procGetDeviceCaps.Call(hdc, capLogPixelsX)
			y, _, _ := procGetDeviceCaps.Call(hdc, capLogPixelsY)
			dpi = display.Vec2{X: uint(x), Y: uint(y)}
		}
		if rate, _, _ := procGetDeviceCaps.Call(hdc, capVRefresh); rate > 1 {
			refreshRate = uint(rate)
		}
		procDeleteDC.Call(hdc)
	}
	if dpi == (display.Vec2{}) {
		dpi = display.Vec2{X: 96, Y: 96}
	}

	var modes []display.VideoMode
	for n := uint32(0); ; n++ {
		var dm devMode
		dm.Size = uint16(unsafe.Sizeof(dm))
		if r, _, _ := procEnumDisplaySettings.Call(uintptr(unsafe.Pointer(namePtr)), uintptr(n), uintptr(unsafe.Pointer(&dm))); r == 0 {
			break
		}
		modes = append(modes, display.VideoMode{
			Width:        uint(dm.PelsWidth),
			Height:       uint(dm.PelsHeight),
			BitsPerPixel: uint(dm.BitsPerPel),
		})
	}

	return display.RawScreen{
		Device:      deviceName,
		Name:        monitorName,
		Bounds:      bounds,
		WorkingArea: workingArea,
		RefreshRate: refreshRate,
		DPI:         dpi,
		Primary:     dev.StateFlags&displayDevicePrimaryDevice != 0,
		Modes:       modes,
		DesktopMode: display.VideoMode{
			Width:        uint(current.PelsWidth),
			Height:       uint(current.PelsHeight),
			BitsPerPixel: uint(current.BitsPerPel),
		},
	}, nil
}

// monitorDPI queries Shcore!GetDpiForMonitor, which only exists on Windows
// 8.1 and later. The library is loaded and released per call.
func monitorDPI(monitor uintptr) display.Vec2 {
	if monitor == 0 {
		return display.Vec2{}
	}

	shcore, err := windows.LoadLibraryEx("shcore.dll", 0, windows.LOAD_LIBRARY_SEARCH_SYSTEM32)
	if err != nil {
		return display.Vec2{}
	}
	defer windows.FreeLibrary(shcore)

	getDpiForMonitor, err := windows.GetProcAddress(shcore, "GetDpiForMonitor")
	if err != nil {
		return display.Vec2{}
	}

	var dpiX, dpiY uint32
	hr, _, _ := syscall.SyscallN(getDpiForMonitor,
		monitor,
		mdtEffectiveDPI,
		uintptr(unsafe.Pointer(&dpiX)),
		uintptr(unsafe.Pointer(&dpiY)),
	)
	if int32(hr) != 0 {
		return display.Vec2{}
	}
	return display.Vec2{X: uint(dpiX), Y: uint(dpiY)}
}

func rectFromWin(r windows.Rect) display.Rect {
	return display.Rect{
		Left:   int(r.Left),
		Top:    int(r.Top),
		Width:  int(r.Right - r.Left),
		Height: int(r.Bottom - r.Top),
	}
}
