//go:build windows

package facts

import (
	"context"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	wsExLayered     = 0x00080000
	wsExTransparent = 0x00000020
	wsExTopmost     = 0x00000008
)

// GWL_EXSTYLE is -20; GetWindowLongW takes a signed index.
var gwlExstyle = uintptr(uint32(int32(-20)))

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procGetWindowLongW           = user32.NewProc("GetWindowLongW")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
)

type winRect struct {
	Left, Top, Right, Bottom int32
}

// EnumOverlayProvider walks the top-level window list looking for layered
// windows that are transparent or topmost: the shape of an invisible
// assistant overlay.
type EnumOverlayProvider struct{}

// NewOverlayProvider returns the overlay provider for this platform.
func NewOverlayProvider() OverlayProvider { return &EnumOverlayProvider{} }

// Supported reports true: EnumWindows is always available.
func (o *EnumOverlayProvider) Supported() bool { return true }

// Windows returns overlay window candidates larger than 50x50 that are
// layered and transparent or topmost, and visible or topmost.
func (o *EnumOverlayProvider) Windows(_ context.Context) ([]OverlayWindow, error) {
	var found []OverlayWindow

	cb := windows.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		style, _, _ := procGetWindowLongW.Call(hwnd, gwlExstyle)
		exStyle := uint32(style)

		layered := exStyle&wsExLayered != 0
		transparent := exStyle&wsExTransparent != 0
		topmost := exStyle&wsExTopmost != 0
		if !layered || (!transparent && !topmost) {
			return 1
		}

		var r winRect
		ok, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
		if ok == 0 {
			return 1
		}
		width := uint32(r.Right - r.Left)
		height := uint32(r.Bottom - r.Top)
		if width <= 50 || height <= 50 {
			return 1
		}

		visible, _, _ := procIsWindowVisible.Call(hwnd)
		if visible == 0 && !topmost {
			return 1
		}

		var pid uint32
		procGetWindowThreadProcessID.Call(hwnd, uintptr(unsafe.Pointer(&pid)))

		found = append(found, OverlayWindow{
			Handle:      hwnd,
			OwnerPID:    pid,
			X:           r.Left,
			Y:           r.Top,
			Width:       width,
			Height:      height,
			Transparent: transparent,
			Topmost:     topmost,
		})
		return 1
	})

	ret, _, err := procEnumWindows.Call(cb, 0)
	if ret == 0 {
		return nil, err
	}
	return found, nil
}
