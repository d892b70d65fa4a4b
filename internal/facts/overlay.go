//go:build !windows

package facts

import "context"

// UnsupportedOverlayProvider is used where overlay window enumeration has no
// platform implementation; it reports zero findings unconditionally.
type UnsupportedOverlayProvider struct{}

// NewOverlayProvider returns the overlay provider for this platform.
func NewOverlayProvider() OverlayProvider { return &UnsupportedOverlayProvider{} }

// Supported reports false: no enumeration on this platform.
func (o *UnsupportedOverlayProvider) Supported() bool { return false }

// Windows returns no overlay candidates.
func (o *UnsupportedOverlayProvider) Windows(context.Context) ([]OverlayWindow, error) {
	return nil, nil
}
