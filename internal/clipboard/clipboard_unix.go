//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"errors"
	"os"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	return initErr
}

func nativeFormat(f format) clipboard.Format {
	if f == formatImage {
		return clipboard.FmtImage
	}
	return clipboard.FmtText
}

func writeData(f format, data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	clipboard.Write(nativeFormat(f), data)
	return nil
}

func readData(f format) ([]byte, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	return clipboard.Read(nativeFormat(f)), nil
}
