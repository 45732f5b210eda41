//go:build cgo && ocr

package main

import "github.com/davidbyttow/govips/v2/vips"

func startVips() {
	vips.Startup(nil)
}

func stopVips() {
	vips.Shutdown()
}
