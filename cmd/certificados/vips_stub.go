//go:build !cgo || !ocr

package main

// No-op stand-ins for environments built without vips/CGO support; the
// OCR provider is a stub in those builds so there is nothing to start.
func startVips() {}

func stopVips() {}
