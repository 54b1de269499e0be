//go:build (linux || darwin || windows) && !arm && !386 && !ios && !android

package cmd

import "github.com/aymanbagabas/go-nativeclipboard"

func readClipboard() (string, error) {
	data, err := nativeclipboard.Text.Read()
	return string(data), err
}
