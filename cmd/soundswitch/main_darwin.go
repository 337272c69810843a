//go:build darwin

package main

import "golang.design/x/mainthread"

// golang.design/x/hotkey needs the Cocoa event loop on the main thread.
func main() {
	mainthread.Init(run)
}
