// Package coreaudio implements the device HAL and change watcher on macOS
// using the CoreAudio AudioObject property API.
package coreaudio
