// transcode converts files to prime numbers, MIDI, or QR images and back.
//
// Usage:
//
//	transcode encode --codec=<prime|midi|qr> [--mode=musical] FILE [-o OUT]
//	transcode decode --codec=<prime|midi|qr> ARTIFACT [-o DIR]
//	transcode pipeline encode --steps=prime,midi FILE... [-o DIR] [--report]
//	transcode pipeline decode --steps=prime,midi ARTIFACT [-o DIR]
//	transcode verify HASH_A HASH_B
//	transcode digest [--algo=sha256] FILE...
//	transcode info
package main

import (
	"errors"
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errMismatch) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
