// Command transcode converts text between Unicode and locale encodings.
//
// Usage:
//
//	transcode encode [--from utf-16le] [--input file]   UTF text → locale bytes
//	transcode decode [--to utf-8] [--input file]        locale bytes → UTF text
//	transcode inspect [-i] [text...]                    per-character report
//	transcode locales                                   list codesets
//
// The locale comes from --locale, TEXTCORE_LOCALE, or LC_ALL, LC_CTYPE
// and LANG, in that order.
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/wippyai/textcore"
)

func main() {
	conf, err := textcore.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gs := &globalState{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		isTTY:  func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
		conf:   conf,
	}

	if err := newRootCmd(gs).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
