// Command glyphs prints text as the badge would draw it, one line per
// column line, for checking font art.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/dotbadge/internal/font"
	"github.com/coreman2200/dotbadge/internal/model"
)

func main() {
	var (
		text    = flag.String("text", "", "text to render; empty prints every printable glyph")
		spacing = flag.Int("spacing", 2, "blank slices between glyphs")
		frames  = flag.Bool("frames", false, "print the video frames instead")
	)
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *frames {
		for i, f := range font.Frames() {
			fmt.Printf("frame %d (%d lit)\n", i, f.Count())
			for _, l := range f.Sketch() {
				fmt.Println(l)
			}
			fmt.Println()
		}
		return
	}

	s := *text
	if s == "" {
		var b strings.Builder
		for c := byte(' '); c <= 0x7f; c++ {
			b.WriteByte(c)
		}
		s = b.String()
	}
	if *spacing < 0 {
		log.Fatal().Int("spacing", *spacing).Msg("spacing must not be negative")
	}
	for _, l := range sketch(font.Render(s, *spacing)) {
		fmt.Println(l)
	}
}

// sketch draws a column stream as model.Cols lines.
func sketch(stream []byte) []string {
	lines := make([]string, model.Cols)
	for c := range lines {
		var b strings.Builder
		for _, slice := range stream {
			if slice&(1<<c) != 0 {
				b.WriteByte('@')
			} else {
				b.WriteByte('.')
			}
		}
		lines[c] = b.String()
	}
	return lines
}
