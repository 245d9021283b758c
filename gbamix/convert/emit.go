package convert

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"
)

// WriteRaw writes the samples as raw signed 8-bit PCM.
func WriteRaw(w io.Writer, samples []int8) error {
	buf := make([]byte, len(samples))
	for i, s := range samples {
		buf[i] = byte(s)
	}
	_, err := w.Write(buf)
	return err
}

// EmitGo writes a Go source file declaring the converted asset as a
// ready to use *mixer.SoundData named name.
func EmitGo(w io.Writer, pkg, name string, samples []int8, opts Options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "// Code generated by gbamix convert. DO NOT EDIT.\n\n")
	fmt.Fprintf(bw, "package %s\n\n", pkg)
	fmt.Fprintf(bw, "import \"github.com/gbamix/go-gbamix/gbamix/mixer\"\n\n")

	ctor := fmt.Sprintf("NewSoundData(%sData[:], %d)", name, opts.Rate)
	switch {
	case opts.Stereo && opts.LoopStart >= 0:
		ctor = fmt.Sprintf("NewLoopingStereoSoundData(%sData[:], %d, %d)", name, opts.Rate, opts.LoopStart)
	case opts.Stereo:
		ctor = fmt.Sprintf("NewStereoSoundData(%sData[:], %d)", name, opts.Rate)
	case opts.LoopStart >= 0:
		ctor = fmt.Sprintf("NewLoopingSoundData(%sData[:], %d, %d)", name, opts.Rate, opts.LoopStart)
	}

	fmt.Fprintf(bw, "// %s holds %d samples of %d Hz audio.\n", name, len(samples), opts.Rate)
	fmt.Fprintf(bw, "var %s = mixer.%s\n\n", name, ctor)

	fmt.Fprintf(bw, "var %sData = [...]int8{", name)
	for i, s := range samples {
		if i%16 == 0 {
			fmt.Fprintf(bw, "\n\t")
		} else {
			fmt.Fprintf(bw, " ")
		}
		fmt.Fprintf(bw, "%d,", s)
	}
	fmt.Fprintf(bw, "\n}\n")

	return bw.Flush()
}

// identFromPath derives an exported Go identifier from a file name:
// "boss-theme.ogg" becomes BossTheme.
func identFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var b strings.Builder
	up := true
	for _, r := range base {
		switch {
		case unicode.IsLetter(r):
			if up {
				r = unicode.ToUpper(r)
				up = false
			}
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if b.Len() == 0 {
				b.WriteString("Sound")
				up = false
			}
			b.WriteRune(r)
		default:
			up = true
		}
	}
	if b.Len() == 0 {
		return "Sound"
	}
	return b.String()
}
