package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rawbytedev/b39geo"
	"github.com/rawbytedev/b39geo/pkg/compactwire"
	"github.com/rawbytedev/b39geo/pkg/export"
	"github.com/rawbytedev/b39geo/pkg/geodesy"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitCommandError
}

func runEncode(e *env, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("encode")
	rounding := e.cfg.Rounding
	format := e.cfg.Format
	fs.TextVar(&rounding, "rounding", rounding, "nearest, floor or ceil")
	fs.TextVar(&format, "format", format, "output format")
	if err := fs.Parse(positionalNumbers(args)); err != nil {
		return fail(stderr, err)
	}
	if fs.NArg() != 2 {
		return fail(stderr, errors.New("encode needs <lat> <lon>"))
	}
	lat, err := parseCoord("latitude", fs.Arg(0))
	if err != nil {
		return fail(stderr, err)
	}
	lon, err := parseCoord("longitude", fs.Arg(1))
	if err != nil {
		return fail(stderr, err)
	}

	code, err := e.codec.CodeOf(lat, lon, rounding)
	if err != nil {
		return fail(stderr, err)
	}
	phrase, err := e.codec.Words(code)
	if err != nil {
		return fail(stderr, err)
	}
	res := export.Result{Kind: export.Encoded, Words: phrase.Slice(), Lat: lat, Lon: lon, Code: code}
	if err := export.Write(stdout, format, res); err != nil {
		return fail(stderr, err)
	}
	return exitSuccess
}

// positionalNumbers ends flag parsing at the first numeric argument, so a
// negative coordinate such as "-33.8568" is not taken for a flag.
func positionalNumbers(args []string) []string {
	for i, a := range args {
		if a == "--" {
			return args
		}
		if _, err := strconv.ParseFloat(a, 64); err != nil {
			continue
		}
		if !strings.HasPrefix(a, "-") {
			return args
		}
		out := make([]string, 0, len(args)+1)
		out = append(out, args[:i]...)
		out = append(out, "--")
		return append(out, args[i:]...)
	}
	return args
}

func parseCoord(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", name, s, b39geo.ErrInvalidInput)
	}
	return v, nil
}

func runDecode(e *env, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("decode")
	corner := fs.Bool("corner", !e.cfg.UseCenter(), "return the south-west corner instead of the center")
	format := e.cfg.Format
	fs.TextVar(&format, "format", format, "output format")
	if err := fs.Parse(args); err != nil {
		return fail(stderr, err)
	}

	// Accept the phrase as one quoted argument too.
	words := strings.Fields(strings.Join(fs.Args(), " "))
	code, err := e.codec.Code(words)
	if err != nil {
		return fail(stderr, err)
	}
	return writeDecoded(e, code, *corner, format, stdout, stderr)
}

func writeDecoded(e *env, code uint64, corner bool, format export.Format, stdout, stderr io.Writer) int {
	phrase, err := e.codec.Words(code)
	if err != nil {
		return fail(stderr, err)
	}
	c := e.codec.Locate(code, corner)
	res := export.Result{Kind: export.Decoded, Words: phrase.Slice(), Lat: c.Lat, Lon: c.Lon, Code: code}
	if err := export.Write(stdout, format, res); err != nil {
		return fail(stderr, err)
	}
	return exitSuccess
}

type sizeOutput struct {
	b39geo.Size
	Latitude     float64 `json:"atLatitude"`
	WidthMeters  float64 `json:"widthMeters"`
	HeightMeters float64 `json:"heightMeters"`
}

func runSize(e *env, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("size")
	lat := fs.Float64("lat", 0, "latitude at which to measure the cell")
	if err := fs.Parse(args); err != nil {
		return fail(stderr, err)
	}
	if *lat < -90 || *lat > 90 {
		return fail(stderr, fmt.Errorf("latitude %v out of range", *lat))
	}
	size := b39geo.CellSize()
	ext := geodesy.CellExtent(*lat, size.LatDegrees, size.LonDegrees)
	out := sizeOutput{Size: size, Latitude: *lat, WidthMeters: ext.WidthMeters, HeightMeters: ext.HeightMeters}
	if err := json.NewEncoder(stdout).Encode(out); err != nil {
		return fail(stderr, err)
	}
	fmt.Fprintf(stderr, "%s at %g°\n", ext, *lat)
	return exitSuccess
}

func runUnframe(e *env, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("unframe")
	format := e.cfg.Format
	fs.TextVar(&format, "format", format, "output format")
	if err := fs.Parse(args); err != nil {
		return fail(stderr, err)
	}
	if fs.NArg() != 1 {
		return fail(stderr, errors.New("unframe needs one hex argument"))
	}
	data, err := hex.DecodeString(fs.Arg(0))
	if err != nil {
		return fail(stderr, fmt.Errorf("bad hex: %w", err))
	}
	code, err := compactwire.DecodeFrame(data)
	if err != nil {
		return fail(stderr, err)
	}
	if format == export.Text {
		phrase, err := e.codec.Words(code)
		if err != nil {
			return fail(stderr, err)
		}
		fmt.Fprintln(stdout, phrase)
	}
	return writeDecoded(e, code, !e.cfg.UseCenter(), format, stdout, stderr)
}
