// Package b39geo encodes a latitude/longitude as four BIP-39 words and
// decodes such phrases back into a coordinate.
//
// Each axis is quantized to 22 bits, the two grid indices are interleaved
// into a 44-bit Morton code, and the code is cut into four 11-bit word
// indices. One cell is 180/4194303 degrees of latitude by 360/4194303
// degrees of longitude, a few metres at the equator.
//
// Decoding accepts the words case-insensitively, and also accepts unique
// four-letter prefixes and single-character typos. Ambiguous input is an
// error, never a guess.
package b39geo

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/rawbytedev/b39geo/internal/common"
	"github.com/rawbytedev/b39geo/pkg/morton"
	"github.com/rawbytedev/b39geo/pkg/quantize"
	"github.com/rawbytedev/b39geo/pkg/resolve"
	"github.com/rawbytedev/b39geo/pkg/wordlist"
)

// Errors returned by the codec; compare with errors.Is.
var (
	ErrInvalidInput           = quantize.ErrInvalidInput
	ErrExactlyFourWords       = errors.New("expected exactly 4 words")
	ErrUnknownOrAmbiguousWord = resolve.ErrUnknownOrAmbiguousWord
	ErrBitWidth               = common.ErrBitWidth
)

// Rounding controls quantization on encode.
type Rounding = quantize.Rounding

const (
	Nearest = quantize.Nearest
	Floor   = quantize.Floor
	Ceil    = quantize.Ceil
)

// Coordinate is a point in decimal degrees, WGS84 latitude then longitude.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Phrase is a four-word mnemonic; word 0 carries the top 11 bits.
type Phrase [common.Words]string

// String joins the words with single spaces.
func (p Phrase) String() string { return strings.Join(p[:], " ") }

// Slice returns the words as a fresh slice.
func (p Phrase) Slice() []string { return append([]string(nil), p[:]...) }

// Size is the angular size of one quantization cell.
type Size struct {
	LatDegrees float64 `json:"latDegrees" yaml:"latDegrees"`
	LonDegrees float64 `json:"lonDegrees" yaml:"lonDegrees"`
}

// EncodeOptions tunes Encode. The zero value rounds to the nearest cell.
type EncodeOptions struct {
	Rounding Rounding
}

// DecodeOptions tunes Decode. The zero value returns the cell center.
type DecodeOptions struct {
	// Corner returns the south-west corner of the cell instead of its center.
	Corner bool
}

// Options configures a Codec built with New.
type Options struct {
	Wordlist *wordlist.Wordlist // nil selects BIP-39 English
	Logger   *slog.Logger       // nil discards
}

// Codec is immutable after New and safe for concurrent use.
type Codec struct {
	words    *wordlist.Wordlist
	resolver *resolve.Resolver
	log      *slog.Logger
}

// New returns a Codec for opts, filling in the English list and a discard
// logger where opts leaves them nil.
func New(opts Options) *Codec {
	wl := opts.Wordlist
	if wl == nil {
		wl = wordlist.English()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Codec{words: wl, resolver: resolve.New(wl), log: log}
}

var defaultCodec = sync.OnceValue(func() *Codec { return New(Options{}) })

// Default returns the shared codec over the BIP-39 English list.
func Default() *Codec { return defaultCodec() }

// Wordlist returns the list the codec encodes with.
func (c *Codec) Wordlist() *wordlist.Wordlist { return c.words }

// Grid quantizes a coordinate to its (x=lon, y=lat) grid indices.
func (c *Codec) Grid(lat, lon float64, r Rounding) (x, y uint32, err error) {
	if y, err = quantize.Latitude.Forward(lat, r); err != nil {
		return 0, 0, fmt.Errorf("latitude: %w", err)
	}
	if x, err = quantize.Longitude.Forward(lon, r); err != nil {
		return 0, 0, fmt.Errorf("longitude: %w", err)
	}
	return x, y, nil
}

// CodeOf returns the 44-bit code of the cell containing (lat, lon).
func (c *Codec) CodeOf(lat, lon float64, r Rounding) (uint64, error) {
	x, y, err := c.Grid(lat, lon, r)
	if err != nil {
		return 0, err
	}
	return morton.Interleave(x, y)
}

// Encode returns the phrase for (lat, lon).
func (c *Codec) Encode(lat, lon float64, opts ...EncodeOptions) (Phrase, error) {
	var o EncodeOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	code, err := c.CodeOf(lat, lon, o.Rounding)
	if err != nil {
		return Phrase{}, err
	}
	return c.Words(code)
}

// Words maps a 44-bit code to its phrase.
func (c *Codec) Words(code uint64) (Phrase, error) {
	var p Phrase
	idx, err := Pack(code)
	if err != nil {
		return p, err
	}
	for i, v := range idx {
		p[i] = c.words.Word(int(v))
	}
	return p, nil
}

// Code resolves four tokens and returns the code they spell.
func (c *Codec) Code(tokens []string) (uint64, error) {
	if len(tokens) != common.Words {
		return 0, fmt.Errorf("%w, got %d", ErrExactlyFourWords, len(tokens))
	}
	var idx [common.Words]uint16
	for i, tok := range tokens {
		m, err := c.resolver.Match(tok)
		if err != nil {
			return 0, fmt.Errorf("word %d: %w", i+1, err)
		}
		if m.Stage != resolve.StageExact {
			c.log.Debug("corrected word",
				slog.Int("position", i+1),
				slog.String("token", tok),
				slog.String("word", m.Word),
				slog.String("stage", m.Stage.String()))
		}
		idx[i] = uint16(m.Index)
	}
	return Unpack(idx)
}

// Locate returns the coordinate of the cell identified by code.
func (c *Codec) Locate(code uint64, corner bool) Coordinate {
	x, y := morton.Deinterleave(code)
	lat := quantize.Latitude.Inverse(y, !corner)
	lon := quantize.Longitude.Inverse(x, !corner)
	return Coordinate{
		Lat: common.Clamp(lat, quantize.Latitude.Min, quantize.Latitude.Max),
		Lon: common.Clamp(lon, quantize.Longitude.Min, quantize.Longitude.Max),
	}
}

// Decode resolves four words and returns the cell center they denote.
func (c *Codec) Decode(words []string, opts ...DecodeOptions) (Coordinate, error) {
	var o DecodeOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	code, err := c.Code(words)
	if err != nil {
		return Coordinate{}, err
	}
	return c.Locate(code, o.Corner), nil
}

// TryParse decodes whitespace-separated words, reporting failure as false.
func (c *Codec) TryParse(text string) (Coordinate, bool) {
	coord, err := c.Decode(strings.Fields(text))
	if err != nil {
		c.log.Debug("parse failed", slog.String("text", text), slog.Any("err", err))
		return Coordinate{}, false
	}
	return coord, true
}

// Encode returns the phrase for (lat, lon) using the Default codec.
func Encode(lat, lon float64, opts ...EncodeOptions) (Phrase, error) {
	return Default().Encode(lat, lon, opts...)
}

// Decode resolves four words to a coordinate using the Default codec.
func Decode(words []string, opts ...DecodeOptions) (Coordinate, error) {
	return Default().Decode(words, opts...)
}

// TryParse decodes free text using the Default codec.
func TryParse(text string) (Coordinate, bool) {
	return Default().TryParse(text)
}

// CellSize returns the fixed cell dimensions in degrees.
func CellSize() Size {
	return Size{
		LatDegrees: quantize.Latitude.Step(),
		LonDegrees: quantize.Longitude.Step(),
	}
}
