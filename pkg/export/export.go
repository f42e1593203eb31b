// Package export renders encode/decode results for the command line.
package export

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/rawbytedev/b39geo/pkg/compactwire"
	"gopkg.in/yaml.v3"
)

type Format uint8

const (
	Text Format = iota
	JSON
	YAML
	CBOR
	Frame
)

var formatNames = [...]string{"text", "json", "yaml", "cbor", "frame"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Text, nil
	}
	for i, name := range formatNames {
		if s == name {
			return Format(i), nil
		}
	}
	return Text, fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(formatNames[:], ", "))
}

func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Format) UnmarshalText(b []byte) error {
	v, err := ParseFormat(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Kind says which operation produced a Result.
type Kind uint8

const (
	Encoded Kind = iota
	Decoded
)

// Result is one encoded or decoded location. Code is the 44-bit cell code.
type Result struct {
	Kind  Kind     `json:"-" yaml:"-" cbor:"-"`
	Words []string `json:"words" yaml:"words" cbor:"1,keyasint"`
	Lat   float64  `json:"lat" yaml:"lat" cbor:"2,keyasint"`
	Lon   float64  `json:"lon" yaml:"lon" cbor:"3,keyasint"`
	Code  uint64   `json:"code" yaml:"code" cbor:"4,keyasint"`
}

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}
}

// EncodeCBOR uses core deterministic encoding with integer map keys.
func EncodeCBOR(r Result) ([]byte, error) {
	return encMode.Marshal(r)
}

func DecodeCBOR(data []byte) (Result, error) {
	var r Result
	if err := cbor.Unmarshal(data, &r); err != nil {
		return Result{}, err
	}
	return r, nil
}

type coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Write renders r to w followed by a newline.
func Write(w io.Writer, f Format, r Result) error {
	switch f {
	case Text:
		if r.Kind == Decoded {
			b, err := json.Marshal(coord{r.Lat, r.Lon})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "%s\n", b)
			return err
		}
		_, err := fmt.Fprintln(w, strings.Join(r.Words, " "))
		return err
	case JSON:
		return json.NewEncoder(w).Encode(r)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case CBOR:
		b, err := EncodeCBOR(r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, hex.EncodeToString(b))
		return err
	case Frame:
		b, err := compactwire.EncodeFrame(r.Code)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, hex.EncodeToString(b))
		return err
	}
	return fmt.Errorf("unsupported format %v", f)
}
