// Package pgm reads and writes single-channel rasters in the netpbm
// grayscale formats exchanged with the sensor tooling.
//
// Input follows a fixed contract: the header is exactly the bytes
// "P5\n<cols> <rows>\n255\n" for the configured dimensions (15 bytes for
// 160x120), followed by rows*cols samples. The header is skipped by length,
// never parsed, but its bytes are checked so a different image size fails
// loudly instead of shifting every pixel.
package pgm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"otsu-labeler/internal/raster"
)

const MaxVal = 255

type Format int

const (
	Binary Format = iota // P5
	ASCII                // P2
)

func (f Format) String() string {
	if f == ASCII {
		return "ascii"
	}
	return "binary"
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binary", "p5", "":
		return Binary, nil
	case "ascii", "p2":
		return ASCII, nil
	default:
		return Binary, fmt.Errorf("unknown pgm format: %q", s)
	}
}

func magic(f Format) string {
	if f == ASCII {
		return "P2"
	}
	return "P5"
}

// Header returns the exact header bytes for dims.
func Header(dims raster.Dimensions, f Format) []byte {
	return []byte(fmt.Sprintf("%s\n%d %d\n%d\n", magic(f), dims.Cols, dims.Rows, MaxVal))
}

// HeaderSize is the number of bytes skipped before pixel data.
func HeaderSize(dims raster.Dimensions) int {
	return len(Header(dims, Binary))
}

// Decode reads a binary (P5) raster of the given dimensions.
func Decode(r io.Reader, dims raster.Dimensions) (*raster.Raster, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	want := Header(dims, Binary)
	got := make([]byte, len(want))
	if _, err := io.ReadFull(r, got); err != nil {
		return nil, fmt.Errorf("%w: reading %d header bytes: %v", raster.ErrDimensionMismatch, len(want), err)
	}
	if !bytes.Equal(got, want) {
		return nil, fmt.Errorf("%w: header %q, expected %q", raster.ErrDimensionMismatch, got, want)
	}

	pix := make([]uint8, dims.Area())
	n, err := io.ReadFull(r, pix)
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %d of %d samples present", raster.ErrDimensionMismatch, n, len(pix))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}

	return raster.FromPix(dims, pix)
}

// Encode writes r with a header matching its own dimensions.
func Encode(w io.Writer, r *raster.Raster, f Format) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(Header(r.Dims(), f)); err != nil {
		return err
	}

	switch f {
	case ASCII:
		if err := writeASCII(bw, r); err != nil {
			return err
		}
	default:
		if _, err := bw.Write(r.Pix); err != nil {
			return err
		}
	}
	return bw.Flush()
}

const asciiPerLine = 12

func writeASCII(w *bufio.Writer, r *raster.Raster) error {
	for i, p := range r.Pix {
		sep := byte(' ')
		if (i+1)%asciiPerLine == 0 || i == len(r.Pix)-1 {
			sep = '\n'
		}
		if _, err := w.WriteString(strconv.Itoa(int(p))); err != nil {
			return err
		}
		if err := w.WriteByte(sep); err != nil {
			return err
		}
	}
	return nil
}
