package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// maxIFDs bounds how many directories a TIFF block may chain or point to.
const maxIFDs = 32

var (
	errMalformedEXIF = errors.New("malformed EXIF block")
	errNoEXIF        = errors.New("no EXIF block")
)

// tiffTypeSize is the width in bytes of one value of each TIFF field type.
var tiffTypeSize = map[uint16]int64{
	1:  1, // BYTE
	2:  1, // ASCII
	3:  2, // SHORT
	4:  4, // LONG
	5:  8, // RATIONAL
	6:  1, // SBYTE
	7:  1, // UNDEFINED
	8:  2, // SSHORT
	9:  4, // SLONG
	10: 8, // SRATIONAL
	11: 4, // FLOAT
	12: 8, // DOUBLE
	13: 4, // IFD
}

// exifPointerTags lead to the Exif, GPS and Interoperability directories.
var exifPointerTags = map[uint16]bool{
	0x8769: true,
	0x8825: true,
	0xA005: true,
}

// exifBlock returns the TIFF-structured EXIF data of a JPEG or bare TIFF
// file together with its size. Other containers yield errNoEXIF.
func exifBlock(f *os.File) (io.ReaderAt, int64, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, 0, err
	}

	var head [4]byte
	if _, err := f.ReadAt(head[:], 0); err != nil {
		return nil, 0, fmt.Errorf("%w: file too short", errNoEXIF)
	}

	switch {
	case head[0] == 0xFF && head[1] == 0xD8:
		payload, err := jpegEXIFPayload(f, fi.Size())
		if err != nil {
			return nil, 0, err
		}
		return bytes.NewReader(payload), int64(len(payload)), nil
	case string(head[:]) == "II*\x00" || string(head[:]) == "MM\x00*":
		return f, fi.Size(), nil
	}
	return nil, 0, errNoEXIF
}

// jpegEXIFPayload walks the JPEG segments up to the start of scan and returns
// the TIFF data of the first Exif APP1 segment.
func jpegEXIFPayload(r io.ReaderAt, size int64) ([]byte, error) {
	off := int64(2)
	for off+4 <= size {
		var seg [4]byte
		if _, err := r.ReadAt(seg[:], off); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedEXIF, err)
		}
		if seg[0] != 0xFF {
			return nil, fmt.Errorf("%w: bad marker at %d", errMalformedEXIF, off)
		}

		marker := seg[1]
		switch {
		case marker == 0xFF:
			off++
			continue
		case marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7):
			off += 2
			continue
		case marker == 0xDA || marker == 0xD9:
			return nil, errNoEXIF
		}

		length := int64(binary.BigEndian.Uint16(seg[2:4]))
		if length < 2 || off+2+length > size {
			return nil, fmt.Errorf("%w: segment length %d at %d", errMalformedEXIF, length, off)
		}

		if marker == 0xE1 {
			payload := make([]byte, length-2)
			if _, err := r.ReadAt(payload, off+4); err != nil {
				return nil, fmt.Errorf("%w: %v", errMalformedEXIF, err)
			}
			if bytes.HasPrefix(payload, []byte("Exif\x00\x00")) {
				return payload[6:], nil
			}
		}
		off += 2 + length
	}
	return nil, errNoEXIF
}

// checkTIFFBounds walks every directory of a TIFF block and fails when an
// entry count, value or directory offset points outside the block, a field
// type is unknown, or the directories loop.
func checkTIFFBounds(r io.ReaderAt, size int64) error {
	var hdr [8]byte
	if size < 8 {
		return fmt.Errorf("%w: truncated header", errMalformedEXIF)
	}
	if _, err := r.ReadAt(hdr[:], 0); err != nil {
		return fmt.Errorf("%w: %v", errMalformedEXIF, err)
	}

	var order binary.ByteOrder
	switch string(hdr[:4]) {
	case "II*\x00":
		order = binary.LittleEndian
	case "MM\x00*":
		order = binary.BigEndian
	default:
		return fmt.Errorf("%w: no TIFF header", errMalformedEXIF)
	}

	pending := []int64{int64(order.Uint32(hdr[4:8]))}
	seen := make(map[int64]bool)
	for len(pending) > 0 {
		off := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if seen[off] {
			return fmt.Errorf("%w: directory loop at %d", errMalformedEXIF, off)
		}
		if len(seen) == maxIFDs {
			return fmt.Errorf("%w: more than %d directories", errMalformedEXIF, maxIFDs)
		}
		seen[off] = true

		next, subs, err := checkIFD(r, size, order, off)
		if err != nil {
			return err
		}
		pending = append(pending, subs...)
		if next != 0 {
			pending = append(pending, next)
		}
	}
	return nil
}

func checkIFD(r io.ReaderAt, size int64, order binary.ByteOrder, off int64) (next int64, subIFDs []int64, err error) {
	if off < 8 || off+2 > size {
		return 0, nil, fmt.Errorf("%w: directory offset %d", errMalformedEXIF, off)
	}

	var n [2]byte
	if _, err := r.ReadAt(n[:], off); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", errMalformedEXIF, err)
	}
	count := int64(order.Uint16(n[:]))
	if off+2+count*12+4 > size {
		return 0, nil, fmt.Errorf("%w: %d entries at %d overrun the block", errMalformedEXIF, count, off)
	}

	entries := make([]byte, count*12+4)
	if _, err := r.ReadAt(entries, off+2); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", errMalformedEXIF, err)
	}

	for i := int64(0); i < count; i++ {
		e := entries[i*12 : i*12+12]
		tag := order.Uint16(e[0:2])
		typ := order.Uint16(e[2:4])
		width, ok := tiffTypeSize[typ]
		if !ok {
			return 0, nil, fmt.Errorf("%w: tag %#04x has unknown type %d", errMalformedEXIF, tag, typ)
		}

		valueOffset := int64(order.Uint32(e[8:12]))
		if length := int64(order.Uint32(e[4:8])) * width; length > 4 && valueOffset+length > size {
			return 0, nil, fmt.Errorf("%w: tag %#04x value of %d bytes overruns the block", errMalformedEXIF, tag, length)
		}
		if exifPointerTags[tag] {
			subIFDs = append(subIFDs, valueOffset)
		}
	}

	return int64(order.Uint32(entries[count*12:])), subIFDs, nil
}

// recoverDecode turns a panic inside a metadata decoder into an error.
func recoverDecode(what string, t *time.Time, err *error) {
	if r := recover(); r != nil {
		*t = time.Time{}
		*err = fmt.Errorf("%s: decoder panic: %v", what, r)
	}
}
