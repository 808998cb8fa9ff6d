package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abema/go-mp4"
	"github.com/evanoberholster/imagemeta"
	"github.com/rs/zerolog"
	"github.com/rwcarlsen/goexif/exif"
)

// appleEpochOffset is the number of seconds between 1904-01-01 (the
// QuickTime/ISO-BMFF epoch) and 1970-01-01.
const appleEpochOffset = 2082844800

// exifDateTimeLayout is the textual layout of EXIF DateTimeOriginal.
const exifDateTimeLayout = "2006:01:02 15:04:05"

var errNoDate = errors.New("no capture date in metadata")

// imageDateReader reads the original capture time from an image file.
type imageDateReader interface {
	ImageDate(path string) (time.Time, error)
}

// videoDateReader reads the container creation time from a video file.
type videoDateReader interface {
	VideoDate(path string, fileType FileType) (time.Time, error)
}

// parseExifDateTime parses an EXIF date string as a wall-clock time in the
// local calendar.
func parseExifDateTime(s string) (time.Time, error) {
	s = strings.TrimRight(s, "\x00 ")
	t, err := time.ParseInLocation(exifDateTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed EXIF date %q: %w", s, err)
	}
	return t, nil
}

// exifReader reads DateTimeOriginal as text from JPEG and TIFF-based files.
// The EXIF block is bounds-checked first because goexif sizes its buffers
// from the counts stored in the file.
type exifReader struct{}

func (exifReader) ImageDate(path string) (t time.Time, err error) {
	defer recoverDecode("goexif", &t, &err)

	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	block, size, err := exifBlock(f)
	if err != nil {
		return time.Time{}, err
	}
	if err := checkTIFFBounds(block, size); err != nil {
		return time.Time{}, err
	}

	x, err := exif.Decode(io.NewSectionReader(block, 0, size))
	if err != nil {
		return time.Time{}, fmt.Errorf("decoding EXIF: %w", err)
	}

	tag, err := x.Get(exif.DateTimeOriginal)
	if err != nil {
		return time.Time{}, errNoDate
	}

	value, err := tag.StringVal()
	if err != nil {
		return time.Time{}, fmt.Errorf("reading DateTimeOriginal: %w", err)
	}

	return parseExifDateTime(value)
}

// imagemetaReader covers the containers goexif cannot open, HEIC and most
// raw formats in particular.
type imagemetaReader struct{}

func (imagemetaReader) ImageDate(path string) (t time.Time, err error) {
	defer recoverDecode("imagemeta", &t, &err)

	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	// JPEG and TIFF blocks get the same bounds check as goexif. Other
	// containers go to the decoder as they are.
	if block, size, err := exifBlock(f); err == nil {
		if err := checkTIFFBounds(block, size); err != nil {
			return time.Time{}, err
		}
	} else if errors.Is(err, errMalformedEXIF) {
		return time.Time{}, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return time.Time{}, err
	}

	e, err := imagemeta.Decode(f)
	if err != nil {
		return time.Time{}, fmt.Errorf("decoding image metadata: %w", err)
	}

	dt := e.DateTimeOriginal()
	if dt.IsZero() {
		return time.Time{}, errNoDate
	}

	// Keep the wall clock as recorded; the camera's offset is not applied.
	return time.Date(dt.Year(), dt.Month(), dt.Day(), dt.Hour(), dt.Minute(), dt.Second(), 0, time.Local), nil
}

// imageReaderChain returns the first date any of its readers finds.
type imageReaderChain []imageDateReader

func (c imageReaderChain) ImageDate(path string) (time.Time, error) {
	var errs []error
	for _, r := range c {
		t, err := r.ImageDate(path)
		if err == nil {
			return t, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return time.Time{}, errNoDate
	}
	return time.Time{}, errors.Join(errs...)
}

// mp4Reader reads the movie header creation time of ISO-BMFF containers.
type mp4Reader struct{}

func (mp4Reader) VideoDate(path string, fileType FileType) (t time.Time, err error) {
	defer recoverDecode("go-mp4", &t, &err)
	return extractVideoCreationTime(path, fileType)
}

func extractVideoCreationTime(path string, fileType FileType) (time.Time, error) {
	if !isoBMFFTypes[fileType] {
		return time.Time{}, fmt.Errorf("no container date support for %s files", fileType)
	}

	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	boxes, err := mp4.ExtractBoxWithPayload(f, nil, mp4.BoxPath{mp4.BoxTypeMoov(), mp4.BoxTypeMvhd()})
	if err != nil {
		return time.Time{}, fmt.Errorf("reading mvhd box: %w", err)
	}
	if len(boxes) == 0 {
		return time.Time{}, errNoDate
	}

	mvhd, ok := boxes[0].Payload.(*mp4.Mvhd)
	if !ok {
		return time.Time{}, fmt.Errorf("unexpected mvhd payload %T", boxes[0].Payload)
	}

	var created uint64
	if mvhd.GetVersion() == 0 {
		created = uint64(mvhd.CreationTimeV0)
	} else {
		created = mvhd.CreationTimeV1
	}
	if created == 0 {
		return time.Time{}, errNoDate
	}

	return time.Unix(int64(created)-appleEpochOffset, 0).UTC(), nil
}

// captureDateResolver classifies a record by extension and reads its
// capture date. It never fails: unreadable metadata is "no date".
type captureDateResolver struct {
	images imageDateReader
	videos videoDateReader
	logger zerolog.Logger
}

func newCaptureDateResolver(logger zerolog.Logger) *captureDateResolver {
	return &captureDateResolver{
		images: imageReaderChain{exifReader{}, imagemetaReader{}},
		videos: mp4Reader{},
		logger: logger,
	}
}

func (r *captureDateResolver) resolve(rec Record) (*time.Time, Category) {
	kind, fileType := getMediaTypeInfo(rec.Extension())
	if rec.IsDir {
		kind = KindUnrecognized
	}

	switch kind {
	case KindImage:
		return r.imageDate(rec.SourcePath), categoryForKind(kind)
	case KindVideo:
		return r.videoDate(rec.SourcePath, fileType), categoryForKind(kind)
	case KindUnrecognized:
		r.logger.Debug().Str("file", rec.Name).Msg("unrecognized extension")
	}
	return nil, categoryForKind(KindUnrecognized)
}

// imageDate runs only the image branch; the live-photo resolver uses it on
// sibling stills.
func (r *captureDateResolver) imageDate(path string) *time.Time {
	t, err := r.images.ImageDate(path)
	if err != nil {
		r.logger.Debug().Str("path", path).Err(err).Msg("no image capture date")
		return nil
	}
	return &t
}

func (r *captureDateResolver) videoDate(path string, fileType FileType) *time.Time {
	t, err := r.videos.VideoDate(path, fileType)
	if err != nil {
		r.logger.Debug().Str("path", path).Err(err).Msg("no video creation date")
		return nil
	}
	local := t.In(time.Local)
	return &local
}
