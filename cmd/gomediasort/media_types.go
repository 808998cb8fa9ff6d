package main

import (
	"strings"
)

type FileType string

const (
	// Processed Picture Types
	JPEG FileType = "jpeg"
	PNG  FileType = "png"
	GIF  FileType = "gif"
	BMP  FileType = "bmp"
	TIFF FileType = "tiff"
	WEBP FileType = "webp"
	HEIF FileType = "heif"

	// Raw Picture Types
	RAW FileType = "raw"

	// Video Types
	MP4     FileType = "mp4"
	MOV     FileType = "mov"
	M4V     FileType = "m4v"
	AVI     FileType = "avi"
	MKV     FileType = "mkv"
	THREEGP FileType = "3gp"
	THREEG2 FileType = "3g2"
	MTS     FileType = "mts"
)

// MediaKind is the closed set of media kinds an extension can map to.
type MediaKind int

const (
	KindUnrecognized MediaKind = iota
	KindImage
	KindVideo
)

func (k MediaKind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unrecognized"
	}
}

// Category is a destination root folder.
type Category string

const (
	CategoryImage Category = "image"
	CategoryVideo Category = "video"
	CategoryError Category = "error"
)

// categoryForKind returns the category a file of the given kind is filed
// under before any date or live-photo resolution.
func categoryForKind(k MediaKind) Category {
	switch k {
	case KindImage:
		return CategoryImage
	case KindVideo:
		return CategoryVideo
	default:
		return CategoryError
	}
}

// fileTypes lists every supported file type.
var fileTypes = []struct {
	FileType   FileType
	Kind       MediaKind
	Extensions []string
}{
	{JPEG, KindImage, []string{"jpg", "jpeg", "jpe", "jfif"}},
	{PNG, KindImage, []string{"png"}},
	{GIF, KindImage, []string{"gif"}},
	{BMP, KindImage, []string{"bmp"}},
	{TIFF, KindImage, []string{"tif", "tiff"}},
	{WEBP, KindImage, []string{"webp"}},
	{HEIF, KindImage, []string{"heic", "heif", "heics", "heifs", "hif"}},
	{RAW, KindImage, []string{"arw", "cr2", "cr3", "crw", "dng", "erf", "kdc", "mrw", "nef", "orf", "pef", "raf", "raw", "rw2", "sr2", "srf", "srw", "x3f"}},

	{MOV, KindVideo, []string{"mov", "qt"}},
	{MP4, KindVideo, []string{"mp4"}},
	{M4V, KindVideo, []string{"m4v"}},
	{AVI, KindVideo, []string{"avi"}},
	{MKV, KindVideo, []string{"mkv"}},
	{THREEGP, KindVideo, []string{"3gp"}},
	{THREEG2, KindVideo, []string{"3g2"}},
	{MTS, KindVideo, []string{"mts", "m2ts"}},
}

var fileExtensionToFileType = func() map[string]FileType {
	m := make(map[string]FileType)
	for _, ft := range fileTypes {
		for _, ext := range ft.Extensions {
			m[ext] = ft.FileType
		}
	}
	return m
}()

var fileTypeToKind = func() map[FileType]MediaKind {
	m := make(map[FileType]MediaKind)
	for _, ft := range fileTypes {
		m[ft.FileType] = ft.Kind
	}
	return m
}()

// getMediaTypeInfo maps an extension (without the dot, any case) to its
// media kind and file type. Unknown or empty extensions are unrecognized.
func getMediaTypeInfo(ext string) (MediaKind, FileType) {
	if ext == "" {
		return KindUnrecognized, ""
	}

	fileType, ok := fileExtensionToFileType[strings.ToLower(ext)]
	if !ok {
		return KindUnrecognized, ""
	}

	return fileTypeToKind[fileType], fileType
}

// kindForExtension is getMediaTypeInfo without the file type.
func kindForExtension(ext string) MediaKind {
	kind, _ := getMediaTypeInfo(ext)
	return kind
}

// isoBMFFTypes are the video types whose container carries a moov/mvhd box.
var isoBMFFTypes = map[FileType]bool{
	MP4:     true,
	MOV:     true,
	M4V:     true,
	THREEGP: true,
	THREEG2: true,
}
