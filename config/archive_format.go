package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

type ArchiveFormat string

const (
	AF_TAR     ArchiveFormat = "tar"
	AF_TARGZ   ArchiveFormat = "targz"
	AF_TARBZ2  ArchiveFormat = "tarbz2"
	AF_TARXZ   ArchiveFormat = "tarxz"
	AF_TARZSTD ArchiveFormat = "tarzstd"
	AF_TARLZ4  ArchiveFormat = "tarlz4"
	AF_ZIP     ArchiveFormat = "zip"
)

var archiveFormats = []ArchiveFormat{AF_TAR, AF_TARGZ, AF_TARBZ2, AF_TARXZ, AF_TARZSTD, AF_TARLZ4, AF_ZIP}

// SupportedArchiveFormats returns every format in a stable order.
func SupportedArchiveFormats() []ArchiveFormat {
	return append([]ArchiveFormat(nil), archiveFormats...)
}

func (archiveFormat ArchiveFormat) String() string {
	return string(archiveFormat)
}

// Suffix is the file name extension of archives in this format.
func (archiveFormat ArchiveFormat) Suffix() string {
	switch archiveFormat {
	case AF_TAR:
		return ".tar"
	case AF_TARGZ:
		return ".tar.gz"
	case AF_TARBZ2:
		return ".tar.bz2"
	case AF_TARXZ:
		return ".tar.xz"
	case AF_TARZSTD:
		return ".tar.zst"
	case AF_TARLZ4:
		return ".tar.lz4"
	case AF_ZIP:
		return ".zip"
	default:
		return ""
	}
}

// Container names the container writer: "tar" or "zip".
func (archiveFormat ArchiveFormat) Container() string {
	if archiveFormat == AF_ZIP {
		return "zip"
	}
	return "tar"
}

// Codec names the compression sink wrapped around the container.
func (archiveFormat ArchiveFormat) Codec() string {
	switch archiveFormat {
	case AF_TARGZ:
		return "gzip"
	case AF_TARBZ2:
		return "bzip2"
	case AF_TARXZ:
		return "xz"
	case AF_TARZSTD:
		return "zstd"
	case AF_TARLZ4:
		return "lz4"
	default:
		return "none"
	}
}

func ParseArchiveFormat(archiveFormatStr string) (ArchiveFormat, error) {
	a := ArchiveFormat(strings.ToLower(strings.TrimSpace(archiveFormatStr)))
	for _, f := range archiveFormats {
		if f == a {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid archive format: %s. supported archive formats: %s",
		archiveFormatStr, joinFormats(archiveFormats))
}

// ParseArchiveFormats parses a comma separated list, dropping duplicates.
func ParseArchiveFormats(s string) ([]ArchiveFormat, error) {
	var formats []ArchiveFormat
	seen := map[ArchiveFormat]bool{}
	for part := range strings.SplitSeq(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseArchiveFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no archive format provided")
	}
	return formats, nil
}

func (archiveFormat *ArchiveFormat) UnmarshalJSON(data []byte) error {
	var maybeArchiveFormat string
	err := json.Unmarshal(data, &maybeArchiveFormat)
	if err != nil {
		return err
	}
	t, err := ParseArchiveFormat(maybeArchiveFormat)
	if err != nil {
		return fmt.Errorf("unknown archive_format: %s. supported archive formats: %s",
			maybeArchiveFormat, joinFormats(archiveFormats))
	}
	*archiveFormat = t
	return nil
}

func joinFormats(formats []ArchiveFormat) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
