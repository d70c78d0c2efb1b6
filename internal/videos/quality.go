package videos

import "strings"

// Bucket is the quality tier a file is grouped under in the detail view.
type Bucket string

const (
	BucketSD     Bucket = "sd"
	BucketHD     Bucket = "hd"
	BucketFullHD Bucket = "full_hd"
	BucketUHD    Bucket = "uhd"
)

// DetailBucket maps a file height to its detail-view bucket.
func DetailBucket(height int) Bucket {
	switch {
	case height <= 480:
		return BucketSD
	case height <= 720:
		return BucketHD
	case height <= 1080:
		return BucketFullHD
	default:
		return BucketUHD
	}
}

// ResolutionLabel maps a video height to the label shown in listings and the
// detail view.
func ResolutionLabel(height int) string {
	switch {
	case height >= 2160:
		return "4K"
	case height >= 1080:
		return "FullHD"
	case height >= 720:
		return "HD"
	default:
		return "SD"
	}
}

// Size is a caller supplied size filter.
type Size int

const (
	// SizeAny disables size filtering.
	SizeAny Size = iota
	SizeHD
	SizeFullHD
	Size4K
)

// ParseSize translates a display token ("HD", "FullHD", "4K") into a Size.
// Matching ignores case and surrounding whitespace; anything else is SizeAny.
func ParseSize(token string) Size {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "hd":
		return SizeHD
	case "fullhd":
		return SizeFullHD
	case "4k":
		return Size4K
	default:
		return SizeAny
	}
}

// Contains reports whether a video of the given height passes the filter.
// Its ranges are half-open and do not match ResolutionLabel.
func (s Size) Contains(height int) bool {
	switch s {
	case SizeHD:
		return height >= 720 && height < 1080
	case SizeFullHD:
		return height >= 1080 && height < 2160
	case Size4K:
		return height >= 2160
	default:
		return true
	}
}

// String returns the display token for the size, or "" for SizeAny.
func (s Size) String() string {
	switch s {
	case SizeHD:
		return "HD"
	case SizeFullHD:
		return "FullHD"
	case Size4K:
		return "4K"
	default:
		return ""
	}
}
