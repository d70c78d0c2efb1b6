package videos

import (
	"encoding/json"
	"sort"

	"github.com/samber/lo"
)

// VideoSummary is the listing representation of a video.
type VideoSummary struct {
	ID            int64         `json:"id"`
	Width         int           `json:"width"`
	Height        int           `json:"height"`
	Duration      int           `json:"duration"`
	UserName      string        `json:"user_name"`
	VideoFiles    []FileSummary `json:"video_files"`
	VideoPictures []string      `json:"video_pictures"`
}

// FileSummary is a rendition as shown in listings.
type FileSummary struct {
	Link    string `json:"link"`
	Quality string `json:"quality"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// VideoDetail is the single-video representation.
type VideoDetail struct {
	ID            int64       `json:"id"`
	Width         int         `json:"width"`
	Height        int         `json:"height"`
	Duration      int         `json:"duration"`
	User          DetailUser  `json:"user"`
	VideoFiles    FileBuckets `json:"video_files"`
	VideoPictures []string    `json:"video_pictures"`
	Resolution    string      `json:"resolution"`
	URL           string      `json:"url"`
}

// DetailUser is the owner block of a VideoDetail.
type DetailUser struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DetailFile is a rendition as shown in the detail view.
type DetailFile struct {
	Link     string `json:"link"`
	Quality  string `json:"quality"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FileType string `json:"file_type"`
}

// FileBuckets groups detail files by DetailBucket, tallest first.
type FileBuckets struct {
	SD     []DetailFile `json:"sd"`
	HD     []DetailFile `json:"hd"`
	FullHD []DetailFile `json:"full_hd"`
	UHD    []DetailFile `json:"uhd"`
}

// Len is the number of files across all buckets.
func (b FileBuckets) Len() int {
	return len(b.SD) + len(b.HD) + len(b.FullHD) + len(b.UHD)
}

// PageResult is the response of the listing operations. Error results carry
// no items and zero total pages.
type PageResult struct {
	Items      []VideoSummary `json:"items"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
	Error      string         `json:"error,omitempty"`
}

// Failed reports whether the result carries an error.
func (p PageResult) Failed() bool {
	return p.Error != ""
}

func errorPage(message string, page, perPage int) PageResult {
	return PageResult{
		Items:      []VideoSummary{},
		Page:       page,
		PerPage:    perPage,
		TotalPages: 0,
		Error:      message,
	}
}

// DetailResult holds either a video or an error. It marshals as the bare
// VideoDetail or as {"error": ...}, never both.
type DetailResult struct {
	Video *VideoDetail
	Error string
}

// Failed reports whether the result carries an error.
func (d DetailResult) Failed() bool {
	return d.Error != "" || d.Video == nil
}

// NotFound reports whether the lookup found no video.
func (d DetailResult) NotFound() bool {
	return d.Failed() && (d.Error == "" || d.Error == notFoundMessage)
}

// MarshalJSON implements json.Marshaler.
func (d DetailResult) MarshalJSON() ([]byte, error) {
	if d.Error != "" || d.Video == nil {
		msg := d.Error
		if msg == "" {
			msg = notFoundMessage
		}
		return json.Marshal(struct {
			Error string `json:"error"`
		}{Error: msg})
	}
	return json.Marshal(d.Video)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DetailResult) UnmarshalJSON(data []byte) error {
	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Error != "" {
		*d = DetailResult{Error: probe.Error}
		return nil
	}

	var video VideoDetail
	if err := json.Unmarshal(data, &video); err != nil {
		return err
	}
	*d = DetailResult{Video: &video}
	return nil
}

// FormatSummary projects a record into its listing shape. Files keep their
// upstream order.
func FormatSummary(record VideoRecord) VideoSummary {
	return VideoSummary{
		ID:       record.ID,
		Width:    record.Width,
		Height:   record.Height,
		Duration: record.Duration,
		UserName: record.User.Name,
		VideoFiles: lo.Map(record.Files, func(f VideoFileRecord, _ int) FileSummary {
			return FileSummary{Link: f.Link, Quality: f.Quality, Width: f.Width, Height: f.Height}
		}),
		VideoPictures: pictures(record.Pictures),
	}
}

// FormatSummaries formats every record, preserving order.
func FormatSummaries(records []VideoRecord) []VideoSummary {
	return lo.Map(records, func(r VideoRecord, _ int) VideoSummary {
		return FormatSummary(r)
	})
}

// FormatDetail projects a record into its detail shape.
func FormatDetail(record VideoRecord) VideoDetail {
	return VideoDetail{
		ID:            record.ID,
		Width:         record.Width,
		Height:        record.Height,
		Duration:      record.Duration,
		User:          DetailUser{Name: record.User.Name, URL: record.User.URL},
		VideoFiles:    BucketFiles(record.Files),
		VideoPictures: pictures(record.Pictures),
		Resolution:    ResolutionLabel(record.Height),
		URL:           record.URL,
	}
}

// BucketFiles partitions files by DetailBucket. Each bucket is sorted by
// descending height; ties keep upstream order.
func BucketFiles(files []VideoFileRecord) FileBuckets {
	buckets := FileBuckets{
		SD:     []DetailFile{},
		HD:     []DetailFile{},
		FullHD: []DetailFile{},
		UHD:    []DetailFile{},
	}

	for _, f := range files {
		df := DetailFile{Link: f.Link, Quality: f.Quality, Width: f.Width, Height: f.Height, FileType: f.FileType}
		switch DetailBucket(f.Height) {
		case BucketSD:
			buckets.SD = append(buckets.SD, df)
		case BucketHD:
			buckets.HD = append(buckets.HD, df)
		case BucketFullHD:
			buckets.FullHD = append(buckets.FullHD, df)
		default:
			buckets.UHD = append(buckets.UHD, df)
		}
	}

	for _, bucket := range [][]DetailFile{buckets.SD, buckets.HD, buckets.FullHD, buckets.UHD} {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Height > bucket[j].Height
		})
	}

	return buckets
}

func pictures(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
