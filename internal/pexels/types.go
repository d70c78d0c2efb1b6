package pexels

import "github.com/vidhub/backend/internal/videos"

type listResponse struct {
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	TotalResults int     `json:"total_results"`
	Videos       []video `json:"videos"`
}

type video struct {
	ID            int64          `json:"id"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	URL           string         `json:"url"`
	Image         string         `json:"image"`
	Duration      int            `json:"duration"`
	User          user           `json:"user"`
	VideoFiles    []videoFile    `json:"video_files"`
	VideoPictures []videoPicture `json:"video_pictures"`
}

type user struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type videoFile struct {
	ID       int64   `json:"id"`
	Quality  string  `json:"quality"`
	FileType string  `json:"file_type"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	FPS      float64 `json:"fps"`
	Link     string  `json:"link"`
}

type videoPicture struct {
	ID      int64  `json:"id"`
	Picture string `json:"picture"`
	Nr      int    `json:"nr"`
}

func (v video) toRecord() videos.VideoRecord {
	files := make([]videos.VideoFileRecord, 0, len(v.VideoFiles))
	for _, f := range v.VideoFiles {
		files = append(files, videos.VideoFileRecord{
			Link:     f.Link,
			Quality:  f.Quality,
			Width:    f.Width,
			Height:   f.Height,
			FileType: f.FileType,
		})
	}

	pictures := make([]string, 0, len(v.VideoPictures))
	for _, p := range v.VideoPictures {
		pictures = append(pictures, p.Picture)
	}

	return videos.VideoRecord{
		ID:       v.ID,
		Width:    v.Width,
		Height:   v.Height,
		Duration: v.Duration,
		User:     videos.UserRecord{Name: v.User.Name, URL: v.User.URL},
		URL:      v.URL,
		Files:    files,
		Pictures: pictures,
	}
}

func toRecords(in []video) []videos.VideoRecord {
	out := make([]videos.VideoRecord, 0, len(in))
	for _, v := range in {
		out = append(out, v.toRecord())
	}
	return out
}

// sizeToken maps a display size onto the search endpoint's size parameter.
func sizeToken(size videos.Size) string {
	switch size {
	case videos.SizeHD:
		return "small"
	case videos.SizeFullHD:
		return "medium"
	case videos.Size4K:
		return "large"
	default:
		return ""
	}
}
