package videos

import (
	"encoding/json"
	"testing"
)

func sampleRecord() VideoRecord {
	return VideoRecord{
		ID:       7,
		Width:    3840,
		Height:   2160,
		Duration: 30,
		User:     UserRecord{Name: "Ana", URL: "https://www.pexels.com/@ana"},
		URL:      "https://www.pexels.com/video/7/",
		Files: []VideoFileRecord{
			{Link: "a", Quality: "sd", Width: 640, Height: 360, FileType: "video/mp4"},
			{Link: "b", Quality: "hd", Width: 1280, Height: 720, FileType: "video/mp4"},
			{Link: "c", Quality: "sd", Width: 854, Height: 480, FileType: "video/mp4"},
			{Link: "d", Quality: "uhd", Width: 3840, Height: 2160, FileType: "video/mp4"},
		},
		Pictures: []string{"p0", "p1"},
	}
}

func TestFormatSummaryKeepsUpstreamFileOrder(t *testing.T) {
	summary := FormatSummary(sampleRecord())

	if summary.UserName != "Ana" || summary.ID != 7 || summary.Duration != 30 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	links := ""
	for _, f := range summary.VideoFiles {
		links += f.Link
	}
	if links != "abcd" {
		t.Fatalf("expected upstream order got %q", links)
	}
}

func TestFormatSummaryJSONShape(t *testing.T) {
	raw, err := json.Marshal(FormatSummary(VideoRecord{ID: 1}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":1,"width":0,"height":0,"duration":0,"user_name":"","video_files":[],"video_pictures":[]}`
	if string(raw) != want {
		t.Fatalf("unexpected json: got %s want %s", raw, want)
	}
}

func TestFormatDetailBucketsFiles(t *testing.T) {
	detail := FormatDetail(sampleRecord())

	if detail.Resolution != "4K" || detail.User.URL != "https://www.pexels.com/@ana" {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if len(detail.VideoFiles.SD) != 2 || detail.VideoFiles.SD[0].Link != "c" || detail.VideoFiles.SD[1].Link != "a" {
		t.Fatalf("expected sd sorted tallest first: %+v", detail.VideoFiles.SD)
	}
	if len(detail.VideoFiles.HD) != 1 || len(detail.VideoFiles.FullHD) != 0 || len(detail.VideoFiles.UHD) != 1 {
		t.Fatalf("unexpected buckets: %+v", detail.VideoFiles)
	}
	if detail.VideoFiles.Len() != 4 {
		t.Fatalf("expected every file bucketed once got %d", detail.VideoFiles.Len())
	}
}

func TestBucketFilesStableForEqualHeights(t *testing.T) {
	buckets := BucketFiles([]VideoFileRecord{
		{Link: "first", Height: 720},
		{Link: "second", Height: 720},
		{Link: "tall", Height: 1080},
	})
	if buckets.HD[0].Link != "first" || buckets.HD[1].Link != "second" {
		t.Fatalf("expected ties to keep upstream order: %+v", buckets.HD)
	}

	raw, err := json.Marshal(BucketFiles(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"sd":[],"hd":[],"full_hd":[],"uhd":[]}` {
		t.Fatalf("unexpected empty buckets: %s", raw)
	}
}

func TestDetailResultJSON(t *testing.T) {
	raw, err := json.Marshal(DetailResult{Error: "Video not found"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"error":"Video not found"}` {
		t.Fatalf("unexpected error json: %s", raw)
	}

	detail := FormatDetail(sampleRecord())
	raw, err = json.Marshal(DetailResult{Video: &detail})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := fields["error"]; ok {
		t.Fatalf("detail must not carry an error key: %s", raw)
	}
	if string(fields["resolution"]) != `"4K"` {
		t.Fatalf("unexpected resolution: %s", fields["resolution"])
	}

	var decoded DetailResult
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Failed() || decoded.Video.ID != 7 {
		t.Fatalf("unexpected decoded result: %+v", decoded)
	}
}

func TestErrorPageShape(t *testing.T) {
	raw, err := json.Marshal(errorPage("Timeout.", 2, 5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"items":[],"page":2,"per_page":5,"total_pages":0,"error":"Timeout."}`
	if string(raw) != want {
		t.Fatalf("unexpected json: got %s want %s", raw, want)
	}
}
