package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vidhub/backend/internal/videos"
)

type videoServiceStub struct {
	page   videos.PageResult
	detail videos.DetailResult

	calledPopular bool
	query         string
	gotPage       int
	gotPerPage    int
	gotOpts       videos.Options
	gotID         string
}

func (s *videoServiceStub) FetchPopular(_ context.Context, page, perPage int, opts videos.Options) videos.PageResult {
	s.calledPopular = true
	s.gotPage, s.gotPerPage, s.gotOpts = page, perPage, opts
	return s.page
}

func (s *videoServiceStub) Search(_ context.Context, query string, page, perPage int, opts videos.Options) videos.PageResult {
	s.query = query
	s.gotPage, s.gotPerPage, s.gotOpts = page, perPage, opts
	return s.page
}

func (s *videoServiceStub) FetchByID(_ context.Context, id string) videos.DetailResult {
	s.gotID = id
	return s.detail
}

func serve(t *testing.T, svc VideoService, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	RegisterRoutes(mux, Dependencies{Videos: svc, APIKey: "backend-key"})

	req.Header.Set("Authorization", "backend-key")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestVideoHandlerListPopular(t *testing.T) {
	svc := &videoServiceStub{page: videos.PageResult{Items: []videos.VideoSummary{{ID: 1}}, Page: 1, PerPage: 10, TotalPages: 1}}

	rec := serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/v1/videos?query=%20%20&page=abc&per_page=-4&size=4K", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
	}
	if !svc.calledPopular || svc.gotPage != 1 || svc.gotPerPage != 10 || svc.gotOpts.Size != "4K" {
		t.Fatalf("unexpected service call: %+v", svc)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"items", "page", "per_page", "total_pages"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("missing %s in %s", key, rec.Body.String())
		}
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("unexpected error key in %s", rec.Body.String())
	}
}

func TestVideoHandlerListSearch(t *testing.T) {
	svc := &videoServiceStub{page: videos.PageResult{Items: []videos.VideoSummary{}, Page: 2, PerPage: 5}}

	rec := serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/v1/videos?query=ocean&page=2&per_page=5&locale=en-US", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d", rec.Code)
	}
	if svc.calledPopular || svc.query != "ocean" || svc.gotPage != 2 || svc.gotPerPage != 5 || svc.gotOpts.Locale != "en-US" {
		t.Fatalf("unexpected service call: %+v", svc)
	}
}

func TestVideoHandlerListError(t *testing.T) {
	svc := &videoServiceStub{page: videos.PageResult{Items: []videos.VideoSummary{}, Page: 1, PerPage: 10, Error: "Timeout."}}

	rec := serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got %d", rec.Code)
	}
	want := `{"items":[],"page":1,"per_page":10,"total_pages":0,"error":"Timeout."}` + "\n"
	if rec.Body.String() != want {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestVideoHandlerShow(t *testing.T) {
	detail := videos.VideoDetail{ID: 42, Resolution: "HD"}
	svc := &videoServiceStub{detail: videos.DetailResult{Video: &detail}}

	rec := serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/v1/videos/42", nil))

	if rec.Code != http.StatusOK || svc.gotID != "42" {
		t.Fatalf("unexpected response: %d id=%q", rec.Code, svc.gotID)
	}
	var body videos.VideoDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ID != 42 || body.Resolution != "HD" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestVideoHandlerShowStatuses(t *testing.T) {
	cases := []struct {
		name   string
		result videos.DetailResult
		status int
		body   string
	}{
		{name: "not found", result: videos.DetailResult{Error: "Video not found"}, status: http.StatusNotFound, body: `{"error":"Video not found"}`},
		{name: "upstream failure", result: videos.DetailResult{Error: "Connection failed."}, status: http.StatusInternalServerError, body: `{"error":"Connection failed."}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, &videoServiceStub{detail: tc.result}, httptest.NewRequest(http.MethodGet, "/api/v1/videos/7", nil))
			if rec.Code != tc.status {
				t.Fatalf("unexpected status: got %d want %d", rec.Code, tc.status)
			}
			if rec.Body.String() != tc.body+"\n" {
				t.Fatalf("unexpected body: %s", rec.Body.String())
			}
		})
	}
}

func TestPositiveInt(t *testing.T) {
	cases := map[string]int{"": 10, "0": 10, "-1": 10, "x": 10, " 3 ": 3, "25": 25}
	for in, want := range cases {
		if got := positiveInt(in, 10); got != want {
			t.Fatalf("positiveInt(%q) = %d want %d", in, got, want)
		}
	}
}
