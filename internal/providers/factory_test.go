package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vidhub/backend/internal/cache"
	"github.com/vidhub/backend/internal/videos"
)

type serviceStub struct {
	videos.Service
}

func TestParseID(t *testing.T) {
	if ParseID("") != Default || ParseID(" PEXELS ") != Pexels {
		t.Fatal("unexpected id normalization")
	}
}

func TestCreateUnsupported(t *testing.T) {
	_, err := NewFactory().Create("vimeo", Deps{})

	var unsupported *UnsupportedProviderError
	if !errors.As(err, &unsupported) || unsupported.ID != "vimeo" {
		t.Fatalf("expected unsupported provider error got %v", err)
	}
	if err.Error() != `unsupported video provider: "vimeo"` {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRegisterCustomProvider(t *testing.T) {
	f := NewFactory()
	f.Register("Stub", func(Deps) (videos.Service, error) { return serviceStub{}, nil })

	if got := fmt.Sprint(f.Supported()); got != "[pexels stub]" {
		t.Fatalf("unexpected supported list %s", got)
	}
	if _, err := f.Create("stub", Deps{}); err != nil {
		t.Fatalf("create stub: %v", err)
	}
}

func TestCreatePexelsRequiresKey(t *testing.T) {
	if _, err := NewFactory().Create(Pexels, Deps{}); err == nil {
		t.Fatal("expected missing api key error")
	}
}

func TestCreatePexelsServesRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"total_results":1,"videos":[{"id":5,"height":1080,"user":{"name":"Ana"}}]}`)
	}))
	defer srv.Close()

	svc, err := NewFactory().Create("", Deps{
		Loader:        cache.NewLoader(cache.NewMemoryStore()),
		PexelsAPIKey:  "key",
		PexelsBaseURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	page := svc.FetchPopular(context.Background(), 1, 10, videos.Options{})
	if page.Failed() || len(page.Items) != 1 || page.Items[0].UserName != "Ana" {
		t.Fatalf("unexpected page: %+v", page)
	}
}
