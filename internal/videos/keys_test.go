package videos

import "testing"

func TestBuildListingKey(t *testing.T) {
	cases := []struct {
		name  string
		scope string
		opts  Options
		want  string
	}{
		{name: "no options", scope: "popular", want: "pexels:popular:page=1:per_page=10"},
		{name: "size lowercased", scope: "popular", opts: Options{Size: " FullHD "}, want: "pexels:popular:page=1:per_page=10:size=fullhd"},
		{name: "unknown size dropped", scope: "popular", opts: Options{Size: "8k"}, want: "pexels:popular:page=1:per_page=10"},
		{name: "options sorted", scope: BuildSearchScope("cats"), opts: Options{Size: "4K", Locale: "en-US"}, want: "pexels:search:cats:page=1:per_page=10:locale=en-US:size=4k"},
		{name: "query escaped", scope: BuildSearchScope(" ocean waves "), want: "pexels:search:ocean+waves:page=1:per_page=10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildListingKey("pexels", tc.scope, 1, 10, tc.opts); got != tc.want {
				t.Fatalf("unexpected key: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestBuildListingKeyDistinguishesPaging(t *testing.T) {
	a := BuildListingKey("pexels", "popular", 1, 10, Options{})
	b := BuildListingKey("pexels", "popular", 2, 10, Options{})
	c := BuildListingKey("pexels", "popular", 1, 20, Options{})
	if a == b || a == c || b == c {
		t.Fatalf("expected distinct keys: %q %q %q", a, b, c)
	}
}

func TestBuildDetailKey(t *testing.T) {
	if got := BuildDetailKey("pexels", "123"); got != "pexels:video:123" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := BuildDetailKey("pexels", "a/b"); got != "pexels:video:a%2Fb" {
		t.Fatalf("expected id to be escaped got %q", got)
	}
}
