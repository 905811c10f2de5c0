package pixiv

import (
	"reflect"
	"testing"
)

func TestRewriteToOriginal(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"master preview",
			"https://i.pximg.net/c/600x1200_90/img-master/img/2024/05/01/12/00/00/118_p0_master1200.jpg",
			"https://i.pximg.net/img-original/img/2024/05/01/12/00/00/118_p0.jpg",
		},
		{
			"custom thumb",
			"https://i.pximg.net/c/250x250_80_a2/custom-thumb/img/2024/05/01/12/00/00/118_p0_custom1200.jpg",
			"https://i.pximg.net/img-original/img/2024/05/01/12/00/00/118_p0.jpg",
		},
		{
			"already original",
			"https://i.pximg.net/img-original/img/2024/05/01/12/00/00/118_p0.png",
			"https://i.pximg.net/img-original/img/2024/05/01/12/00/00/118_p0.png",
		},
		{
			"png master",
			"https://i.pximg.net/c/1200x1200/img-master/img/2023/11/11/11/11/11/9_p3_master1200.png",
			"https://i.pximg.net/img-original/img/2023/11/11/11/11/11/9_p3.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewriteToOriginal(tt.src); got != tt.want {
				t.Errorf("rewriteToOriginal(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    string
		wantErr bool
	}{
		{
			"main h1 preferred",
			`<html><head><title>Other - pixiv</title></head><body><main><h1> Heading </h1></main></body></html>`,
			"Heading",
			false,
		},
		{
			"document title fallback",
			`<html><head><title>My Work - pixiv</title></head><body></body></html>`,
			"My Work",
			false,
		},
		{
			"no title anywhere",
			`<html><body><p>nope</p></body></html>`,
			"",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractTitle(tt.html)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("extractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractImageURLs(t *testing.T) {
	html := `<html><body>
		<img src="https://s.pximg.net/common/logo.png">
		<img src="https://i.pximg.net/c/600x1200_90/img-master/img/2024/01/01/00/00/00/77_p0_master1200.jpg">
		<img data-src="https://i.pximg.net/c/600x1200_90/img-master/img/2024/01/01/00/00/00/77_p1_master1200.jpg">
		<img src="https://i.pximg.net/img-original/img/2024/01/01/00/00/00/77_p0.jpg">
		<img src="https://example.com/banner.jpg">
	</body></html>`

	got, err := extractImageURLs(html)
	if err != nil {
		t.Fatalf("extractImageURLs failed: %v", err)
	}

	// The master thumbnail of p0 and its original form collapse into
	// one entry.
	want := []string{
		"https://i.pximg.net/img-original/img/2024/01/01/00/00/00/77_p0.jpg",
		"https://i.pximg.net/img-original/img/2024/01/01/00/00/00/77_p1.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractImageURLs() = %v, want %v", got, want)
	}
}

func TestExtractImageURLs_NoCandidates(t *testing.T) {
	got, err := extractImageURLs(`<html><body><img src="https://s.pximg.net/logo.png"></body></html>`)
	if err != nil {
		t.Fatalf("extractImageURLs failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}
