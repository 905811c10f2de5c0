package pixiv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	httpclient "github.com/handiism/pixiv-downloader/internal/http"
)

func newTestResolver(t *testing.T, handler http.Handler) (*Resolver, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	r := NewResolver(httpclient.NewClient(""))
	r.BaseURL = srv.URL
	return r, srv
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantKind Kind
		wantID   string
		wantErr  bool
	}{
		{"artwork", "https://www.pixiv.net/artworks/129000000", KindArtwork, "129000000", false},
		{"artwork with lang prefix", "https://www.pixiv.net/en/artworks/42", KindArtwork, "42", false},
		{"user", "https://www.pixiv.net/users/1234567", KindUser, "1234567", false},
		{"user with lang prefix", "https://www.pixiv.net/en/users/7", KindUser, "7", false},
		{"unrelated", "https://example.com/gallery/1", 0, "", true},
		{"artwork without id", "https://www.pixiv.net/artworks/", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, id, err := Classify(tt.url)
			if tt.wantErr {
				if !errors.Is(err, ErrUnrecognizedURL) {
					t.Fatalf("err = %v, want ErrUnrecognizedURL", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != tt.wantKind || id != tt.wantID {
				t.Errorf("Classify() = (%v, %q), want (%v, %q)", kind, id, tt.wantKind, tt.wantID)
			}
		})
	}
}

func TestResolver_Artwork_ViaAPI(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ajax/illust/123", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":false,"message":"","body":{"id":"123","title":"Three Pages","pageCount":3}}`)
	})
	mux.HandleFunc("/ajax/illust/123/pages", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":false,"message":"","body":[
			{"urls":{"original":"https://i.pximg.net/img-original/img/x_p0.png"}},
			{"urls":{"original":"https://i.pximg.net/img-original/img/x_p1.png"}},
			{"urls":{"original":"https://i.pximg.net/img-original/img/x_p2.png"}}
		]}`)
	})

	r, _ := newTestResolver(t, mux)

	art, err := r.Artwork(context.Background(), "123")
	if err != nil {
		t.Fatalf("Artwork failed: %v", err)
	}

	if art.Title != "Three Pages" {
		t.Errorf("Title = %q, want %q", art.Title, "Three Pages")
	}
	if len(art.Pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(art.Pages))
	}
	for i, page := range art.Pages {
		want := fmt.Sprintf("https://i.pximg.net/img-original/img/x_p%d.png", i)
		if page.URL != want {
			t.Errorf("Pages[%d].URL = %q, want %q", i, page.URL, want)
		}
	}
}

func TestResolver_Artwork_FallsBackToHTML(t *testing.T) {
	const page = `<html>
	<head><title>Fallback Title - pixiv</title></head>
	<body><main><h1>Fallback Title</h1>
		<img src="https://i.pximg.net/c/600x1200_90/img-master/img/2024/01/01/00/00/00/55_p0_master1200.jpg">
		<img data-src="https://i.pximg.net/c/600x1200_90/img-master/img/2024/01/01/00/00/00/55_p1_master1200.jpg">
	</main></body></html>`

	loginPage := `<!DOCTYPE html><html><body>Please log in</body></html>`

	mux := http.NewServeMux()
	mux.HandleFunc("/ajax/illust/55", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, loginPage)
	})
	mux.HandleFunc("/ajax/illust/55/pages", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, loginPage)
	})
	mux.HandleFunc("/artworks/55", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	})

	r, _ := newTestResolver(t, mux)

	art, err := r.Artwork(context.Background(), "55")
	if err != nil {
		t.Fatalf("Artwork failed: %v", err)
	}

	if art.Title != "Fallback Title" {
		t.Errorf("Title = %q, want %q", art.Title, "Fallback Title")
	}
	want := []string{
		"https://i.pximg.net/img-original/img/2024/01/01/00/00/00/55_p0.jpg",
		"https://i.pximg.net/img-original/img/2024/01/01/00/00/00/55_p1.jpg",
	}
	var got []string
	for _, p := range art.Pages {
		got = append(got, p.URL)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fallback URLs = %v, want %v", got, want)
	}
}

func TestResolver_Artwork_BothSourcesFail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<!DOCTYPE html><html><body>nothing here</body></html>`)
	})

	r, _ := newTestResolver(t, mux)

	_, err := r.Artwork(context.Background(), "999")
	if !errors.Is(err, ErrNoImages) {
		t.Errorf("err = %v, want ErrNoImages", err)
	}
}

func TestResolver_Artwork_MissingTitleStillDownloads(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ajax/illust/77", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/ajax/illust/77/pages", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":false,"message":"","body":[{"urls":{"original":"https://i.pximg.net/img-original/img/y_p0.jpg"}}]}`)
	})
	mux.HandleFunc("/artworks/77", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	r, _ := newTestResolver(t, mux)

	art, err := r.Artwork(context.Background(), "77")
	if err != nil {
		t.Fatalf("Artwork failed: %v", err)
	}
	if art.Title != "Untitled" {
		t.Errorf("Title = %q, want %q", art.Title, "Untitled")
	}
	if len(art.Pages) != 1 {
		t.Errorf("got %d pages, want 1", len(art.Pages))
	}
}

func TestResolver_Gallery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ajax/user/42/profile/all", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":false,"message":"","body":{"illusts":{"100":null,"300":null},"manga":{"200":null}}}`)
	})

	r, _ := newTestResolver(t, mux)

	g, err := r.Gallery(context.Background(), "42")
	if err != nil {
		t.Fatalf("Gallery failed: %v", err)
	}

	want := []string{"300", "200", "100"}
	if !reflect.DeepEqual(g.ArtworkIDs, want) {
		t.Errorf("ArtworkIDs = %v, want %v", g.ArtworkIDs, want)
	}
}

func TestResolver_Gallery_HTMLResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<!DOCTYPE html><html><body>CAPTCHA</body></html>`)
	})

	r, _ := newTestResolver(t, mux)

	if _, err := r.Gallery(context.Background(), "42"); err == nil {
		t.Error("expected error for HTML profile response")
	}
}
