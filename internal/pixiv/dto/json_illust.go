package dto

// JSONIllust is the body of /ajax/illust/<id>, reduced to the fields
// this tool needs. The live endpoint returns far more; unknown fields
// are ignored.
type JSONIllust struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	UserID    string `json:"userId"`
	PageCount int    `json:"pageCount"`
}

// JSONPage is one entry of the /ajax/illust/<id>/pages body. Pages
// arrive in display order; Original is the full-quality image URL.
type JSONPage struct {
	URLs struct {
		ThumbMini string `json:"thumb_mini"`
		Small     string `json:"small"`
		Regular   string `json:"regular"`
		Original  string `json:"original"`
	} `json:"urls"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// OriginalURLs extracts the original image URL of each page, preserving
// page order. Pages without an original URL are skipped.
func OriginalURLs(pages []JSONPage) []string {
	urls := make([]string, 0, len(pages))
	for _, p := range pages {
		if p.URLs.Original != "" {
			urls = append(urls, p.URLs.Original)
		}
	}
	return urls
}
