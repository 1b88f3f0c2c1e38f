package port

import "context"

// Extractor fetches a URL and pulls out its readable text content.
type Extractor interface {
	// Extract returns the page title and main text. A page from which no
	// text can be extracted yields ok=false rather than an error.
	Extract(ctx context.Context, url string) (title, text string, ok bool)
}
