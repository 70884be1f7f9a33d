package course

// ContentKind discriminates the lesson content union.
type ContentKind int

const (
	// ContentNone marks a lesson with no renderable content. It never
	// auto-completes; only explicit navigation completes it.
	ContentNone ContentKind = iota
	ContentVideo
	ContentFile
	ContentText
)

// Content is the lesson content variant, decided once at decode time.
// Exactly one of URL or Body is meaningful depending on Kind: URL for
// video and file lessons, Body for text lessons.
type Content struct {
	Kind ContentKind
	URL  string
	Body string
}

// DetectContent picks the content variant from the raw payload fields.
// The first non-empty field wins, in the fixed precedence
// video > file > text.
func DetectContent(videoURL, fileURL, text string) Content {
	switch {
	case videoURL != "":
		return Content{Kind: ContentVideo, URL: videoURL}
	case fileURL != "":
		return Content{Kind: ContentFile, URL: fileURL}
	case text != "":
		return Content{Kind: ContentText, Body: text}
	default:
		return Content{Kind: ContentNone}
	}
}

// String returns the kind name used in payloads and CLI output.
func (k ContentKind) String() string {
	switch k {
	case ContentVideo:
		return "video"
	case ContentFile:
		return "file"
	case ContentText:
		return "text"
	default:
		return "none"
	}
}
