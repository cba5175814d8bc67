package contenttype

// Content type constants used by storeblocks

const (
	CharsetUtf8Suffix = "; charset=utf-8"

	CSS           = "text/css"
	HTML          = "text/html"
	JS            = "application/javascript"
	JSON          = "application/json"
	MultipartForm = "multipart/form-data"
	WWWForm       = "application/x-www-form-urlencoded"

	CSSUTF8  = CSS + CharsetUtf8Suffix
	HTMLUTF8 = HTML + CharsetUtf8Suffix
	JSUTF8   = JS + CharsetUtf8Suffix
	JSONUTF8 = JSON + CharsetUtf8Suffix
)
