package publish

import (
	"mime"
	"path"
	"strings"
)

// contentTypes covers every asset class the site ships. mime.TypeByExtension
// depends on the host's mime tables, so the common types are pinned here.
var contentTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript; charset=utf-8",
	".json":  "application/json",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".avif":  "image/avif",
	".ico":   "image/x-icon",
	".mp4":   "video/mp4",
	".webm":  "video/webm",
	".woff2": "font/woff2",
}

// ContentType returns the Content-Type for key by extension.
func ContentType(key string) string {
	ext := strings.ToLower(path.Ext(key))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Cache lifetimes per asset class.
const (
	CacheDocument = "no-cache"
	CacheScript   = "public, max-age=300"
	CacheImage    = "public, max-age=86400"
	CacheVideo    = "public, max-age=604800"
	CacheDefault  = "public, max-age=3600"
)

// CacheControl returns the Cache-Control value for an object of the given
// content type. HTML must revalidate so new deploys show up immediately.
func CacheControl(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "text/html"):
		return CacheDocument
	case strings.HasPrefix(contentType, "application/javascript"):
		return CacheScript
	case strings.HasPrefix(contentType, "image/"):
		return CacheImage
	case strings.HasPrefix(contentType, "video/"):
		return CacheVideo
	default:
		return CacheDefault
	}
}

// objectKey joins the key prefix and a site path.
func objectKey(prefix, sitePath string) string {
	key := strings.TrimPrefix(path.Clean("/"+sitePath), "/")
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
