package report

import (
	"fmt"
	"strings"
)

type ContentType string

const (
	ContentTypeText ContentType = "text/plain"
	ContentTypeXML  ContentType = "application/xml"
	ContentTypeHTML ContentType = "text/html"
	ContentTypeCSV  ContentType = "text/csv"
	ContentTypeTSV  ContentType = "text/tab-separated-values"
	ContentTypeCSS  ContentType = "text/css"
	ContentTypeURI  ContentType = "text/uri-list"
	ContentTypeSVG  ContentType = "image/svg+xml"
	ContentTypePNG  ContentType = "image/png"
	ContentTypeJPEG ContentType = "image/jpeg"
	ContentTypeGIF  ContentType = "image/gif"
	ContentTypeJSON ContentType = "application/json"
	ContentTypeYAML ContentType = "application/yaml"
	ContentTypeZIP  ContentType = "application/zip"
	ContentTypeWEBM ContentType = "video/webm"
	ContentTypeMP4  ContentType = "video/mp4"
)

// DefaultExtension is used for content types missing from the table.
const DefaultExtension = "attach"

var extensions = map[ContentType]string{
	ContentTypeText: "txt",
	ContentTypeXML:  "xml",
	ContentTypeHTML: "html",
	ContentTypeCSV:  "csv",
	ContentTypeTSV:  "tsv",
	ContentTypeCSS:  "css",
	ContentTypeURI:  "uri",
	ContentTypeSVG:  "svg",
	ContentTypePNG:  "png",
	ContentTypeJPEG: "jpg",
	ContentTypeGIF:  "gif",
	ContentTypeJSON: "json",
	ContentTypeYAML: "yaml",
	ContentTypeZIP:  "zip",
	ContentTypeWEBM: "webm",
	ContentTypeMP4:  "mp4",
}

// AttachmentOptions describes how an attachment blob is typed and named.
// A non-empty FileExtension overrides the content type lookup.
type AttachmentOptions struct {
	ContentType   ContentType
	FileExtension string
}

// AttachmentSpec is accepted wherever either a bare ContentType or full
// AttachmentOptions may be given.
type AttachmentSpec interface {
	AttachmentOptions() AttachmentOptions
}

func (c ContentType) AttachmentOptions() AttachmentOptions {
	return AttachmentOptions{ContentType: c}
}

func (o AttachmentOptions) AttachmentOptions() AttachmentOptions {
	return o
}

// Normalize strips media type parameters and case so that
// "Text/Plain; charset=utf-8" resolves like "text/plain".
func (c ContentType) Normalize() ContentType {
	s := string(c)
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return ContentType(strings.ToLower(strings.TrimSpace(s)))
}

// Extension resolves the file extension for an attachment. It never fails:
// unknown or malformed content types map to DefaultExtension.
func Extension(opts AttachmentOptions) string {
	if ext := strings.TrimPrefix(strings.TrimSpace(opts.FileExtension), "."); ext != "" {
		return ext
	}
	if ext, ok := extensions[opts.ContentType.Normalize()]; ok {
		return ext
	}
	return DefaultExtension
}

// AttachmentFileName returns a fresh, globally unique attachment file name.
func AttachmentFileName(ext string) string {
	return fmt.Sprintf("%s-attachment.%s", NewUUID(), ext)
}

// ContentTypeByExtension is the reverse of the extension table.
func ContentTypeByExtension(ext string) (ContentType, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for ct, e := range extensions {
		if e == ext {
			return ct, true
		}
	}
	return "", false
}
