package security

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// ResumeCheck contains the result of resume type validation
type ResumeCheck struct {
	Valid       bool   // Whether the upload is an accepted resume document
	ContentType string // Declared content type, "" when absent
	Extension   string // Lower-cased extension of the original filename, with dot
	ByExtension bool   // Accepted through the extension fallback
}

// Declared content types accepted for resumes
var resumeMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// Extension fallback for clients that send no or a generic content type
var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Content types served for stored files when probing is inconclusive
var extensionMIMETypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

const octetStream = "application/octet-stream"

// Stored filename prefixes; the owner's id follows, e.g. resume_7_<token>.pdf
const (
	ResumePrefix         = "resume_"
	ProfilePicturePrefix = "profile_"
)

// Stored extension for each accepted image subtype
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

const defaultImageExtension = ".jpg"

// ClassifyResume accepts a resume when its declared content type is an
// allowed document type, falling back to the filename extension otherwise.
func ClassifyResume(contentType, filename string) ResumeCheck {
	result := ResumeCheck{
		ContentType: strings.TrimSpace(contentType),
		Extension:   Extension(filename),
	}

	if resumeMIMETypes[MediaType(contentType)] {
		result.Valid = true
		return result
	}
	if resumeExtensions[result.Extension] {
		result.Valid = true
		result.ByExtension = true
	}
	return result
}

// IsImageContentType reports whether the declared content type is an image
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(MediaType(contentType), "image/")
}

// MediaType strips parameters and lower-cases a content type header value
func MediaType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		return mt
	}
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// Extension returns the lower-cased extension of filename including the dot,
// or "" when the name has none.
func Extension(filename string) string {
	return strings.ToLower(OriginalExtension(filename))
}

// OriginalExtension returns the extension of filename as sent by the client.
// Only the base name is considered so client-supplied directories are ignored.
func OriginalExtension(filename string) string {
	base := filename
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	ext := filepath.Ext(base)
	if ext == "." || strings.ContainsAny(ext, " \x00") {
		return ""
	}
	return ext
}

// ContentTypeByExtension maps a stored filename to a content type
func ContentTypeByExtension(filename string) string {
	if ct, ok := extensionMIMETypes[Extension(filename)]; ok {
		return ct
	}
	return octetStream
}

// IsSafeFilename rejects names that could escape a flat storage directory.
// Dot-prefixed names are reserved for in-flight temp files.
func IsSafeFilename(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.Contains(name, "..") && !strings.ContainsAny(name, "/\\\x00")
}

// FilenameFromURL extracts the stored filename from a download URL
func FilenameFromURL(fileURL string) string {
	if i := strings.LastIndex(fileURL, "/"); i >= 0 {
		return fileURL[i+1:]
	}
	return fileURL
}

// StoredName builds the flat filename for a user's file
func StoredName(prefix string, userID int64, token, ext string) string {
	return fmt.Sprintf("%s%d_%s%s", prefix, userID, token, ext)
}

// OwnedBy reports whether name is a stored file of the given kind belonging to userID
func OwnedBy(name, prefix string, userID int64) bool {
	return IsSafeFilename(name) && strings.HasPrefix(name, fmt.Sprintf("%s%d_", prefix, userID))
}

// ImageExtension picks the stored extension from the declared image type,
// never from the client filename. Unlisted subtypes get .jpg.
func ImageExtension(contentType string) string {
	if ext, ok := imageExtensions[MediaType(contentType)]; ok {
		return ext
	}
	return defaultImageExtension
}
