package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyResume(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		filename    string
		valid       bool
		byExt       bool
		ext         string
	}{
		{"pdf content type", "application/pdf", "cv.bin", true, false, ".bin"},
		{"docx content type with params", "application/vnd.openxmlformats-officedocument.wordprocessingml.document; charset=binary", "cv", true, false, ""},
		{"missing content type pdf", "", "cv.pdf", true, true, ".pdf"},
		{"missing content type doc", "", "cv.DOC", true, true, ".doc"},
		{"octet stream docx", "application/octet-stream", "my cv.docx", true, true, ".docx"},
		{"image rejected", "image/png", "cv.png", false, false, ".png"},
		{"no extension rejected", "text/plain", "README", false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyResume(tt.contentType, tt.filename)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.byExt, got.ByExtension)
			assert.Equal(t, tt.ext, got.Extension)
		})
	}
}

func TestIsImageContentType(t *testing.T) {
	assert.True(t, IsImageContentType("image/jpeg"))
	assert.True(t, IsImageContentType("IMAGE/PNG"))
	assert.False(t, IsImageContentType(""))
	assert.False(t, IsImageContentType("application/pdf"))
}

func TestIsSafeFilename(t *testing.T) {
	assert.True(t, IsSafeFilename("resume_1_abc.pdf"))
	for _, name := range []string{"", ".", "..", "../etc/passwd", "a/b.pdf", `a\b.pdf`, "x..pdf", "a\x00.pdf", ".upload-123", ".hidden.pdf"} {
		assert.False(t, IsSafeFilename(name), name)
	}
}

func TestContentTypeByExtension(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentTypeByExtension("a.PDF"))
	assert.Equal(t, "image/jpeg", ContentTypeByExtension("a.jpeg"))
	assert.Equal(t, "image/png", ContentTypeByExtension("a.png"))
	assert.Equal(t, "application/octet-stream", ContentTypeByExtension("a.exe"))
	assert.Equal(t, "application/octet-stream", ContentTypeByExtension("noext"))
}

func TestFilenameFromURL(t *testing.T) {
	assert.Equal(t, "resume_1_x.pdf", FilenameFromURL("/api/files/download/resume_1_x.pdf"))
	assert.Equal(t, "plain.pdf", FilenameFromURL("plain.pdf"))
}

func TestOriginalExtension(t *testing.T) {
	assert.Equal(t, ".PDF", OriginalExtension("C:\\docs\\cv.PDF"))
	assert.Equal(t, "", OriginalExtension("photo."))
	assert.Equal(t, ".png", OriginalExtension("dir/photo.png"))
}

func TestOwnedBy(t *testing.T) {
	name := StoredName(ResumePrefix, 7, "abc", ".pdf")
	assert.Equal(t, "resume_7_abc.pdf", name)

	assert.True(t, OwnedBy(name, ResumePrefix, 7))
	assert.False(t, OwnedBy(name, ResumePrefix, 77))
	assert.False(t, OwnedBy("resume_77_abc.pdf", ResumePrefix, 7))
	assert.False(t, OwnedBy(name, ProfilePicturePrefix, 7))
	assert.False(t, OwnedBy("resume_7_../x", ResumePrefix, 7))
}

func TestImageExtension(t *testing.T) {
	assert.Equal(t, ".png", ImageExtension("image/png"))
	assert.Equal(t, ".jpg", ImageExtension("IMAGE/JPEG; charset=binary"))
	assert.Equal(t, ".webp", ImageExtension("image/webp"))
	assert.Equal(t, ".jpg", ImageExtension("image/svg+xml"))
	assert.Equal(t, ".jpg", ImageExtension(""))
}
