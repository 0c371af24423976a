package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// multipart framing allowance on top of the file size limit
const multipartOverhead = 1 << 20

type FileHandler struct {
	fileUC  domain.FileUsecase
	maxSize int64
}

func NewFileHandler(public, protected *gin.RouterGroup, fileUC domain.FileUsecase, uploadLimit gin.HandlerFunc, maxSize int64) {
	handler := &FileHandler{
		fileUC:  fileUC,
		maxSize: maxSize,
	}

	public.GET("/files/download/:filename", handler.Download)

	files := protected.Group("/files")
	{
		files.POST("/upload/resume", uploadLimit, handler.UploadResume)
		files.POST("/upload/profile-picture", uploadLimit, handler.UploadProfilePicture)
		files.DELETE("/resume", handler.DeleteResume)
		files.DELETE("/profile-picture", handler.DeleteProfilePicture)
	}
}

// UploadResume godoc
// @Summary      Upload Resume
// @Description  Upload a PDF or Word document as the current user's resume. Replaces any previous resume.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Resume document"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  response.ErrorBody
// @Failure      401   {object}  response.ErrorBody
// @Router       /files/upload/resume [post]
func (h *FileHandler) UploadResume(c *gin.Context) {
	h.upload(c, h.fileUC.UploadResume, "Resume uploaded successfully")
}

// UploadProfilePicture godoc
// @Summary      Upload Profile Picture
// @Description  Upload an image as the current user's profile picture. Large images are downscaled.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Profile image"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  response.ErrorBody
// @Failure      401   {object}  response.ErrorBody
// @Router       /files/upload/profile-picture [post]
func (h *FileHandler) UploadProfilePicture(c *gin.Context) {
	h.upload(c, h.fileUC.UploadProfilePicture, "Profile picture uploaded successfully")
}

type uploadFunc func(ctx context.Context, upload domain.Upload) (*domain.UploadResult, error)

func (h *FileHandler) upload(c *gin.Context, store uploadFunc, message string) {
	if h.maxSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Error(apperror.New(apperror.KindFileTooLarge,
				fmt.Sprintf("File exceeds the maximum size of %d bytes", h.maxSize), nil))
			return
		}
		c.Error(apperror.New(apperror.KindEmptyFile, "Please select a file to upload", err))
		return
	}

	file, err := header.Open()
	if err != nil {
		c.Error(apperror.Storage("Failed to read upload", err))
		return
	}
	defer file.Close()

	result, err := store(c.Request.Context(), domain.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, message, gin.H{
		"fileUrl": result.FileURL,
		"user":    result.User,
	})
}

// Download godoc
// @Summary      Download File
// @Description  Stream a stored file inline
// @Tags         files
// @Produce      octet-stream
// @Param        filename  path      string  true  "Stored filename"
// @Success      200       {file}    binary
// @Failure      400       {object}  response.ErrorBody
// @Failure      404       {object}  response.ErrorBody
// @Router       /files/download/{filename} [get]
func (h *FileHandler) Download(c *gin.Context) {
	file, err := h.fileUC.DownloadFile(c.Request.Context(), c.Param("filename"))
	if err != nil {
		c.Error(err)
		return
	}
	defer file.Content.Close()

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, quoteFilename(file.Name)))
	c.Header("Cache-Control", "private, max-age=300")
	c.DataFromReader(http.StatusOK, file.Size, file.ContentType, file.Content, nil)
}

// DeleteResume godoc
// @Summary      Delete Resume
// @Description  Delete the current user's resume file and clear its URL
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  response.ErrorBody
// @Failure      401  {object}  response.ErrorBody
// @Router       /files/resume [delete]
func (h *FileHandler) DeleteResume(c *gin.Context) {
	user, err := h.fileUC.DeleteResume(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume deleted successfully", gin.H{"user": user})
}

// DeleteProfilePicture godoc
// @Summary      Delete Profile Picture
// @Description  Delete the current user's profile picture and clear its URL
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  response.ErrorBody
// @Failure      401  {object}  response.ErrorBody
// @Router       /files/profile-picture [delete]
func (h *FileHandler) DeleteProfilePicture(c *gin.Context) {
	user, err := h.fileUC.DeleteProfilePicture(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile picture deleted successfully", gin.H{"user": user})
}

func quoteFilename(name string) string {
	return strings.NewReplacer(`"`, "", "\r", "", "\n", "").Replace(name)
}
