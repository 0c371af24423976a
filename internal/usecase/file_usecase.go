package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/imaging"
	"job-portal-backend/pkg/logger"
	"job-portal-backend/pkg/metrics"
	"job-portal-backend/pkg/security"

	"github.com/google/uuid"
)

const (
	kindResume         = "resume"
	kindProfilePicture = "profile_picture"
)

// FileConfig holds the upload settings fixed at startup
type FileConfig struct {
	URLPrefix         string // prepended to stored filenames, e.g. /api/files/download/
	MaxSize           int64  // bytes, 0 means unlimited
	MaxImageDimension int    // profile pictures are downscaled beyond this, 0 disables
}

type fileUsecase struct {
	store    domain.FileStore
	authUC   domain.AuthUsecase
	userUC   domain.UserUsecase
	cfg      FileConfig
	newToken func() string
}

func NewFileUsecase(store domain.FileStore, authUC domain.AuthUsecase, userUC domain.UserUsecase, cfg FileConfig) domain.FileUsecase {
	return &fileUsecase{
		store:    store,
		authUC:   authUC,
		userUC:   userUC,
		cfg:      cfg,
		newToken: uuid.NewString,
	}
}

// UploadResume stores a PDF or Word document as the current user's resume.
// The new file is written and recorded before the superseded one is removed,
// so a crash in between leaves an orphaned file rather than a dangling URL.
func (u *fileUsecase) UploadResume(ctx context.Context, upload domain.Upload) (*domain.UploadResult, error) {
	user, err := u.authUC.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.checkSize(upload); err != nil {
		metrics.RecordUpload(kindResume, string(apperror.KindOf(err)), 0)
		return nil, err
	}

	check := security.ClassifyResume(upload.ContentType, upload.Filename)
	if !check.Valid {
		logger.Log.Warn("Rejected resume upload",
			"user_id", user.ID, "content_type", upload.ContentType, "extension", check.Extension)
		metrics.RecordUpload(kindResume, string(apperror.KindInvalidFileType), 0)
		return nil, invalidFileType("Invalid file type. Only PDF and Word documents are allowed.", upload.ContentType).
			WithDetail("fileExtension", check.Extension)
	}
	if check.ByExtension {
		logger.Log.Debug("Resume type determined from extension", "user_id", user.ID, "extension", check.Extension)
	}

	name := security.StoredName(security.ResumePrefix, user.ID, u.newToken(), check.Extension)
	previous := user.ResumeURL

	written, err := u.save(ctx, name, upload.Content)
	if err != nil {
		metrics.RecordUpload(kindResume, string(apperror.KindOf(err)), 0)
		return nil, err
	}

	fileURL := u.cfg.URLPrefix + name
	updated, err := u.userUC.UpdateResume(ctx, user, fileURL)
	if err != nil {
		u.discard(ctx, name)
		metrics.RecordUpload(kindResume, string(apperror.KindOf(err)), 0)
		return nil, err
	}

	u.removeSuperseded(ctx, user.ID, security.ResumePrefix, previous, name)
	metrics.RecordUpload(kindResume, "success", written)
	logger.Log.Info("Resume uploaded", "user_id", user.ID, "file", name, "bytes", written)

	return &domain.UploadResult{FileURL: fileURL, User: updated}, nil
}

// UploadProfilePicture stores an image as the current user's profile picture.
func (u *fileUsecase) UploadProfilePicture(ctx context.Context, upload domain.Upload) (*domain.UploadResult, error) {
	user, err := u.authUC.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.checkSize(upload); err != nil {
		metrics.RecordUpload(kindProfilePicture, string(apperror.KindOf(err)), 0)
		return nil, err
	}

	if !security.IsImageContentType(upload.ContentType) {
		metrics.RecordUpload(kindProfilePicture, string(apperror.KindInvalidFileType), 0)
		return nil, invalidFileType("Invalid file type. Only images are allowed.", upload.ContentType).
			WithDetail("fileExtension", security.Extension(upload.Filename))
	}

	data, err := u.readLimited(upload.Content)
	if err != nil {
		metrics.RecordUpload(kindProfilePicture, string(apperror.KindOf(err)), 0)
		return nil, err
	}
	if len(data) == 0 {
		metrics.RecordUpload(kindProfilePicture, string(apperror.KindEmptyFile), 0)
		return nil, emptyFile()
	}

	if out, resized, err := imaging.Downscale(data, u.cfg.MaxImageDimension); err != nil {
		logger.Log.Debug("Profile picture stored without resizing", "user_id", user.ID, "error", err)
	} else if resized {
		logger.Log.Info("Profile picture downscaled", "user_id", user.ID, "from_bytes", len(data), "to_bytes", len(out))
		data = out
	}

	ext := security.ImageExtension(upload.ContentType)
	name := security.StoredName(security.ProfilePicturePrefix, user.ID, u.newToken(), ext)
	previous := user.ProfilePicture

	written, err := u.save(ctx, name, bytes.NewReader(data))
	if err != nil {
		metrics.RecordUpload(kindProfilePicture, string(apperror.KindOf(err)), 0)
		return nil, err
	}

	fileURL := u.cfg.URLPrefix + name
	updated, err := u.userUC.UpdateProfilePicture(ctx, user, fileURL)
	if err != nil {
		u.discard(ctx, name)
		metrics.RecordUpload(kindProfilePicture, string(apperror.KindOf(err)), 0)
		return nil, err
	}

	u.removeSuperseded(ctx, user.ID, security.ProfilePicturePrefix, previous, name)
	metrics.RecordUpload(kindProfilePicture, "success", written)
	logger.Log.Info("Profile picture uploaded", "user_id", user.ID, "file", name, "bytes", written)

	return &domain.UploadResult{FileURL: fileURL, User: updated}, nil
}

// DownloadFile opens a stored file by its bare name.
func (u *fileUsecase) DownloadFile(ctx context.Context, filename string) (*domain.FileDownload, error) {
	if !security.IsSafeFilename(filename) {
		logger.Log.Warn("Invalid filename attempt", "filename", filename)
		return nil, apperror.New(apperror.KindInvalidPath, "Invalid filename", nil)
	}

	file, err := u.store.Open(ctx, filename)
	if err != nil {
		if apperror.Is(err, apperror.KindInvalidPath) {
			logger.Log.Warn("Path traversal attempt detected", "filename", filename)
		}
		return nil, err
	}
	return file, nil
}

// DeleteResume removes the current user's resume file and clears its URL.
func (u *fileUsecase) DeleteResume(ctx context.Context) (*domain.User, error) {
	user, err := u.authUC.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user.ResumeURL == nil || *user.ResumeURL == "" {
		return nil, apperror.New(apperror.KindNoResumeFound, "No resume found to delete", nil)
	}

	if err := u.removeStored(ctx, user.ID, security.ResumePrefix, *user.ResumeURL); err != nil {
		return nil, err
	}
	return u.userUC.DeleteResume(ctx, user)
}

// DeleteProfilePicture removes the current user's profile picture and clears its URL.
func (u *fileUsecase) DeleteProfilePicture(ctx context.Context) (*domain.User, error) {
	user, err := u.authUC.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user.ProfilePicture == nil || *user.ProfilePicture == "" {
		return nil, apperror.New(apperror.KindNoProfilePictureFound, "No profile picture found to delete", nil)
	}

	if err := u.removeStored(ctx, user.ID, security.ProfilePicturePrefix, *user.ProfilePicture); err != nil {
		return nil, err
	}
	return u.userUC.DeleteProfilePicture(ctx, user)
}

func (u *fileUsecase) checkSize(upload domain.Upload) error {
	if upload.Content == nil || upload.Size == 0 {
		return emptyFile()
	}
	if u.cfg.MaxSize > 0 && upload.Size > u.cfg.MaxSize {
		return u.tooLarge()
	}
	return nil
}

func (u *fileUsecase) readLimited(r io.Reader) ([]byte, error) {
	if u.cfg.MaxSize > 0 {
		r = io.LimitReader(r, u.cfg.MaxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperror.Storage("Failed to read upload", err)
	}
	if u.cfg.MaxSize > 0 && int64(len(data)) > u.cfg.MaxSize {
		return nil, u.tooLarge()
	}
	return data, nil
}

// save writes the upload, enforcing the size limit on the actual stream
// since a client-declared size cannot be trusted.
func (u *fileUsecase) save(ctx context.Context, name string, r io.Reader) (int64, error) {
	if u.cfg.MaxSize > 0 {
		r = io.LimitReader(r, u.cfg.MaxSize+1)
	}
	written, err := u.store.Save(ctx, name, r)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			err = apperror.Storage("Failed to store file", err)
		}
		return 0, err
	}
	if written == 0 {
		u.discard(ctx, name)
		return 0, emptyFile()
	}
	if u.cfg.MaxSize > 0 && written > u.cfg.MaxSize {
		u.discard(ctx, name)
		return 0, u.tooLarge()
	}
	return written, nil
}

// removeStored deletes the file behind a stored URL when it is one of the
// user's own managed files of that kind. Anything else is left on disk.
// A missing file is fine; any other failure is surfaced.
func (u *fileUsecase) removeStored(ctx context.Context, userID int64, prefix, fileURL string) error {
	name := security.FilenameFromURL(fileURL)
	if !strings.HasPrefix(fileURL, u.cfg.URLPrefix) || !security.OwnedBy(name, prefix, userID) {
		logger.Log.Warn("Stored URL is not a managed file of this user, leaving disk untouched",
			"user_id", userID, "url", fileURL)
		return nil
	}
	removed, err := u.store.Remove(ctx, name)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			err = apperror.Storage("Failed to delete file", err)
		}
		return err
	}
	if removed {
		logger.Log.Info("Deleted stored file", "file", name)
	}
	return nil
}

// removeSuperseded is best-effort: failures are logged and never surfaced.
func (u *fileUsecase) removeSuperseded(ctx context.Context, userID int64, prefix string, previous *string, current string) {
	if previous == nil || *previous == "" {
		return
	}
	name := security.FilenameFromURL(*previous)
	if name == current {
		return
	}
	if err := u.removeStored(ctx, userID, prefix, *previous); err != nil {
		logger.Log.Warn("Failed to delete superseded file", "file", name, "error", err)
	}
}

func (u *fileUsecase) discard(ctx context.Context, name string) {
	if _, err := u.store.Remove(context.WithoutCancel(ctx), name); err != nil {
		logger.Log.Warn("Failed to discard stored file", "file", name, "error", err)
	}
}

func (u *fileUsecase) tooLarge() *apperror.AppError {
	return apperror.New(apperror.KindFileTooLarge,
		fmt.Sprintf("File exceeds the maximum size of %d bytes", u.cfg.MaxSize), nil)
}

func emptyFile() *apperror.AppError {
	return apperror.New(apperror.KindEmptyFile, "File is empty", nil)
}

func invalidFileType(message, contentType string) *apperror.AppError {
	received := contentType
	if received == "" {
		received = "null"
	}
	return apperror.New(apperror.KindInvalidFileType, message, nil).WithDetail("receivedType", received)
}
