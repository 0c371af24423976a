package v1

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/security"
	"job-portal-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC        domain.UserUsecase
	authUC        domain.AuthUsecase
	fileURLPrefix string
}

type PasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type URLRequest struct {
	URL string `json:"url" binding:"required"`
}

type SkillIDsRequest struct {
	SkillIDs []int64 `json:"skillIds" binding:"required"`
}

func NewUserHandler(protected *gin.RouterGroup, userUC domain.UserUsecase, authUC domain.AuthUsecase, fileURLPrefix string) {
	handler := &UserHandler{
		userUC:        userUC,
		authUC:        authUC,
		fileURLPrefix: fileURLPrefix,
	}

	users := protected.Group("/users")
	{
		users.GET("/profile", handler.GetProfile)
		users.PUT("/profile", handler.UpdateProfile)
		users.PUT("/password", handler.UpdatePassword)
		users.PUT("/profile-picture", handler.UpdateProfilePicture)
		users.PUT("/resume", handler.UpdateResume)

		users.POST("/skills", handler.AddSkill)
		users.DELETE("/skills/:skillId", handler.RemoveSkill)
		users.PUT("/skills", handler.ReplaceSkills)

		// Admin
		users.GET("", handler.List)
		users.GET("/role/:role", handler.ListByRole)
		users.GET("/:id", handler.GetByID)
		users.POST("/:id/verify", handler.Verify)
		users.DELETE("/:id", handler.Delete)
	}
}

// GetProfile godoc
// @Summary      Get Profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  response.ErrorBody
// @Router       /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved successfully", gin.H{"user": user})
}

// UpdateProfile godoc
// @Summary      Update Profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        profile  body      domain.ProfileUpdate  true  "Profile fields"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  response.ErrorBody
// @Router       /users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req domain.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	user, err := h.authUC.GetCurrentUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	updated, err := h.userUC.UpdateProfile(c.Request.Context(), user, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated successfully", gin.H{"user": updated})
}

// UpdatePassword godoc
// @Summary      Change Password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        password  body      PasswordRequest  true  "New password"
// @Success      200       {object}  map[string]interface{}
// @Failure      400       {object}  response.ErrorBody
// @Router       /users/password [put]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	user, err := h.authUC.GetCurrentUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.userUC.UpdatePassword(c.Request.Context(), user, req.NewPassword); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Password updated successfully", nil)
}

// UpdateProfilePicture godoc
// @Summary      Set Profile Picture URL
// @Description  Point the profile picture at an existing URL without uploading
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        picture  body      URLRequest  true  "Picture URL"
// @Success      200      {object}  map[string]interface{}
// @Router       /users/profile-picture [put]
func (h *UserHandler) UpdateProfilePicture(c *gin.Context) {
	h.setURL(c, h.userUC.UpdateProfilePicture, security.ProfilePicturePrefix, "Profile picture updated successfully")
}

// UpdateResume godoc
// @Summary      Set Resume URL
// @Description  Point the resume at an existing URL without uploading
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        resume  body      URLRequest  true  "Resume URL"
// @Success      200     {object}  map[string]interface{}
// @Router       /users/resume [put]
func (h *UserHandler) UpdateResume(c *gin.Context) {
	h.setURL(c, h.userUC.UpdateResume, security.ResumePrefix, "Resume updated successfully")
}

// setURL stores an external URL, or a managed download URL the caller owns.
// Pointing at another user's stored file is forbidden since the file would
// be deleted on the next upload or delete.
func (h *UserHandler) setURL(c *gin.Context, set func(context.Context, *domain.User, string) (*domain.User, error), prefix, message string) {
	var req URLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}
	url := strings.TrimSpace(req.URL)

	user, err := h.authUC.GetCurrentUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	if h.fileURLPrefix != "" {
		if i := strings.Index(url, h.fileURLPrefix); i >= 0 {
			name := url[i+len(h.fileURLPrefix):]
			if !security.OwnedBy(name, prefix, user.ID) {
				c.Error(apperror.Forbidden("URL refers to a file you do not own"))
				return
			}
		}
	}

	updated, err := set(c.Request.Context(), user, url)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, message, gin.H{"user": updated})
}

// AddSkill godoc
// @Summary      Add Skill
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        skillId  query     int  true  "Skill ID"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  response.ErrorBody
// @Router       /users/skills [post]
func (h *UserHandler) AddSkill(c *gin.Context) {
	skillID, err := parseID(c.Query("skillId"), "skillId")
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.authUC.GetCurrentUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	updated, err := h.userUC.AddSkill(c.Request.Context(), user, skillID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill added successfully", gin.H{"user": updated})
}

// RemoveSkill godoc
// @Summary      Remove Skill
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        skillId  path      int  true  "Skill ID"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  response.ErrorBody
// @Router       /users/skills/{skillId} [delete]
func (h *UserHandler) RemoveSkill(c *gin.Context) {
	skillID, err := parseID(c.Param("skillId"), "skillId")
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.authUC.GetCurrentUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	updated, err := h.userUC.RemoveSkill(c.Request.Context(), user, skillID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill removed successfully", gin.H{"user": updated})
}

// ReplaceSkills godoc
// @Summary      Replace Skills
// @Description  Replace the whole skill set. Every id is validated before anything changes.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        skills  body      SkillIDsRequest  true  "Skill IDs"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  response.ErrorBody
// @Router       /users/skills [put]
func (h *UserHandler) ReplaceSkills(c *gin.Context) {
	var req SkillIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	user, err := h.authUC.GetCurrentUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	updated, err := h.userUC.ReplaceSkills(c.Request.Context(), user, req.SkillIDs)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skills updated successfully", gin.H{"user": updated})
}

// List godoc
// @Summary      List Users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  response.ErrorBody
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved successfully", gin.H{"users": users})
}

// ListByRole godoc
// @Summary      List Users By Role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role  path      string  true  "JOB_SEEKER, EMPLOYER or ADMIN"
// @Success      200   {object}  map[string]interface{}
// @Failure      403   {object}  response.ErrorBody
// @Router       /users/role/{role} [get]
func (h *UserHandler) ListByRole(c *gin.Context) {
	role := domain.Role(strings.ToUpper(c.Param("role")))
	users, err := h.userUC.ListByRole(c.Request.Context(), role)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved successfully", gin.H{"users": users})
}

// GetByID godoc
// @Summary      Get User
// @Description  Admins may read any user; other users only themselves
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  response.ErrorBody
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	if callerID, _ := domain.UserIDFromContext(ctx); callerID != id && domain.RoleFromContext(ctx) != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Admin access required"))
		return
	}

	user, err := h.userUC.GetByID(ctx, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved successfully", gin.H{"user": user})
}

// Verify godoc
// @Summary      Verify User
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  response.ErrorBody
// @Router       /users/{id}/verify [post]
func (h *UserHandler) Verify(c *gin.Context) {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		c.Error(err)
		return
	}
	user, err := h.userUC.Verify(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User verified successfully", gin.H{"user": user})
}

// Delete godoc
// @Summary      Delete User
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  response.ErrorBody
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.userUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted successfully", nil)
}

func parseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid " + name)
	}
	return id, nil
}
