package v1

import (
	"net/http"

	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type SkillHandler struct {
	skillUC domain.SkillUsecase
}

func NewSkillHandler(public, protected *gin.RouterGroup, skillUC domain.SkillUsecase) {
	handler := &SkillHandler{skillUC: skillUC}

	skills := public.Group("/skills")
	{
		skills.GET("", handler.List)
		skills.GET("/search", handler.Search)
		skills.GET("/category/:category", handler.ListByCategory)
		skills.GET("/:id", handler.GetByID)
	}

	protected.POST("/skills", handler.Create)
}

// List godoc
// @Summary      List Skills
// @Tags         skills
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /skills [get]
func (h *SkillHandler) List(c *gin.Context) {
	skills, err := h.skillUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skills retrieved successfully", gin.H{"skills": skills})
}

// Search godoc
// @Summary      Search Skills
// @Description  Case-insensitive substring match on the skill name
// @Tags         skills
// @Produce      json
// @Param        keyword  query     string  false  "Keyword"
// @Success      200      {object}  map[string]interface{}
// @Router       /skills/search [get]
func (h *SkillHandler) Search(c *gin.Context) {
	skills, err := h.skillUC.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skills retrieved successfully", gin.H{"skills": skills})
}

// ListByCategory godoc
// @Summary      List Skills By Category
// @Tags         skills
// @Produce      json
// @Param        category  path      string  true  "Category"
// @Success      200       {object}  map[string]interface{}
// @Router       /skills/category/{category} [get]
func (h *SkillHandler) ListByCategory(c *gin.Context) {
	skills, err := h.skillUC.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skills retrieved successfully", gin.H{"skills": skills})
}

// GetByID godoc
// @Summary      Get Skill
// @Tags         skills
// @Produce      json
// @Param        id   path      int  true  "Skill ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  response.ErrorBody
// @Router       /skills/{id} [get]
func (h *SkillHandler) GetByID(c *gin.Context) {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		c.Error(err)
		return
	}
	skill, err := h.skillUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill retrieved successfully", gin.H{"skill": skill})
}

// Create godoc
// @Summary      Create Skill
// @Tags         skills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        skill  body      domain.Skill  true  "Skill"
// @Success      201    {object}  map[string]interface{}
// @Failure      400    {object}  response.ErrorBody
// @Failure      403    {object}  response.ErrorBody
// @Router       /skills [post]
func (h *SkillHandler) Create(c *gin.Context) {
	var req domain.Skill
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}
	skill, err := h.skillUC.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Skill created successfully", gin.H{"skill": skill})
}
