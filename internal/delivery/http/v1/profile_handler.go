package v1

import (
	"go-devnet-backend/internal/delivery/http/middleware"
	"go-devnet-backend/internal/delivery/http/response"
	"go-devnet-backend/internal/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(public *gin.RouterGroup, protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	publicProfile := public.Group("/profile")
	{
		publicProfile.GET("/all", handler.List)
		publicProfile.GET("/handle/:handle", handler.GetByHandle)
		publicProfile.GET("/user/:user_id", handler.GetByUserID)
	}

	protectedProfile := protected.Group("/profile")
	{
		protectedProfile.GET("", handler.GetOwn)
		protectedProfile.POST("", handler.Upsert)
		protectedProfile.DELETE("", handler.Delete)
		protectedProfile.POST("/education", handler.AddEducation)
		protectedProfile.DELETE("/education/:edu_id", handler.RemoveEducation)
		protectedProfile.POST("/experience", handler.AddExperience)
		protectedProfile.DELETE("/experience/:exp_id", handler.RemoveExperience)
	}
}

// GetOwn godoc
// @Summary      Current user's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile [get]
func (h *ProfileHandler) GetOwn(c *gin.Context) {
	profile, err := h.profileUC.GetOwnProfile(c.Request.Context(), middleware.CurrentIdentity(c).ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// List godoc
// @Summary      All profiles
// @Tags         profile
// @Produce      json
// @Success      200  {array}   domain.Profile
// @Router       /profile/all [get]
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileUC.ListAllProfiles(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, profiles)
}

// GetByHandle godoc
// @Summary      Profile by handle
// @Tags         profile
// @Produce      json
// @Param        handle  path      string  true  "Profile handle"
// @Success      200     {object}  domain.Profile
// @Failure      404     {object}  map[string]string
// @Router       /profile/handle/{handle} [get]
func (h *ProfileHandler) GetByHandle(c *gin.Context) {
	profile, err := h.profileUC.GetProfileByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// GetByUserID godoc
// @Summary      Profile by user id
// @Tags         profile
// @Produce      json
// @Param        user_id  path      string  true  "User ID"
// @Success      200      {object}  domain.Profile
// @Failure      404      {object}  map[string]string
// @Router       /profile/user/{user_id} [get]
func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	profile, err := h.profileUC.GetProfileByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// Upsert godoc
// @Summary      Create or edit the current user's profile
// @Description  Only non-empty fields overwrite stored values. Skills is a slash or comma separated list.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        profile  body      domain.ProfileInput  true  "Profile fields"
// @Success      200      {object}  domain.Profile
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Router       /profile [post]
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var input domain.ProfileInput
	if err := bindJSON(c, &input); err != nil {
		c.Error(err)
		return
	}

	profile, err := h.profileUC.UpsertProfile(c.Request.Context(), middleware.CurrentIdentity(c).ID, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// AddEducation godoc
// @Summary      Add an education entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        education  body      domain.EducationInput  true  "Education entry"
// @Success      200        {object}  domain.Profile
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /profile/education [post]
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	var input domain.EducationInput
	if err := bindJSON(c, &input); err != nil {
		c.Error(err)
		return
	}

	profile, err := h.profileUC.AddEducation(c.Request.Context(), middleware.CurrentIdentity(c).ID, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// RemoveEducation godoc
// @Summary      Remove an education entry
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        edu_id  path      string  true  "Education entry ID"
// @Success      200     {object}  domain.Profile
// @Failure      404     {object}  map[string]string
// @Router       /profile/education/{edu_id} [delete]
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	profile, err := h.profileUC.RemoveEducation(c.Request.Context(), middleware.CurrentIdentity(c).ID, c.Param("edu_id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// AddExperience godoc
// @Summary      Add an experience entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        experience  body      domain.ExperienceInput  true  "Experience entry"
// @Success      200         {object}  domain.Profile
// @Failure      400         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /profile/experience [post]
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	var input domain.ExperienceInput
	if err := bindJSON(c, &input); err != nil {
		c.Error(err)
		return
	}

	profile, err := h.profileUC.AddExperience(c.Request.Context(), middleware.CurrentIdentity(c).ID, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// RemoveExperience godoc
// @Summary      Remove an experience entry
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        exp_id  path      string  true  "Experience entry ID"
// @Success      200     {object}  domain.Profile
// @Failure      404     {object}  map[string]string
// @Router       /profile/experience/{exp_id} [delete]
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	profile, err := h.profileUC.RemoveExperience(c.Request.Context(), middleware.CurrentIdentity(c).ID, c.Param("exp_id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// Delete godoc
// @Summary      Delete the current user's profile and account
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Ack
// @Failure      401  {object}  map[string]string
// @Router       /profile [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profileUC.DeleteOwnProfileAndAccount(c.Request.Context(), middleware.CurrentIdentity(c).ID); err != nil {
		c.Error(err)
		return
	}
	response.OK(c, http.StatusOK)
}
