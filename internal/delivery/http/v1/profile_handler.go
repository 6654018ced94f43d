package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"profiler-backend/internal/delivery/http/response"
	"profiler-backend/internal/domain"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(rg *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	profiles := rg.Group("/profiles")
	{
		profiles.POST("", handler.Create)
		profiles.GET("", handler.List)
		profiles.GET("/available", handler.Available)
		profiles.POST("/search/skills", handler.SearchBySkills)
		profiles.GET("/:id", handler.GetDetails)
		profiles.PATCH("/:id", handler.Update)
		profiles.PUT("/:id", handler.Update)
		profiles.DELETE("/:id", handler.Delete)
		profiles.POST("/:id/notes", handler.AddNote)
		profiles.DELETE("/:id/notes/:noteId", handler.DeleteNote)
	}
}

type CreateProfileRequest struct {
	FirstName          string                 `json:"firstName" binding:"required,not_blank,max=100"`
	LastName           string                 `json:"lastName" binding:"required,not_blank,max=100"`
	Email              string                 `json:"email" binding:"required,email"`
	Phone              *string                `json:"phone" binding:"omitempty,valid_phone"`
	Skills             []string               `json:"skills" binding:"omitempty,dive,not_blank"`
	Summary            string                 `json:"summary" binding:"max=2000"`
	YearsOfExperience  *int                   `json:"yearsOfExperience" binding:"omitempty,gte=0"`
	ExpectedRate       *float64               `json:"expectedRate" binding:"omitempty,gte=0"`
	Availability       domain.Availability    `json:"availability" binding:"omitempty,oneof=immediate two_weeks one_month unavailable"`
	LinkedInURL        *string                `json:"linkedInUrl" binding:"omitempty,url"`
	GithubURL          *string                `json:"githubUrl" binding:"omitempty,url"`
	PortfolioURL       *string                `json:"portfolioUrl" binding:"omitempty,url"`
	IsAvailable        *bool                  `json:"isAvailable"`
	PreferredLocations []string               `json:"preferredLocations" binding:"omitempty,dive,not_blank"`
	Status             string                 `json:"status" binding:"max=50"`
	AdditionalInfo     map[string]interface{} `json:"additionalInfo"`
}

func (r CreateProfileRequest) toDomain() *domain.Profile {
	p := &domain.Profile{
		FirstName:          strings.TrimSpace(r.FirstName),
		LastName:           strings.TrimSpace(r.LastName),
		Email:              r.Email,
		Phone:              r.Phone,
		Skills:             r.Skills,
		Summary:            r.Summary,
		ExpectedRate:       r.ExpectedRate,
		Availability:       r.Availability,
		LinkedInURL:        r.LinkedInURL,
		GithubURL:          r.GithubURL,
		PortfolioURL:       r.PortfolioURL,
		IsAvailable:        true,
		PreferredLocations: r.PreferredLocations,
		Status:             r.Status,
		AdditionalInfo:     r.AdditionalInfo,
	}
	if r.YearsOfExperience != nil {
		p.YearsOfExperience = *r.YearsOfExperience
	}
	if r.IsAvailable != nil {
		p.IsAvailable = *r.IsAvailable
	}
	return p
}

// UpdateProfileRequest is a partial update; absent fields keep their value.
type UpdateProfileRequest struct {
	FirstName          *string                 `json:"firstName" binding:"omitempty,not_blank,max=100"`
	LastName           *string                 `json:"lastName" binding:"omitempty,not_blank,max=100"`
	Email              *string                 `json:"email" binding:"omitempty,email"`
	Phone              *string                 `json:"phone" binding:"omitempty,valid_phone"`
	Skills             *[]string               `json:"skills" binding:"omitempty,dive,not_blank"`
	Summary            *string                 `json:"summary" binding:"omitempty,max=2000"`
	YearsOfExperience  *int                    `json:"yearsOfExperience" binding:"omitempty,gte=0"`
	ExpectedRate       *float64                `json:"expectedRate" binding:"omitempty,gte=0"`
	Availability       *domain.Availability    `json:"availability" binding:"omitempty,oneof=immediate two_weeks one_month unavailable"`
	LinkedInURL        *string                 `json:"linkedInUrl" binding:"omitempty,url"`
	GithubURL          *string                 `json:"githubUrl" binding:"omitempty,url"`
	PortfolioURL       *string                 `json:"portfolioUrl" binding:"omitempty,url"`
	IsAvailable        *bool                   `json:"isAvailable"`
	PreferredLocations *[]string               `json:"preferredLocations" binding:"omitempty,dive,not_blank"`
	Status             *string                 `json:"status" binding:"omitempty,max=50"`
	AdditionalInfo     *map[string]interface{} `json:"additionalInfo"`
}

func (r UpdateProfileRequest) toDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Email:              r.Email,
		Phone:              r.Phone,
		Skills:             r.Skills,
		Summary:            r.Summary,
		YearsOfExperience:  r.YearsOfExperience,
		ExpectedRate:       r.ExpectedRate,
		Availability:       r.Availability,
		LinkedInURL:        r.LinkedInURL,
		GithubURL:          r.GithubURL,
		PortfolioURL:       r.PortfolioURL,
		IsAvailable:        r.IsAvailable,
		PreferredLocations: r.PreferredLocations,
		Status:             r.Status,
		AdditionalInfo:     r.AdditionalInfo,
	}
}

type SearchSkillsRequest struct {
	Skills []string `json:"skills" binding:"omitempty,dive,not_blank"`
}

type CreateProfileNoteRequest struct {
	Content string                 `json:"content" binding:"required,not_blank"`
	Type    domain.ProfileNoteType `json:"type" binding:"omitempty,oneof=general interview feedback performance"`
}

// CreateProfile godoc
// @Summary      Create a profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        profile  body      CreateProfileRequest  true  "Profile JSON"
// @Success      201      {object}  domain.Profile
// @Failure      400      {object}  response.ErrorResponse
// @Router       /profiles [post]
func (h *ProfileHandler) Create(c *gin.Context) {
	var req CreateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileUC.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusCreated, profile)
}

// ListProfiles godoc
// @Summary      List profiles
// @Description  Filters combine with AND; skills must all be present (case-insensitive).
// @Tags         profiles
// @Produce      json
// @Param        skip           query     int     false  "Rows to skip"
// @Param        take           query     int     false  "Page size (default 50, max 200)"
// @Param        searchTerm     query     string  false  "First or last name substring"
// @Param        skills         query     []string  false  "Required skills, repeated or comma-separated"  collectionFormat(multi)
// @Param        availability   query     string  false  "Availability"
// @Param        minExperience  query     int     false  "Minimum years of experience"
// @Param        maxExperience  query     int     false  "Maximum years of experience"
// @Success      200            {array}   domain.Profile
// @Failure      400            {object}  response.ErrorResponse
// @Router       /profiles [get]
func (h *ProfileHandler) List(c *gin.Context) {
	page, err := queryPage(c)
	if err != nil {
		c.Error(err)
		return
	}
	minExp, err := queryInt(c, "minExperience")
	if err != nil {
		c.Error(err)
		return
	}
	maxExp, err := queryInt(c, "maxExperience")
	if err != nil {
		c.Error(err)
		return
	}

	filter := domain.ProfileFilter{
		Page:          page,
		SearchTerm:    strings.TrimSpace(c.Query("searchTerm")),
		Skills:        queryList(c, "skills"),
		Availability:  domain.Availability(strings.TrimSpace(c.Query("availability"))),
		MinExperience: minExp,
		MaxExperience: maxExp,
	}

	profiles, err := h.profileUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, profiles)
}

// AvailableProfiles godoc
// @Summary      List available profiles
// @Description  Profiles open to new assignments, most experienced first.
// @Tags         profiles
// @Produce      json
// @Success      200  {array}  domain.Profile
// @Router       /profiles/available [get]
func (h *ProfileHandler) Available(c *gin.Context) {
	profiles, err := h.profileUC.FindAvailable(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, profiles)
}

// GetProfile godoc
// @Summary      Get a profile
// @Description  Includes assignments with their clients and the note thread.
// @Tags         profiles
// @Produce      json
// @Param        id   path      string  true  "Profile ID"
// @Success      200  {object}  domain.Profile
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /profiles/{id} [get]
func (h *ProfileHandler) GetDetails(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	profile, err := h.profileUC.FindOne(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary      Update a profile
// @Description  Only supplied fields change. Also served on PUT.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Profile ID"
// @Param        profile  body      UpdateProfileRequest  true  "Fields to change"
// @Success      200      {object}  domain.Profile
// @Failure      400      {object}  response.ErrorResponse
// @Failure      404      {object}  response.ErrorResponse
// @Router       /profiles/{id} [patch]
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileUC.Update(c.Request.Context(), id, req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// DeleteProfile godoc
// @Summary      Delete a profile
// @Description  Notes are deleted with it; assignments keep a null profile.
// @Tags         profiles
// @Param        id   path  string  true  "Profile ID"
// @Success      200
// @Failure      404  {object}  response.ErrorResponse
// @Router       /profiles/{id} [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.profileUC.Remove(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}

// SearchProfilesBySkills godoc
// @Summary      Search profiles by skills
// @Description  Profiles having any of the given skills (exact match).
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        body  body      SearchSkillsRequest  true  "Skills"
// @Success      200   {array}   domain.Profile
// @Failure      400   {object}  response.ErrorResponse
// @Router       /profiles/search/skills [post]
func (h *ProfileHandler) SearchBySkills(c *gin.Context) {
	var req SearchSkillsRequest
	if !bindJSON(c, &req) {
		return
	}

	profiles, err := h.profileUC.SearchBySkills(c.Request.Context(), req.Skills)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, profiles)
}

// AddProfileNote godoc
// @Summary      Add a note to a profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Profile ID"
// @Param        note  body      CreateProfileNoteRequest  true  "Note"
// @Success      201   {object}  domain.ProfileNote
// @Failure      400   {object}  response.ErrorResponse
// @Failure      404   {object}  response.ErrorResponse
// @Router       /profiles/{id}/notes [post]
func (h *ProfileHandler) AddNote(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req CreateProfileNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.profileUC.AddNote(c.Request.Context(), id, &domain.ProfileNote{
		Content: req.Content,
		Type:    req.Type,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusCreated, note)
}

// DeleteProfileNote godoc
// @Summary      Delete a profile note
// @Tags         profiles
// @Param        id      path  string  true  "Profile ID"
// @Param        noteId  path  string  true  "Note ID"
// @Success      200
// @Failure      404  {object}  response.ErrorResponse
// @Router       /profiles/{id}/notes/{noteId} [delete]
func (h *ProfileHandler) DeleteNote(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	noteID, ok := pathUUID(c, "noteId")
	if !ok {
		return
	}

	if err := h.profileUC.DeleteNote(c.Request.Context(), id, noteID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}
