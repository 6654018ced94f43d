package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"profiler-backend/internal/delivery/http/response"
	"profiler-backend/internal/domain"
	"profiler-backend/pkg/apperror"
)

type AssignmentHandler struct {
	assignmentUC domain.AssignmentUsecase
}

func NewAssignmentHandler(rg *gin.RouterGroup, assignmentUC domain.AssignmentUsecase) {
	handler := &AssignmentHandler{assignmentUC: assignmentUC}

	assignments := rg.Group("/assignments")
	{
		assignments.POST("", handler.Create)
		assignments.GET("", handler.List)
		assignments.GET("/active", handler.Active)
		assignments.GET("/date-range", handler.DateRange)
		assignments.GET("/profile/:profileId", handler.ByProfile)
		assignments.GET("/client/:clientId", handler.ByClient)
		assignments.GET("/:id", handler.GetDetails)
		assignments.PATCH("/:id", handler.Update)
		assignments.PUT("/:id", handler.Update)
		assignments.DELETE("/:id", handler.Delete)
		assignments.POST("/:id/notes", handler.AddNote)
		assignments.DELETE("/:id/notes/:noteId", handler.DeleteNote)
	}
}

type CreateAssignmentRequest struct {
	ProfileID      string                 `json:"profileId" binding:"required,uuid"`
	ClientID       string                 `json:"clientId" binding:"required,uuid"`
	StartDate      *domain.Date           `json:"startDate"`
	EndDate        *domain.Date           `json:"endDate"`
	Status         string                 `json:"status" binding:"max=50"`
	Rate           *float64               `json:"rate" binding:"omitempty,gte=0"`
	Feedback       map[string]interface{} `json:"feedback"`
	AdditionalInfo map[string]interface{} `json:"additionalInfo"`
}

func (r CreateAssignmentRequest) toDomain() domain.AssignmentInput {
	return domain.AssignmentInput{
		ProfileID:      strings.ToLower(r.ProfileID),
		ClientID:       strings.ToLower(r.ClientID),
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Status:         r.Status,
		Rate:           r.Rate,
		Feedback:       r.Feedback,
		AdditionalInfo: r.AdditionalInfo,
	}
}

// UpdateAssignmentRequest is a partial update; absent fields keep their value.
type UpdateAssignmentRequest struct {
	ProfileID      *string                 `json:"profileId" binding:"omitempty,uuid"`
	ClientID       *string                 `json:"clientId" binding:"omitempty,uuid"`
	StartDate      *domain.Date            `json:"startDate"`
	EndDate        *domain.Date            `json:"endDate"`
	Status         *string                 `json:"status" binding:"omitempty,max=50"`
	Rate           *float64                `json:"rate" binding:"omitempty,gte=0"`
	Feedback       *map[string]interface{} `json:"feedback"`
	AdditionalInfo *map[string]interface{} `json:"additionalInfo"`
}

func (r UpdateAssignmentRequest) toDomain() domain.AssignmentUpdate {
	u := domain.AssignmentUpdate{
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Status:         r.Status,
		Rate:           r.Rate,
		Feedback:       r.Feedback,
		AdditionalInfo: r.AdditionalInfo,
	}
	if r.ProfileID != nil {
		id := strings.ToLower(*r.ProfileID)
		u.ProfileID = &id
	}
	if r.ClientID != nil {
		id := strings.ToLower(*r.ClientID)
		u.ClientID = &id
	}
	return u
}

type CreateAssignmentNoteRequest struct {
	Content string                    `json:"content" binding:"required,not_blank"`
	Type    domain.AssignmentNoteType `json:"type" binding:"omitempty,oneof=general interview feedback performance issue"`
}

// CreateAssignment godoc
// @Summary      Create an assignment
// @Description  The referenced profile and client must exist.
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        assignment  body      CreateAssignmentRequest  true  "Assignment JSON"
// @Success      201         {object}  domain.Assignment
// @Failure      400         {object}  response.ErrorResponse
// @Failure      404         {object}  response.ErrorResponse
// @Router       /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req CreateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	assignment, err := h.assignmentUC.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusCreated, assignment)
}

// ListAssignments godoc
// @Summary      List assignments
// @Tags         assignments
// @Produce      json
// @Param        skip       query     int     false  "Rows to skip"
// @Param        take       query     int     false  "Page size (default 50, max 200)"
// @Param        status     query     string  false  "Status"
// @Param        startDate  query     string  false  "Start date lower bound (YYYY-MM-DD)"
// @Param        endDate    query     string  false  "End date upper bound (YYYY-MM-DD)"
// @Param        profileId  query     string  false  "Profile ID"
// @Param        clientId   query     string  false  "Client ID"
// @Success      200        {array}   domain.Assignment
// @Failure      400        {object}  response.ErrorResponse
// @Router       /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	filter, err := assignmentFilterFromQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	assignments, err := h.assignmentUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, assignments)
}

func assignmentFilterFromQuery(c *gin.Context) (domain.AssignmentFilter, error) {
	var filter domain.AssignmentFilter
	var err error

	if filter.Page, err = queryPage(c); err != nil {
		return filter, err
	}
	if filter.StartDate, err = queryDate(c, "startDate"); err != nil {
		return filter, err
	}
	if filter.EndDate, err = queryDate(c, "endDate"); err != nil {
		return filter, err
	}
	if filter.ProfileID, err = queryUUID(c, "profileId"); err != nil {
		return filter, err
	}
	if filter.ClientID, err = queryUUID(c, "clientId"); err != nil {
		return filter, err
	}
	filter.Status = strings.TrimSpace(c.Query("status"))
	return filter, nil
}

// ActiveAssignments godoc
// @Summary      List active assignments
// @Tags         assignments
// @Produce      json
// @Success      200  {array}  domain.Assignment
// @Router       /assignments/active [get]
func (h *AssignmentHandler) Active(c *gin.Context) {
	assignments, err := h.assignmentUC.FindActiveAssignments(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, assignments)
}

// AssignmentsByDateRange godoc
// @Summary      List assignments overlapping a date window
// @Tags         assignments
// @Produce      json
// @Param        startDate  query     string  true  "Window start (YYYY-MM-DD)"
// @Param        endDate    query     string  true  "Window end (YYYY-MM-DD)"
// @Success      200        {array}   domain.Assignment
// @Failure      400        {object}  response.ErrorResponse
// @Router       /assignments/date-range [get]
func (h *AssignmentHandler) DateRange(c *gin.Context) {
	start, err := queryDate(c, "startDate")
	if err != nil {
		c.Error(err)
		return
	}
	end, err := queryDate(c, "endDate")
	if err != nil {
		c.Error(err)
		return
	}
	if start == nil || end == nil {
		c.Error(apperror.BadRequest("startDate and endDate are required"))
		return
	}

	assignments, err := h.assignmentUC.FindAssignmentsByDateRange(c.Request.Context(), *start, *end)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, assignments)
}

// AssignmentsByProfile godoc
// @Summary      List a profile's assignments
// @Tags         assignments
// @Produce      json
// @Param        profileId  path      string  true  "Profile ID"
// @Success      200        {array}   domain.Assignment
// @Failure      400        {object}  response.ErrorResponse
// @Router       /assignments/profile/{profileId} [get]
func (h *AssignmentHandler) ByProfile(c *gin.Context) {
	profileID, ok := pathUUID(c, "profileId")
	if !ok {
		return
	}

	assignments, err := h.assignmentUC.FindAssignmentsByProfile(c.Request.Context(), profileID)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, assignments)
}

// AssignmentsByClient godoc
// @Summary      List a client's assignments
// @Tags         assignments
// @Produce      json
// @Param        clientId  path      string  true  "Client ID"
// @Success      200       {array}   domain.Assignment
// @Failure      400       {object}  response.ErrorResponse
// @Router       /assignments/client/{clientId} [get]
func (h *AssignmentHandler) ByClient(c *gin.Context) {
	clientID, ok := pathUUID(c, "clientId")
	if !ok {
		return
	}

	assignments, err := h.assignmentUC.FindAssignmentsByClient(c.Request.Context(), clientID)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, assignments)
}

// GetAssignment godoc
// @Summary      Get an assignment
// @Description  Includes the profile, the client and the note thread.
// @Tags         assignments
// @Produce      json
// @Param        id   path      string  true  "Assignment ID"
// @Success      200  {object}  domain.Assignment
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /assignments/{id} [get]
func (h *AssignmentHandler) GetDetails(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	assignment, err := h.assignmentUC.FindOne(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, assignment)
}

// UpdateAssignment godoc
// @Summary      Update an assignment
// @Description  Only supplied fields change; a supplied profileId or clientId must exist. Also served on PUT.
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        id          path      string                   true  "Assignment ID"
// @Param        assignment  body      UpdateAssignmentRequest  true  "Fields to change"
// @Success      200         {object}  domain.Assignment
// @Failure      400         {object}  response.ErrorResponse
// @Failure      404         {object}  response.ErrorResponse
// @Router       /assignments/{id} [patch]
func (h *AssignmentHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	assignment, err := h.assignmentUC.Update(c.Request.Context(), id, req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, assignment)
}

// DeleteAssignment godoc
// @Summary      Delete an assignment
// @Tags         assignments
// @Param        id   path  string  true  "Assignment ID"
// @Success      200
// @Failure      404  {object}  response.ErrorResponse
// @Router       /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.assignmentUC.Remove(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}

// AddAssignmentNote godoc
// @Summary      Add a note to an assignment
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true  "Assignment ID"
// @Param        note  body      CreateAssignmentNoteRequest  true  "Note"
// @Success      201   {object}  domain.AssignmentNote
// @Failure      400   {object}  response.ErrorResponse
// @Failure      404   {object}  response.ErrorResponse
// @Router       /assignments/{id}/notes [post]
func (h *AssignmentHandler) AddNote(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req CreateAssignmentNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.assignmentUC.AddNote(c.Request.Context(), id, &domain.AssignmentNote{
		Content: req.Content,
		Type:    req.Type,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusCreated, note)
}

// DeleteAssignmentNote godoc
// @Summary      Delete an assignment note
// @Tags         assignments
// @Param        id      path  string  true  "Assignment ID"
// @Param        noteId  path  string  true  "Note ID"
// @Success      200
// @Failure      404  {object}  response.ErrorResponse
// @Router       /assignments/{id}/notes/{noteId} [delete]
func (h *AssignmentHandler) DeleteNote(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	noteID, ok := pathUUID(c, "noteId")
	if !ok {
		return
	}

	if err := h.assignmentUC.RemoveNote(c.Request.Context(), id, noteID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}
