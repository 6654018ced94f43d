package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"profiler-backend/internal/delivery/http/response"
	"profiler-backend/internal/domain"
)

type ClientHandler struct {
	clientUC domain.ClientUsecase
}

func NewClientHandler(rg *gin.RouterGroup, clientUC domain.ClientUsecase) {
	handler := &ClientHandler{clientUC: clientUC}

	clients := rg.Group("/clients")
	{
		clients.POST("", handler.Create)
		clients.GET("", handler.List)
		clients.GET("/active", handler.Active)
		clients.GET("/industry/:industry", handler.ByIndustry)
		clients.GET("/location/:location", handler.ByLocation)
		clients.GET("/:id", handler.GetDetails)
		clients.PATCH("/:id", handler.Update)
		clients.PUT("/:id", handler.Update)
		clients.DELETE("/:id", handler.Delete)
	}
}

type CreateClientRequest struct {
	CompanyName         string                 `json:"companyName" binding:"required,not_blank,max=200"`
	Industry            string                 `json:"industry" binding:"required,not_blank,max=100"`
	Website             *string                `json:"website" binding:"omitempty,url"`
	Description         *string                `json:"description" binding:"omitempty,max=2000"`
	PrimaryContactName  string                 `json:"primaryContactName" binding:"required,not_blank,max=100"`
	PrimaryContactEmail string                 `json:"primaryContactEmail" binding:"required,email"`
	PrimaryContactPhone *string                `json:"primaryContactPhone" binding:"omitempty,valid_phone"`
	Locations           []string               `json:"locations" binding:"omitempty,dive,not_blank"`
	Status              domain.ClientStatus    `json:"status" binding:"omitempty,oneof=active inactive pending"`
	Requirements        map[string]interface{} `json:"requirements"`
	AdditionalInfo      map[string]interface{} `json:"additionalInfo"`
}

func (r CreateClientRequest) toDomain() *domain.Client {
	return &domain.Client{
		CompanyName:         strings.TrimSpace(r.CompanyName),
		Industry:            strings.TrimSpace(r.Industry),
		Website:             r.Website,
		Description:         r.Description,
		PrimaryContactName:  strings.TrimSpace(r.PrimaryContactName),
		PrimaryContactEmail: r.PrimaryContactEmail,
		PrimaryContactPhone: r.PrimaryContactPhone,
		Locations:           r.Locations,
		Status:              r.Status,
		Requirements:        r.Requirements,
		AdditionalInfo:      r.AdditionalInfo,
	}
}

// UpdateClientRequest is a partial update; absent fields keep their value.
type UpdateClientRequest struct {
	CompanyName         *string                 `json:"companyName" binding:"omitempty,not_blank,max=200"`
	Industry            *string                 `json:"industry" binding:"omitempty,not_blank,max=100"`
	Website             *string                 `json:"website" binding:"omitempty,url"`
	Description         *string                 `json:"description" binding:"omitempty,max=2000"`
	PrimaryContactName  *string                 `json:"primaryContactName" binding:"omitempty,not_blank,max=100"`
	PrimaryContactEmail *string                 `json:"primaryContactEmail" binding:"omitempty,email"`
	PrimaryContactPhone *string                 `json:"primaryContactPhone" binding:"omitempty,valid_phone"`
	Locations           *[]string               `json:"locations" binding:"omitempty,dive,not_blank"`
	Status              *domain.ClientStatus    `json:"status" binding:"omitempty,oneof=active inactive pending"`
	Requirements        *map[string]interface{} `json:"requirements"`
	AdditionalInfo      *map[string]interface{} `json:"additionalInfo"`
}

func (r UpdateClientRequest) toDomain() domain.ClientUpdate {
	return domain.ClientUpdate{
		CompanyName:         r.CompanyName,
		Industry:            r.Industry,
		Website:             r.Website,
		Description:         r.Description,
		PrimaryContactName:  r.PrimaryContactName,
		PrimaryContactEmail: r.PrimaryContactEmail,
		PrimaryContactPhone: r.PrimaryContactPhone,
		Locations:           r.Locations,
		Status:              r.Status,
		Requirements:        r.Requirements,
		AdditionalInfo:      r.AdditionalInfo,
	}
}

// CreateClient godoc
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        client  body      CreateClientRequest  true  "Client JSON"
// @Success      201     {object}  domain.Client
// @Failure      400     {object}  response.ErrorResponse
// @Router       /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientUC.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusCreated, client)
}

// ListClients godoc
// @Summary      List clients
// @Description  Returns a two-element array: the page of clients and the total ignoring the page window.
// @Tags         clients
// @Produce      json
// @Param        skip        query     int     false  "Rows to skip"
// @Param        take        query     int     false  "Page size (default 50, max 200)"
// @Param        searchTerm  query     string  false  "Substring of name, description, contact or industry"
// @Param        industry    query     string  false  "Industry substring"
// @Param        status      query     string  false  "Status"
// @Param        location    query     string  false  "One of the client's locations"
// @Success      200         {array}   object
// @Failure      400         {object}  response.ErrorResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	page, err := queryPage(c)
	if err != nil {
		c.Error(err)
		return
	}

	filter := domain.ClientFilter{
		Page:       page,
		SearchTerm: strings.TrimSpace(c.Query("searchTerm")),
		Industry:   strings.TrimSpace(c.Query("industry")),
		Status:     strings.TrimSpace(c.Query("status")),
		Location:   strings.TrimSpace(c.Query("location")),
	}

	clients, total, err := h.clientUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, []interface{}{clients, total})
}

// ActiveClients godoc
// @Summary      List active clients
// @Tags         clients
// @Produce      json
// @Success      200  {array}  domain.Client
// @Router       /clients/active [get]
func (h *ClientHandler) Active(c *gin.Context) {
	clients, err := h.clientUC.FindActiveClients(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, clients)
}

// ClientsByIndustry godoc
// @Summary      List clients by industry
// @Tags         clients
// @Produce      json
// @Param        industry  path     string  true  "Industry substring"
// @Success      200       {array}  domain.Client
// @Router       /clients/industry/{industry} [get]
func (h *ClientHandler) ByIndustry(c *gin.Context) {
	clients, err := h.clientUC.FindByIndustry(c.Request.Context(), c.Param("industry"))
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, clients)
}

// ClientsByLocation godoc
// @Summary      List clients operating in a location
// @Tags         clients
// @Produce      json
// @Param        location  path     string  true  "Location"
// @Success      200       {array}  domain.Client
// @Router       /clients/location/{location} [get]
func (h *ClientHandler) ByLocation(c *gin.Context) {
	clients, err := h.clientUC.SearchByLocation(c.Request.Context(), c.Param("location"))
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, clients)
}

// GetClient godoc
// @Summary      Get a client
// @Description  Includes assignments with their profiles.
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  domain.Client
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /clients/{id} [get]
func (h *ClientHandler) GetDetails(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientUC.FindOne(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, client)
}

// UpdateClient godoc
// @Summary      Update a client
// @Description  Only supplied fields change. Also served on PUT.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id      path      string               true  "Client ID"
// @Param        client  body      UpdateClientRequest  true  "Fields to change"
// @Success      200     {object}  domain.Client
// @Failure      400     {object}  response.ErrorResponse
// @Failure      404     {object}  response.ErrorResponse
// @Router       /clients/{id} [patch]
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientUC.Update(c.Request.Context(), id, req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, client)
}

// DeleteClient godoc
// @Summary      Delete a client
// @Description  Assignments keep a null client.
// @Tags         clients
// @Param        id   path  string  true  "Client ID"
// @Success      200
// @Failure      404  {object}  response.ErrorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.clientUC.Remove(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}
