package handler

import (
	"net/http"
	"time"

	"go-gin-comedy-tickets/internal/middleware"
	"go-gin-comedy-tickets/internal/model"
	"go-gin-comedy-tickets/internal/service"

	"github.com/gin-gonic/gin"
)

type ShowHandler struct {
	service service.ShowService
}

func NewShowHandler(service service.ShowService) *ShowHandler {
	return &ShowHandler{service: service}
}

func (h *ShowHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("shows", h.ListShows)
		router.GET("shows/:uuid", h.GetShow)
		router.POST("shows", h.CreateShow)
		router.PUT("shows/:uuid", h.UpdateShow)
		router.DELETE("shows/:uuid", h.DeleteShow)
		router.POST("shows/:uuid/publish", h.PublishShow)
		router.POST("shows/:uuid/unpublish", h.UnpublishShow)
		router.GET("shows/:uuid/availability", h.GetAvailability)
	}
}

type createShowRequest struct {
	Title        string    `json:"title" binding:"required,notblank"`
	Description  *string   `json:"description"`
	Date         time.Time `json:"date" binding:"required"`
	Venue        string    `json:"venue" binding:"required,notblank"`
	MapLink      *string   `json:"map_link" binding:"omitempty,url"`
	TicketPrice  int       `json:"ticket_price"`
	TotalTickets int       `json:"total_tickets"`
	PosterURL    *string   `json:"poster_url" binding:"omitempty,url"`
	MediaLinks   []string  `json:"media_links" binding:"omitempty,dive,url"`
	ComedianIDs  []int     `json:"comedian_ids" binding:"omitempty,dive,gt=0"`
}

func (r createShowRequest) params() model.CreateShowParams {
	return model.CreateShowParams{
		Title:        r.Title,
		Description:  r.Description,
		Date:         r.Date,
		Venue:        r.Venue,
		MapLink:      r.MapLink,
		TicketPrice:  r.TicketPrice,
		TotalTickets: r.TotalTickets,
		PosterURL:    r.PosterURL,
		MediaLinks:   r.MediaLinks,
		ComedianIDs:  r.ComedianIDs,
	}
}

// updateShowRequest 只更新有帶的欄位
type updateShowRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Date         *time.Time `json:"date"`
	Venue        *string    `json:"venue"`
	MapLink      *string    `json:"map_link" binding:"omitempty,url"`
	TicketPrice  *int       `json:"ticket_price"`
	TotalTickets *int       `json:"total_tickets"`
	PosterURL    *string    `json:"poster_url" binding:"omitempty,url"`
	MediaLinks   []string   `json:"media_links" binding:"omitempty,dive,url"`
	ComedianIDs  *[]int     `json:"comedian_ids"`
}

func (r updateShowRequest) params() model.UpdateShowParams {
	p := model.UpdateShowParams{
		Title:        r.Title,
		Description:  r.Description,
		Date:         r.Date,
		Venue:        r.Venue,
		MapLink:      r.MapLink,
		TicketPrice:  r.TicketPrice,
		TotalTickets: r.TotalTickets,
		PosterURL:    r.PosterURL,
		MediaLinks:   r.MediaLinks,
	}
	if r.ComedianIDs != nil {
		p.SetComedians = true
		p.ComedianIDs = *r.ComedianIDs
	}
	return p
}

type listShowsQuery struct {
	Mode   string `form:"mode" binding:"omitempty,oneof=public discovery manage"`
	Search string `form:"q"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

func (h *ShowHandler) CreateShow(c *gin.Context) {
	var req createShowRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.CreateShow(c, middleware.ActorFromContext(c), req.params())
	if err != nil {
		handleError(c, err, "CreateShow")
		return
	}

	handleSuccess(c, created, http.StatusCreated)
}

func (h *ShowHandler) ListShows(c *gin.Context) {
	var query listShowsQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	shows, err := h.service.ListShows(c, middleware.ActorFromContext(c), model.ListShowsParams{
		Mode:   model.ListMode(query.Mode),
		Search: query.Search,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		handleError(c, err, "ListShows")
		return
	}

	handleSuccess(c, shows, http.StatusOK)
}

func (h *ShowHandler) GetShow(c *gin.Context) {
	showID, ok := parseShowID(c)
	if !ok {
		return
	}

	show, err := h.service.GetShow(c, showID, middleware.ActorFromContext(c))
	if err != nil {
		handleError(c, err, "GetShow")
		return
	}

	handleSuccess(c, show, http.StatusOK)
}

func (h *ShowHandler) UpdateShow(c *gin.Context) {
	showID, ok := parseShowID(c)
	if !ok {
		return
	}
	var req updateShowRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.UpdateShow(c, showID, middleware.ActorFromContext(c), req.params())
	if err != nil {
		handleError(c, err, "UpdateShow")
		return
	}

	handleSuccess(c, updated, http.StatusOK)
}

func (h *ShowHandler) DeleteShow(c *gin.Context) {
	showID, ok := parseShowID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteShow(c, showID, middleware.ActorFromContext(c)); err != nil {
		handleError(c, err, "DeleteShow")
		return
	}

	handleSuccess(c, nil, http.StatusNoContent)
}

func (h *ShowHandler) PublishShow(c *gin.Context) {
	showID, ok := parseShowID(c)
	if !ok {
		return
	}

	show, err := h.service.PublishShow(c, showID, middleware.ActorFromContext(c))
	if err != nil {
		handleError(c, err, "PublishShow")
		return
	}

	handleSuccess(c, show, http.StatusOK)
}

func (h *ShowHandler) UnpublishShow(c *gin.Context) {
	showID, ok := parseShowID(c)
	if !ok {
		return
	}

	show, err := h.service.UnpublishShow(c, showID, middleware.ActorFromContext(c))
	if err != nil {
		handleError(c, err, "UnpublishShow")
		return
	}

	handleSuccess(c, show, http.StatusOK)
}

func (h *ShowHandler) GetAvailability(c *gin.Context) {
	showID, ok := parseShowID(c)
	if !ok {
		return
	}

	availability, err := h.service.GetAvailability(c, showID, middleware.ActorFromContext(c))
	if err != nil {
		handleError(c, err, "GetAvailability")
		return
	}

	handleSuccess(c, availability, http.StatusOK)
}
