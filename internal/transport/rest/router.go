package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
	"gitlab.crja72.ru/gospec/go5/reservations/pkg/logger"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

type handlers struct {
	logger     logger.Logger
	interactor *reservations.Interactor
}

func NewRouter(l logger.Logger, interactor *reservations.Interactor) *gin.Engine {
	h := &handlers{logger: l, interactor: interactor}

	router := gin.New()
	router.Use(gin.Recovery(), requestContext(l))

	api := router.Group("/api")
	{
		admin := api.Group("/admin")
		admin.POST("/login", h.login)
		admin.POST("/logout", h.logout)

		rooms := api.Group("/rooms")
		rooms.GET("", h.listRooms)
		rooms.POST("", h.addRoom)
		rooms.PUT("/:name", h.updateRoom)
		rooms.DELETE("/:name", h.removeRoom)

		res := api.Group("/reservations")
		res.GET("", h.listReservations)
		res.POST("", h.reserve)
		res.DELETE("/:id", h.cancelReservation)

		api.GET("/reports/:date", h.dayReport)
	}

	return router
}

// requestContext stores a request id and the logger in the request context
// and logs each request once it is served.
func requestContext(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		l.Debug(ctx, "http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, reservations.ErrAuthFailed):
		return http.StatusUnauthorized
	case errors.Is(err, reservations.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, reservations.ErrRoomNotFound), errors.Is(err, reservations.ErrReservationNotFound):
		return http.StatusNotFound
	case errors.Is(err, reservations.ErrRoomExists), errors.Is(err, reservations.ErrSlotTaken):
		return http.StatusConflict
	case errors.Is(err, reservations.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) fail(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "request failed", zap.Error(err))
	}

	c.JSON(code, gin.H{"success": false, "error": err.Error()})
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.interactor.AdminLogin(c.Request.Context(), req.ID, req.Password); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handlers) logout(c *gin.Context) {
	h.interactor.AdminLogout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handlers) listRooms(c *gin.Context) {
	rooms, err := h.interactor.GetRooms(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": rooms, "count": len(rooms)})
}

func (h *handlers) addRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.interactor.AdminAddRoom(c.Request.Context(), req.Name); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": reservations.Room{Name: strings.TrimSpace(req.Name)}})
}

func (h *handlers) updateRoom(c *gin.Context) {
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	room, err := h.interactor.AdminUpdateRoom(c.Request.Context(), c.Param("name"), reservations.RoomUpdate{
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": room})
}

func (h *handlers) removeRoom(c *gin.Context) {
	if err := h.interactor.AdminRemoveRoom(c.Request.Context(), c.Param("name")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handlers) listReservations(c *gin.Context) {
	var query reservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	list, err := h.interactor.GetReservations(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	if query.Date != "" {
		filtered := make([]reservations.Reservation, 0, len(list))
		for _, r := range list {
			if r.Date == query.Date {
				filtered = append(filtered, r)
			}
		}
		list = filtered
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": list, "count": len(list)})
}

func (h *handlers) reserve(c *gin.Context) {
	var req reserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	repeat, err := reservations.ParseRepeat(req.RepeatType)
	if err != nil {
		h.fail(c, err)
		return
	}

	count := req.RepeatCount
	if count == 0 {
		count = 1
	}

	created, err := h.interactor.ReserveRepeating(c.Request.Context(), reservations.ReservationRequest{
		Place: req.Place,
		Date:  req.Date,
		Time:  req.Time,
		Name:  req.Name,
	}, repeat, count)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created, "count": len(created)})
}

func (h *handlers) cancelReservation(c *gin.Context) {
	if err := h.interactor.CancelReservation(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handlers) dayReport(c *gin.Context) {
	report, err := h.interactor.ReservationsByDay(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}
