package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-pms/middleware"
	"hotel-pms/pricing"
	"hotel-pms/services"
	"hotel-pms/utils"
)

const defaultCalendarDays = 14

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

// GET /api/reservations?status=&q=
func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	list, err := ctrl.ReservationSvc.List(c.Request.Context(), services.ReservationFilter{
		Status: c.Query("status"),
		Query:  c.Query("q"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *ReservationController) GetReservation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	detail, err := ctrl.ReservationSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, detail)
}

type transitionFunc func(ctx context.Context, id uint, performedBy string) (*services.ReservationDetail, error)

func (ctrl *ReservationController) runTransition(c *gin.Context, fn transitionFunc) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	detail, err := fn(c.Request.Context(), id, middleware.StaffUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, detail)
}

// POST /api/reservations/:id/confirm
func (ctrl *ReservationController) Confirm(c *gin.Context) {
	ctrl.runTransition(c, ctrl.ReservationSvc.Confirm)
}

// POST /api/reservations/:id/check-in
func (ctrl *ReservationController) CheckIn(c *gin.Context) {
	ctrl.runTransition(c, ctrl.ReservationSvc.CheckIn)
}

// POST /api/reservations/:id/check-out
func (ctrl *ReservationController) CheckOut(c *gin.Context) {
	ctrl.runTransition(c, ctrl.ReservationSvc.CheckOut)
}

type cancelPayload struct {
	Reason string `json:"reason"`
}

// POST /api/reservations/:id/cancel
func (ctrl *ReservationController) Cancel(c *gin.Context) {
	var p cancelPayload
	if !bindJSON(c, &p) {
		return
	}
	ctrl.runTransition(c, func(ctx context.Context, id uint, by string) (*services.ReservationDetail, error) {
		return ctrl.ReservationSvc.Cancel(ctx, id, p.Reason, by)
	})
}

type changeRoomPayload struct {
	RoomID uint `json:"room_id" binding:"required"`
}

// PUT /api/reservations/:id/room
func (ctrl *ReservationController) ChangeRoom(c *gin.Context) {
	var p changeRoomPayload
	if !bindJSON(c, &p) {
		return
	}
	ctrl.runTransition(c, func(ctx context.Context, id uint, by string) (*services.ReservationDetail, error) {
		return ctrl.ReservationSvc.ChangeRoom(ctx, id, p.RoomID, by)
	})
}

// GET /api/calendar?from=&to=
// from defaults to today and to to two weeks after from.
func (ctrl *ReservationController) Calendar(c *gin.Context) {
	from := pricing.Day(time.Now())
	if raw := c.Query("from"); raw != "" {
		d, err := utils.ParseDate(raw)
		if err != nil {
			respondError(c, pricing.NewValidationError("from", err.Error()))
			return
		}
		from = d
	}
	to := from.AddDate(0, 0, defaultCalendarDays)
	if raw := c.Query("to"); raw != "" {
		d, err := utils.ParseDate(raw)
		if err != nil {
			respondError(c, pricing.NewValidationError("to", err.Error()))
			return
		}
		to = d
	}

	rows, err := ctrl.ReservationSvc.Calendar(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"from":   from.Format(utils.DateLayout),
		"to":     to.Format(utils.DateLayout),
		"data":   rows,
	})
}
