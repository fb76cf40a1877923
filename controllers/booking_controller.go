package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/middleware"
	"hotel-pms/services"
	"hotel-pms/utils"
)

// BookingController serves the three steps of the booking wizard.
type BookingController struct {
	ReservationSvc *services.ReservationService
}

func NewBookingController(svc *services.ReservationService) *BookingController {
	return &BookingController{ReservationSvc: svc}
}

// POST /api/booking/availability
func (ctrl *BookingController) Availability(c *gin.Context) {
	var req services.StayRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := ctrl.ReservationSvc.Availability(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// POST /api/booking/quote
func (ctrl *BookingController) Quote(c *gin.Context) {
	var req services.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := ctrl.ReservationSvc.Quote(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// POST /api/booking/confirm
func (ctrl *BookingController) Confirm(c *gin.Context) {
	var req services.ConfirmRequest
	if !bindJSON(c, &req) {
		return
	}
	detail, err := ctrl.ReservationSvc.Book(c.Request.Context(), req, middleware.StaffUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("✅ Reservation %s booked by %s", detail.ReferenceCode, middleware.StaffUsername(c))
	utils.JSONSuccess(c, http.StatusCreated, detail)
}
