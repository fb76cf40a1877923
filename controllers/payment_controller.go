package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-pms/middleware"
	"hotel-pms/services"
	"hotel-pms/storage"
	"hotel-pms/utils"
)

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

// GET /api/reservations/:id/payments
func (ctrl *PaymentController) GetPayments(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	payments, err := ctrl.PaymentSvc.List(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}

// POST /api/reservations/:id/payments
// Accepts JSON, or multipart form fields with an optional "receipt" file.
func (ctrl *PaymentController) RecordPayment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var in services.PaymentInput
	var receipt *services.Receipt
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&in); err != nil {
			log.Printf("❌ FORM BINDING ERROR (400): %v", err)
			utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
			return
		}
		file, _, err := c.Request.FormFile("receipt")
		if err == nil {
			defer file.Close()
			body, contentType, err := storage.Sniff(file)
			if err != nil {
				utils.JSONError(c, http.StatusBadRequest, "Invalid receipt upload", err.Error())
				return
			}
			receipt = &services.Receipt{Body: body, ContentType: contentType}
		} else if err != http.ErrMissingFile {
			utils.JSONError(c, http.StatusBadRequest, "Invalid receipt upload", err.Error())
			return
		}
	} else if !bindJSON(c, &in) {
		return
	}

	payment, err := ctrl.PaymentSvc.Record(c.Request.Context(), id, in, receipt, middleware.StaffUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}
