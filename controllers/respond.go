package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-pms/pricing"
	"hotel-pms/services"
	"hotel-pms/utils"
)

// respondError maps service errors onto status codes and the shared envelope.
func respondError(c *gin.Context, err error) {
	var (
		verr *pricing.ValidationError
		aerr *pricing.AvailabilityError
		cerr *services.ConflictError
		terr *services.TransitionError
	)
	switch {
	case errors.As(err, &verr):
		log.Printf("❌ VALIDATION ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", verr.Fields)
	case errors.As(err, &aerr):
		log.Printf("❌ AVAILABILITY ERROR (409): %v", err)
		utils.JSONError(c, http.StatusConflict, "Room not available", gin.H{"room_id": aerr.RoomID, "reason": aerr.Reason})
	case errors.As(err, &cerr):
		log.Printf("❌ CONFLICT (409): %v", err)
		utils.JSONError(c, http.StatusConflict, cerr.Message, nil)
	case errors.As(err, &terr):
		log.Printf("❌ INVALID TRANSITION (409): %v", err)
		utils.JSONError(c, http.StatusConflict, terr.Error(), gin.H{"from": terr.From, "to": terr.To})
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", nil)
	default:
		log.Printf("❌ INTERNAL ERROR (500): %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return false
	}
	return true
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid id", c.Param("id"))
		return 0, false
	}
	return uint(id), true
}
