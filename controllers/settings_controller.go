package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/services"
)

type SettingsController struct {
	SettingsSvc *services.SettingsService
}

func NewSettingsController(svc *services.SettingsService) *SettingsController {
	return &SettingsController{SettingsSvc: svc}
}

func (ctrl *SettingsController) GetHotelSettings(c *gin.Context) {
	hotel, err := ctrl.SettingsSvc.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotel": hotel})
}

func (ctrl *SettingsController) UpdateHotelSettings(c *gin.Context) {
	var payload services.HotelSettingsInput
	if !bindJSON(c, &payload) {
		return
	}
	hotel, err := ctrl.SettingsSvc.Update(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotel": hotel})
}
