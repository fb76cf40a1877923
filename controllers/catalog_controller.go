package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type CatalogController struct {
	CatalogSvc *services.CatalogService
}

func NewCatalogController(svc *services.CatalogService) *CatalogController {
	return &CatalogController{CatalogSvc: svc}
}

// GET /api/services
func (ctrl *CatalogController) GetServices(c *gin.Context) {
	list, err := ctrl.CatalogSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/amenities
func (ctrl *CatalogController) GetAmenities(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, models.Amenities)
}
