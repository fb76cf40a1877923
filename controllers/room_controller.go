package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/storage"
	"hotel-pms/utils"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

// GET /api/rooms?status=
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	room, err := ctrl.RoomSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var in services.RoomInput
	if !bindJSON(c, &in) {
		return
	}
	room, err := ctrl.RoomSvc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("✅ Room %s created (id=%d)", room.RoomNumber, room.ID)
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in services.RoomInput
	if !bindJSON(c, &in) {
		return
	}
	room, err := ctrl.RoomSvc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

type roomStatusPayload struct {
	Status models.RoomStatus `json:"status" binding:"required"`
}

// PATCH /api/rooms/:id/status
func (ctrl *RoomController) UpdateRoomStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var p roomStatusPayload
	if !bindJSON(c, &p) {
		return
	}
	room, err := ctrl.RoomSvc.UpdateStatus(c.Request.Context(), id, p.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ctrl.RoomSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Room deleted successfully",
	})
}

// POST /api/rooms/:id/photos (multipart field "photo")
func (ctrl *RoomController) UploadPhoto(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "photo file is required", err.Error())
		return
	}
	defer file.Close()

	body, contentType, err := storage.Sniff(file)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid photo upload", err.Error())
		return
	}
	if declared := header.Header.Get("Content-Type"); declared != "" && declared != contentType {
		log.Printf("⚠️ Photo for room %d declared %s, detected %s", id, declared, contentType)
	}

	room, err := ctrl.RoomSvc.AddPhoto(c.Request.Context(), id, body, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}
