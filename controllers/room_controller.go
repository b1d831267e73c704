package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grandstay-backend/models"
	"grandstay-backend/services"
	"grandstay-backend/utils"
)

type RoomController struct {
	rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{rooms: rooms}
}

// CreateRoom handles POST /api/rooms.
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var input services.CreateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	room, err := rc.rooms.Create(ctx, input)
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// ListRooms handles GET /api/rooms?type=&status=.
func (rc *RoomController) ListRooms(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	rooms, err := rc.rooms.List(ctx, c.Query("type"), models.RoomStatus(c.Query("status")))
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/:id.
func (rc *RoomController) GetRoom(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	room, err := rc.rooms.Get(ctx, id)
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// UpdateRoom handles PATCH /api/rooms/:id.
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	room, err := rc.rooms.Update(ctx, id, patch)
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DeleteRoom handles DELETE /api/rooms/:id.
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := rc.rooms.Delete(ctx, id); err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
