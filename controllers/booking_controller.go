package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grandstay-backend/models"
	"grandstay-backend/services"
	"grandstay-backend/utils"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

// createBookingRequest is the transport shape; dates arrive as strings and any
// client-supplied amount fields are simply not bound.
type createBookingRequest struct {
	GuestName       string `json:"guestName" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Phone           string `json:"phone"`
	Nationality     string `json:"nationality"`
	CheckIn         string `json:"checkIn" binding:"required"`
	CheckOut        string `json:"checkOut" binding:"required"`
	RoomID          *uint  `json:"roomId"`
	RoomType        string `json:"roomType"`
	Guests          int    `json:"guests"`
	SpecialRequests string `json:"specialRequests"`
	PurposeOfVisit  string `json:"purposeOfVisit"`
	PaymentMethod   string `json:"paymentMethod"`
}

// CreateBooking handles POST /api/bookings.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	guests := req.Guests
	if guests == 0 {
		guests = 1
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	booking, err := bc.bookings.CreateBooking(ctx, services.CreateBookingInput{
		GuestName:       req.GuestName,
		Email:           req.Email,
		Phone:           req.Phone,
		Nationality:     req.Nationality,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		RoomID:          req.RoomID,
		RoomType:        req.RoomType,
		Guests:          guests,
		SpecialRequests: req.SpecialRequests,
		PurposeOfVisit:  req.PurposeOfVisit,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// ListBookings handles GET /api/bookings.
func (bc *BookingController) ListBookings(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	bookings, err := bc.bookings.ListBookings(ctx)
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/:id.
func (bc *BookingController) GetBooking(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	booking, err := bc.bookings.GetBooking(ctx, id)
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// UpdateBooking handles PATCH /api/bookings/:id with an allow-listed patch.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
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

	booking, err := bc.bookings.UpdateBookingFields(ctx, id, patch)
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// UpdateStatus handles PATCH /api/bookings/:id/status.
func (bc *BookingController) UpdateStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	booking, err := bc.bookings.UpdateStatus(ctx, id, models.BookingStatus(req.Status))
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	ctx, cancel := requestContext(c)
	defer cancel()

	booking, err := bc.bookings.CancelBooking(ctx, id, req.Reason)
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
