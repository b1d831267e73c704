package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grandstay-backend/services"
	"grandstay-backend/utils"
)

type InquiryController struct {
	inquiries *services.InquiryService
}

func NewInquiryController(inquiries *services.InquiryService) *InquiryController {
	return &InquiryController{inquiries: inquiries}
}

// CreateInquiry handles POST /api/inquiries.
func (ic *InquiryController) CreateInquiry(c *gin.Context) {
	var input services.CreateInquiryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	inquiry, err := ic.inquiries.Create(ctx, input)
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, inquiry)
}

// ListInquiries handles GET /api/inquiries.
func (ic *InquiryController) ListInquiries(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	inquiries, err := ic.inquiries.List(ctx)
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, inquiries)
}

// ReplyToInquiry handles POST /api/inquiries/:id/reply.
func (ic *InquiryController) ReplyToInquiry(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Reply string `json:"reply" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "reply is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	inquiry, err := ic.inquiries.Reply(ctx, id, req.Reply)
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, inquiry)
}
