package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"grandstay-backend/failure"
	"grandstay-backend/models"
	"grandstay-backend/repository"
)

// InquiryService is thin create/list/reply CRUD over contact messages.
type InquiryService struct {
	inquiries repository.InquiryRepository
	log       zerolog.Logger
}

func NewInquiryService(inquiries repository.InquiryRepository, log zerolog.Logger) *InquiryService {
	return &InquiryService{
		inquiries: inquiries,
		log:       log.With().Str("service", "inquiries").Logger(),
	}
}

type CreateInquiryInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (s *InquiryService) Create(ctx context.Context, input CreateInquiryInput) (*models.Inquiry, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, failure.BadRequest("name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, failure.BadRequest("email is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, failure.BadRequest("message is required")
	}

	inquiry := &models.Inquiry{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Subject: strings.TrimSpace(input.Subject),
		Message: input.Message,
		Status:  models.InquiryStatusNew,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (s *InquiryService) List(ctx context.Context) ([]models.Inquiry, error) {
	return s.inquiries.List(ctx)
}

func (s *InquiryService) Reply(ctx context.Context, id uint, reply string) (*models.Inquiry, error) {
	if strings.TrimSpace(reply) == "" {
		return nil, failure.BadRequest("reply is required")
	}
	return s.inquiries.Update(ctx, id, map[string]interface{}{
		"reply":  reply,
		"status": models.InquiryStatusReplied,
	})
}
