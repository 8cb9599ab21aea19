package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"notes-repository-be/internal/dto"
	"notes-repository-be/internal/entity"
	"notes-repository-be/internal/ingestion"
	"notes-repository-be/internal/pkg/logger"
	"notes-repository-be/internal/repository/specification"
	"notes-repository-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISubjectService interface {
	List(ctx context.Context) ([]*dto.SubjectResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
}

type subjectService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewSubjectService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService, log logger.ILogger) ISubjectService {
	return &subjectService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *subjectService) List(ctx context.Context) ([]*dto.SubjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	subjects, err := uow.SubjectRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
	if err != nil {
		return nil, err
	}
	return toSubjectResponses(subjects), nil
}

// Create inserts a subject as-is; names are not required to be unique.
func (s *subjectService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ingestion.ErrEmptySubjectName
	}

	createdBy := userId
	subject := &entity.Subject{
		Id:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   &createdBy,
		CreatedAt:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SubjectRepository().Create(ctx, subject); err != nil {
		return nil, err
	}

	publishSubjectCreated(ctx, s.publisherService, s.logger, subject)
	return toSubjectResponse(subject), nil
}

// publishSubjectCreated is best-effort: the subject already exists.
func publishSubjectCreated(ctx context.Context, publisher IPublisherService, log logger.ILogger, subject *entity.Subject) {
	if publisher == nil {
		return
	}
	msg := dto.CatalogEventMessage{
		Kind:       dto.CatalogKindSubject,
		Id:         subject.Id,
		Title:      subject.Name,
		OccurredAt: subject.CreatedAt,
	}
	if subject.CreatedBy != nil {
		msg.UserId = *subject.CreatedBy
	}
	publishCatalogEvent(ctx, publisher, log, msg)
}

func publishCatalogEvent(ctx context.Context, publisher IPublisherService, log logger.ILogger, msg dto.CatalogEventMessage) {
	payload, err := json.Marshal(msg)
	if err == nil {
		err = publisher.Publish(ctx, payload)
	}
	if err != nil {
		log.Warn("CATALOG", "Failed to publish catalog event", map[string]interface{}{
			"kind":  msg.Kind,
			"id":    msg.Id.String(),
			"error": err.Error(),
		})
	}
}

func toSubjectResponse(subject *entity.Subject) *dto.SubjectResponse {
	return &dto.SubjectResponse{
		Id:          subject.Id,
		Name:        subject.Name,
		Description: subject.Description,
		CreatedBy:   subject.CreatedBy,
		CreatedAt:   subject.CreatedAt,
	}
}

func toSubjectResponses(subjects []*entity.Subject) []*dto.SubjectResponse {
	res := make([]*dto.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		res = append(res, toSubjectResponse(subject))
	}
	return res
}
