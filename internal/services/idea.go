package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ideascore-backend/internal/data/repos"
	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/observability"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type CreateIdeaInput struct {
	UserID      uuid.UUID
	Title       string
	Description string
}

// IdeaService is the minimal idea store the scoring engine reads from.
type IdeaService interface {
	Create(dbc dbctx.Context, in CreateIdeaInput) (*types.Idea, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.Idea, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Idea, error)
}

type ideaService struct {
	log      *logger.Logger
	obs      opObserver
	ideaRepo repos.IdeaRepo
	activity ActivityService
}

func NewIdeaService(log *logger.Logger, metrics *observability.Metrics, ideaRepo repos.IdeaRepo, activity ActivityService) IdeaService {
	serviceLog := log.With("service", "IdeaService")
	return &ideaService{
		log:      serviceLog,
		obs:      opObserver{log: serviceLog, metrics: metrics},
		ideaRepo: ideaRepo,
		activity: activity,
	}
}

func (s *ideaService) Create(dbc dbctx.Context, in CreateIdeaInput) (out *types.Idea, err error) {
	const op = "idea.create"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "user_id", in.UserID, "title", in.Title)
	}(time.Now())

	if err := requireID(op, "user_id", in.UserID); err != nil {
		return nil, err
	}
	if err := requireOwner(dbc.Ctx, op, in.UserID); err != nil {
		return nil, err
	}
	if err := validateName(op, "title", in.Title); err != nil {
		return nil, err
	}
	out = &types.Idea{
		UserID:      in.UserID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Status:      types.IdeaStatusDraft,
	}
	if _, err := s.ideaRepo.Create(dbc, []*types.Idea{out}); err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}
	s.activity.Record(dbc, ActivityEntry{
		EntityType:  types.EntityIdea,
		EntityID:    out.ID,
		ActionType:  types.ActionCreated,
		Description: fmt.Sprintf("Created idea %q", out.Title),
		UserID:      out.UserID,
	})
	return out, nil
}

func (s *ideaService) Get(dbc dbctx.Context, id uuid.UUID) (*types.Idea, error) {
	row, err := s.ideaRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load idea: %w", err)
	}
	if row == nil {
		return nil, types.NotFound("idea.get", "idea %s not found", id)
	}
	return row, nil
}

func (s *ideaService) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Idea, error) {
	rows, err := s.ideaRepo.ListByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	return rows, nil
}
