package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ideascore-backend/internal/data/repos"
	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/observability"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type CreateCriterionInput struct {
	UserID      uuid.UUID
	Name        string
	Description *string
	Weight      int
	IsDefault   bool
	Order       int
}

// CriterionPatch changes only the non-nil fields.
type CriterionPatch struct {
	Name        *string
	Description *string
	Weight      *int
	IsDefault   *bool
	Order       *int
}

type OrderUpdate struct {
	CriteriaID uuid.UUID
	Order      int
}

type defaultCriterion struct {
	Name        string
	Description string
	Weight      int
}

// defaultCatalog is seeded in this order with order values 1..8.
var defaultCatalog = []defaultCriterion{
	{Name: "Market Size", Description: "Size of the addressable market", Weight: 8},
	{Name: "Technical Feasibility", Description: "How realistic it is to build with current capabilities", Weight: 7},
	{Name: "Competitive Advantage", Description: "Strength of differentiation against alternatives", Weight: 6},
	{Name: "Revenue Potential", Description: "Expected revenue if the idea succeeds", Weight: 9},
	{Name: "Time to Market", Description: "How quickly it can ship", Weight: 5},
	{Name: "Resource Requirements", Description: "People, budget and tooling needed", Weight: 6},
	{Name: "Customer Demand", Description: "Evidence that customers want it", Weight: 8},
	{Name: "Strategic Fit", Description: "Alignment with company direction", Weight: 7},
}

type CriteriaService interface {
	Create(dbc dbctx.Context, in CreateCriterionInput) (*types.Criterion, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.Criterion, error)
	Update(dbc dbctx.Context, id uuid.UUID, patch CriterionPatch) (*types.Criterion, error)
	// Delete removes the criterion and every score referencing it, returning
	// how many scores went with it.
	Delete(dbc dbctx.Context, id uuid.UUID) (int64, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Criterion, error)
	ListDefaults(dbc dbctx.Context) ([]*types.Criterion, error)
	Reorder(dbc dbctx.Context, updates []OrderUpdate) error
	SeedDefaults(dbc dbctx.Context, userID uuid.UUID) ([]*types.Criterion, error)
	Duplicate(dbc dbctx.Context, sourceID, targetUserID uuid.UUID) (*types.Criterion, error)
	CopyAll(dbc dbctx.Context, sourceUserID, targetUserID uuid.UUID) ([]*types.Criterion, error)
}

type criteriaService struct {
	db           *gorm.DB
	log          *logger.Logger
	obs          opObserver
	criteriaRepo repos.CriteriaRepo
	scoreRepo    repos.ScoreRepo
	activity     ActivityService
}

func NewCriteriaService(
	db *gorm.DB,
	log *logger.Logger,
	metrics *observability.Metrics,
	criteriaRepo repos.CriteriaRepo,
	scoreRepo repos.ScoreRepo,
	activity ActivityService,
) CriteriaService {
	serviceLog := log.With("service", "CriteriaService")
	return &criteriaService{
		db:           db,
		log:          serviceLog,
		obs:          opObserver{log: serviceLog, metrics: metrics},
		criteriaRepo: criteriaRepo,
		scoreRepo:    scoreRepo,
		activity:     activity,
	}
}

func (s *criteriaService) Create(dbc dbctx.Context, in CreateCriterionInput) (out *types.Criterion, err error) {
	const op = "criteria.create"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "user_id", in.UserID, "name", in.Name, "weight", in.Weight)
	}(time.Now())

	if err := requireID(op, "user_id", in.UserID); err != nil {
		return nil, err
	}
	if err := requireOwner(dbc.Ctx, op, in.UserID); err != nil {
		return nil, err
	}
	if err := validateName(op, "name", in.Name); err != nil {
		return nil, err
	}
	if err := validateWeight(op, in.Weight); err != nil {
		return nil, err
	}

	row := &types.Criterion{
		UserID:      in.UserID,
		Name:        strings.TrimSpace(in.Name),
		Description: trimPtr(in.Description),
		Weight:      in.Weight,
		IsDefault:   in.IsDefault,
		Order:       in.Order,
	}
	if _, err := s.criteriaRepo.Create(dbc, []*types.Criterion{row}); err != nil {
		return nil, fmt.Errorf("create criterion: %w", err)
	}
	s.activity.Record(dbc, ActivityEntry{
		EntityType:  types.EntityCriterion,
		EntityID:    row.ID,
		ActionType:  types.ActionCreated,
		Description: fmt.Sprintf("Created criterion %q", row.Name),
		UserID:      row.UserID,
		Metadata:    map[string]any{"weight": row.Weight, "order": row.Order},
	})
	return row, nil
}

func (s *criteriaService) Get(dbc dbctx.Context, id uuid.UUID) (*types.Criterion, error) {
	return s.mustGet(dbc, "criteria.get", id)
}

func (s *criteriaService) mustGet(dbc dbctx.Context, op string, id uuid.UUID) (*types.Criterion, error) {
	row, err := s.criteriaRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load criterion: %w", err)
	}
	if row == nil {
		return nil, types.NotFound(op, "criterion %s not found", id)
	}
	return row, nil
}

func (s *criteriaService) Update(dbc dbctx.Context, id uuid.UUID, patch CriterionPatch) (out *types.Criterion, err error) {
	const op = "criteria.update"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "criteria_id", id)
	}(time.Now())

	existing, err := s.mustGet(dbc, op, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(dbc.Ctx, op, existing.UserID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.Name != nil {
		if err := validateName(op, "name", *patch.Name); err != nil {
			return nil, err
		}
		updates["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		updates["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.Weight != nil {
		if err := validateWeight(op, *patch.Weight); err != nil {
			return nil, err
		}
		updates["weight"] = *patch.Weight
	}
	if patch.IsDefault != nil {
		updates["is_default"] = *patch.IsDefault
	}
	if patch.Order != nil {
		updates["sort_order"] = *patch.Order
	}

	changed := make([]string, 0, len(updates))
	for k := range updates {
		changed = append(changed, k)
	}
	if err := s.criteriaRepo.UpdateFields(dbc, id, updates); err != nil {
		return nil, fmt.Errorf("update criterion: %w", err)
	}
	out, err = s.mustGet(dbc, op, id)
	if err != nil {
		return nil, err
	}
	s.activity.Record(dbc, ActivityEntry{
		EntityType:  types.EntityCriterion,
		EntityID:    id,
		ActionType:  types.ActionUpdated,
		Description: fmt.Sprintf("Updated criterion %q", out.Name),
		UserID:      out.UserID,
		Metadata:    map[string]any{"fields": changed},
	})
	return out, nil
}

func (s *criteriaService) Delete(dbc dbctx.Context, id uuid.UUID) (deleted int64, err error) {
	const op = "criteria.delete"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "criteria_id", id)
	}(time.Now())

	var owner uuid.UUID
	var name string
	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		existing, err := s.mustGet(inner, op, id)
		if err != nil {
			return err
		}
		if err := requireOwner(inner.Ctx, op, existing.UserID); err != nil {
			return err
		}
		owner, name = existing.UserID, existing.Name
		n, err := s.scoreRepo.DeleteByCriteriaID(inner, id)
		if err != nil {
			return fmt.Errorf("delete scores for criterion: %w", err)
		}
		if err := s.criteriaRepo.FullDeleteByIDs(inner, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("delete criterion: %w", err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.activity.Record(dbc, ActivityEntry{
		EntityType:  types.EntityCriterion,
		EntityID:    id,
		ActionType:  types.ActionDeleted,
		Description: fmt.Sprintf("Deleted criterion %q", name),
		UserID:      owner,
		Metadata:    map[string]any{"deleted_scores": deleted},
	})
	return deleted, nil
}

func (s *criteriaService) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Criterion, error) {
	rows, err := s.criteriaRepo.ListByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("list criteria: %w", err)
	}
	return rows, nil
}

func (s *criteriaService) ListDefaults(dbc dbctx.Context) ([]*types.Criterion, error) {
	rows, err := s.criteriaRepo.ListDefaults(dbc)
	if err != nil {
		return nil, fmt.Errorf("list default criteria: %w", err)
	}
	return rows, nil
}

func (s *criteriaService) Reorder(dbc dbctx.Context, updates []OrderUpdate) (err error) {
	const op = "criteria.reorder"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "count", len(updates))
	}(time.Now())

	if len(updates) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(updates))
	for _, u := range updates {
		if err := requireID(op, "criteria_id", u.CriteriaID); err != nil {
			return err
		}
		ids = append(ids, u.CriteriaID)
	}

	var owner uuid.UUID
	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		rows, err := s.criteriaRepo.GetByIDs(inner, ids)
		if err != nil {
			return fmt.Errorf("load criteria: %w", err)
		}
		byID := make(map[uuid.UUID]*types.Criterion, len(rows))
		for _, r := range rows {
			byID[r.ID] = r
		}
		for _, u := range updates {
			c := byID[u.CriteriaID]
			if c == nil {
				return types.NotFound(op, "criterion %s not found", u.CriteriaID)
			}
			if err := requireOwner(inner.Ctx, op, c.UserID); err != nil {
				return err
			}
			owner = c.UserID
			if err := s.criteriaRepo.UpdateFields(inner, u.CriteriaID, map[string]any{"sort_order": u.Order}); err != nil {
				return fmt.Errorf("reorder criterion %s: %w", u.CriteriaID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.activity.Record(dbc, ActivityEntry{
		EntityType:  types.EntityCriterion,
		EntityID:    updates[0].CriteriaID,
		ActionType:  types.ActionReordered,
		Description: fmt.Sprintf("Reordered %d criteria", len(updates)),
		UserID:      owner,
		Metadata:    map[string]any{"count": len(updates)},
	})
	return nil
}

// SeedDefaults gives userID the standard catalog. The seeded rows are the
// user's own and carry is_default=false; ListDefaults is a separate list.
func (s *criteriaService) SeedDefaults(dbc dbctx.Context, userID uuid.UUID) (out []*types.Criterion, err error) {
	const op = "criteria.seed_defaults"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "target_user_id", userID)
	}(time.Now())

	if err := requireID(op, "user_id", userID); err != nil {
		return nil, err
	}
	if err := requireOwner(dbc.Ctx, op, userID); err != nil {
		return nil, err
	}

	rows := make([]*types.Criterion, 0, len(defaultCatalog))
	for i, d := range defaultCatalog {
		rows = append(rows, &types.Criterion{
			UserID:      userID,
			Name:        d.Name,
			Description: ptrString(d.Description),
			Weight:      d.Weight,
			IsDefault:   false,
			Order:       i + 1,
		})
	}
	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		if _, err := s.criteriaRepo.Create(inner, rows); err != nil {
			return fmt.Errorf("seed default criteria: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.activity.Record(dbc, ActivityEntry{
		EntityType:  types.EntityCriterion,
		EntityID:    rows[0].ID,
		ActionType:  types.ActionSeeded,
		Description: fmt.Sprintf("Seeded %d default criteria", len(rows)),
		UserID:      userID,
		Metadata:    map[string]any{"count": len(rows)},
	})
	return rows, nil
}

func (s *criteriaService) Duplicate(dbc dbctx.Context, sourceID, targetUserID uuid.UUID) (out *types.Criterion, err error) {
	const op = "criteria.duplicate"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "criteria_id", sourceID, "target_user_id", targetUserID)
	}(time.Now())

	if err := requireID(op, "target_user_id", targetUserID); err != nil {
		return nil, err
	}
	if err := requireOwner(dbc.Ctx, op, targetUserID); err != nil {
		return nil, err
	}
	src, err := s.mustGet(dbc, op, sourceID)
	if err != nil {
		return nil, err
	}
	out = copyCriterion(src, targetUserID)
	if _, err := s.criteriaRepo.Create(dbc, []*types.Criterion{out}); err != nil {
		return nil, fmt.Errorf("duplicate criterion: %w", err)
	}
	s.activity.Record(dbc, ActivityEntry{
		EntityType:  types.EntityCriterion,
		EntityID:    out.ID,
		ActionType:  types.ActionDuplicated,
		Description: fmt.Sprintf("Duplicated criterion %q", out.Name),
		UserID:      targetUserID,
		Metadata:    map[string]any{"source_criteria_id": sourceID.String()},
	})
	return out, nil
}

// CopyAll copies every criterion of sourceUserID to targetUserID in one
// transaction, preserving order.
func (s *criteriaService) CopyAll(dbc dbctx.Context, sourceUserID, targetUserID uuid.UUID) (out []*types.Criterion, err error) {
	const op = "criteria.copy_all"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "source_user_id", sourceUserID, "target_user_id", targetUserID)
	}(time.Now())

	if err := requireID(op, "source_user_id", sourceUserID); err != nil {
		return nil, err
	}
	if err := requireID(op, "target_user_id", targetUserID); err != nil {
		return nil, err
	}
	if err := requireOwner(dbc.Ctx, op, targetUserID); err != nil {
		return nil, err
	}

	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		src, err := s.criteriaRepo.ListByUserID(inner, sourceUserID)
		if err != nil {
			return fmt.Errorf("load source criteria: %w", err)
		}
		out = make([]*types.Criterion, 0, len(src))
		for _, c := range src {
			out = append(out, copyCriterion(c, targetUserID))
		}
		if _, err := s.criteriaRepo.Create(inner, out); err != nil {
			return fmt.Errorf("copy criteria: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) > 0 {
		s.activity.Record(dbc, ActivityEntry{
			EntityType:  types.EntityCriterion,
			EntityID:    out[0].ID,
			ActionType:  types.ActionCopied,
			Description: fmt.Sprintf("Copied %d criteria", len(out)),
			UserID:      targetUserID,
			Metadata:    map[string]any{"count": len(out), "source_user_id": sourceUserID.String()},
		})
	}
	return out, nil
}

func copyCriterion(src *types.Criterion, owner uuid.UUID) *types.Criterion {
	var desc *string
	if src.Description != nil {
		desc = ptrString(*src.Description)
	}
	return &types.Criterion{
		UserID:      owner,
		Name:        src.Name,
		Description: desc,
		Weight:      src.Weight,
		IsDefault:   false,
		Order:       src.Order,
	}
}
