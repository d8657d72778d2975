package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/ideascore-backend/internal/data/repos/activity"
	"github.com/yungbote/ideascore-backend/internal/data/repos/ideas"
	"github.com/yungbote/ideascore-backend/internal/data/repos/scoring"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type CriteriaRepo = scoring.CriteriaRepo
type ScoreRepo = scoring.ScoreRepo

type IdeaRepo = ideas.IdeaRepo
type IdeaComparisonRepo = ideas.IdeaComparisonRepo

type ActivityRepo = activity.ActivityRepo

func NewCriteriaRepo(db *gorm.DB, baseLog *logger.Logger) CriteriaRepo {
	return scoring.NewCriteriaRepo(db, baseLog)
}
func NewScoreRepo(db *gorm.DB, baseLog *logger.Logger) ScoreRepo {
	return scoring.NewScoreRepo(db, baseLog)
}

func NewIdeaRepo(db *gorm.DB, baseLog *logger.Logger) IdeaRepo { return ideas.NewIdeaRepo(db, baseLog) }
func NewIdeaComparisonRepo(db *gorm.DB, baseLog *logger.Logger) IdeaComparisonRepo {
	return ideas.NewIdeaComparisonRepo(db, baseLog)
}

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	return activity.NewActivityRepo(db, baseLog)
}
