package services

import (
	"context"
	"errors"
	"time"

	"api/metrics"
	"api/models"

	"gorm.io/gorm"
)

// ContestStore is the persistence surface the resolver and the sync engine
// depend on. Lookups that find nothing return (nil, nil); errors are
// reserved for store failures.
type ContestStore interface {
	// FindContest matches a stored contest by exact slug or by
	// case-insensitive substring of the name, scoped to a platform, with
	// solutions preloaded.
	FindContest(ctx context.Context, platform models.Platform, query string) (*models.Contest, error)
	// FindContestByNamePattern matches a stored contest whose name contains
	// the given pattern case-insensitively, scoped to a platform.
	FindContestByNamePattern(ctx context.Context, platform models.Platform, pattern string) (*models.Contest, error)
	// FindSolutionsForContestRef finds solutions by case-insensitive contest
	// name substring or exact external contest id, for contests resolved
	// from the live aggregate that have no stored row.
	FindSolutionsForContestRef(ctx context.Context, contestName, externalID string) ([]*models.Solution, error)
	// FindSolution returns the solution for a (contestID, videoID) pair.
	FindSolution(ctx context.Context, contestID, videoID string) (*models.Solution, error)
	// CreateSolution inserts a solution. A duplicate (contestID, videoID)
	// insert surfaces as gorm.ErrDuplicatedKey.
	CreateSolution(ctx context.Context, solution *models.Solution) error
	// UpdateSolution persists mutated solution fields.
	UpdateSolution(ctx context.Context, solution *models.Solution) error
}

// GormContestStore implements ContestStore on the shared gorm connection.
type GormContestStore struct {
	DB *gorm.DB
}

func NewContestStore(db *gorm.DB) *GormContestStore {
	return &GormContestStore{DB: db}
}

func (s *GormContestStore) FindContest(ctx context.Context, platform models.Platform, query string) (*models.Contest, error) {
	defer metrics.RecordDBOperation("select", "contests", time.Now())

	var contest models.Contest
	err := s.DB.WithContext(ctx).
		Preload("Solutions").
		Where("platform = ? AND (slug = ? OR name ILIKE ?)", platform, query, "%"+query+"%").
		First(&contest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contest, nil
}

func (s *GormContestStore) FindContestByNamePattern(ctx context.Context, platform models.Platform, pattern string) (*models.Contest, error) {
	defer metrics.RecordDBOperation("select", "contests", time.Now())

	var contest models.Contest
	err := s.DB.WithContext(ctx).
		Where("platform = ? AND name ILIKE ?", platform, "%"+pattern+"%").
		First(&contest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contest, nil
}

func (s *GormContestStore) FindSolutionsForContestRef(ctx context.Context, contestName, externalID string) ([]*models.Solution, error) {
	defer metrics.RecordDBOperation("select", "solutions", time.Now())

	var solutions []*models.Solution
	err := s.DB.WithContext(ctx).
		Where("contest_name ILIKE ? OR contest_id::text = ?", "%"+contestName+"%", externalID).
		Order("published_at DESC").
		Find(&solutions).Error
	if err != nil {
		return nil, err
	}
	return solutions, nil
}

func (s *GormContestStore) FindSolution(ctx context.Context, contestID, videoID string) (*models.Solution, error) {
	defer metrics.RecordDBOperation("select", "solutions", time.Now())

	var solution models.Solution
	err := s.DB.WithContext(ctx).
		Where("contest_id = ? AND video_id = ?", contestID, videoID).
		First(&solution).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &solution, nil
}

func (s *GormContestStore) CreateSolution(ctx context.Context, solution *models.Solution) error {
	defer metrics.RecordDBOperation("insert", "solutions", time.Now())
	return s.DB.WithContext(ctx).Create(solution).Error
}

func (s *GormContestStore) UpdateSolution(ctx context.Context, solution *models.Solution) error {
	defer metrics.RecordDBOperation("update", "solutions", time.Now())
	return s.DB.WithContext(ctx).Save(solution).Error
}
