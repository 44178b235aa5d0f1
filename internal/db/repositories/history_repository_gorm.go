package repositories

import (
	"context"

	"skycast/internal/models/entities"

	"gorm.io/gorm"
)

// GormHistoryRepository backs the history store with GORM. Paired with the
// sqlite dialector it needs no external database, which is how local
// development and the test suite run.
type GormHistoryRepository struct {
	db *gorm.DB
}

var _ HistoryRepository = (*GormHistoryRepository)(nil)

func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db}
}

// EnsureSchema migrates the past_queries table.
func (r *GormHistoryRepository) EnsureSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&entities.PastQuery{})
}

func (r *GormHistoryRepository) Insert(ctx context.Context, record *entities.PastQuery) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *GormHistoryRepository) ListAll(ctx context.Context) ([]entities.PastQuery, error) {
	records := []entities.PastQuery{}
	err := r.db.WithContext(ctx).Order("id asc").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormHistoryRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
