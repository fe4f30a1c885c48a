// Package journal persists archive-saga progress in MySQL through gorm, so
// an order marked delivered whose history append never landed can be replayed
// after a crash instead of staying silently inconsistent.
package journal

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

// ArchiveRecord is the persisted form of one saga entry.
type ArchiveRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	OrderID   string `gorm:"size:64;index"`
	State     string `gorm:"size:16;index"`
	UpdatedAt time.Time
}

// Store implements ports.ArchiveJournal on a MySQL table.
type Store struct {
	db *gorm.DB
}

// Open connects with the given DSN and migrates the journal table.
func Open(dsn string) (*Store, error) {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open journal: %v", ports.ErrJournal, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrJournal, err)
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)

	if err := gdb.AutoMigrate(&ArchiveRecord{}); err != nil {
		return nil, fmt.Errorf("%w: migrate journal: %v", ports.ErrJournal, err)
	}
	return &Store{db: gdb}, nil
}

func (s *Store) Put(ctx context.Context, rec ports.ArchiveRecord) error {
	row := ArchiveRecord{
		ID:        rec.ID,
		OrderID:   rec.OrderID,
		State:     string(rec.State),
		UpdatedAt: rec.UpdatedAt,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("%w: put %s: %v", ports.ErrJournal, rec.ID, err)
	}
	return nil
}

func (s *Store) Unfinished(ctx context.Context) ([]ports.ArchiveRecord, error) {
	var rows []ArchiveRecord
	err := s.db.WithContext(ctx).
		Where("state NOT IN ?", []string{string(ports.ArchiveDone), string(ports.ArchiveAbandoned)}).
		Order("updated_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list unfinished: %v", ports.ErrJournal, err)
	}
	out := make([]ports.ArchiveRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.ArchiveRecord{
			ID:        row.ID,
			OrderID:   row.OrderID,
			State:     ports.ArchiveState(row.State),
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}
