/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package ledger

/*****************************************************************************************************************/

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*****************************************************************************************************************/

// ErrLedgerUnavailable wraps every failure opening or writing to the underlying store.
var ErrLedgerUnavailable = errors.New("ledger unavailable")

/*****************************************************************************************************************/

// FitRun is one row of the fit-run ledger (§2.3 [EXPANSION]): a durable record of a single
// ComputeModelImage invocation, kept independently of whatever image format the caller wrote the
// resulting model out to.
type FitRun struct {
	// ID is a lexicographically sortable ULID, assigned by Record when empty.
	ID string `gorm:"primaryKey"`

	CreatedAt time.Time

	// ConfigPath is the flat-text config file the run was configured from, if any.
	ConfigPath string

	Width  int
	Height int

	ComponentCount int
	ParameterCount int

	ZeroPoint float64
	Threads   int

	ConvolutionApplied bool

	DurationMilliseconds int64

	NonConvergentPixels int

	// Error carries the model package's error string when the run did not complete cleanly; it is
	// empty for a successful run.
	Error string
}

/*****************************************************************************************************************/

// Ledger wraps a gorm-backed sqlite store of FitRun rows.
type Ledger struct {
	db *gorm.DB
}

/*****************************************************************************************************************/

// Open opens (creating if necessary) the sqlite database at path and migrates the FitRun schema.
func Open(path string) (*Ledger, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", ErrLedgerUnavailable, path, err)
	}

	if err := db.AutoMigrate(&FitRun{}); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", ErrLedgerUnavailable, err)
	}

	return &Ledger{db: db}, nil
}

/*****************************************************************************************************************/

// newULID mints a time-ordered ULID for a fresh FitRun ID.
func newULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)

	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

/*****************************************************************************************************************/

// Record inserts run, assigning an ID and CreatedAt when unset.
func (l *Ledger) Record(run FitRun) (FitRun, error) {
	now := time.Now().UTC()

	if run.ID == "" {
		run.ID = newULID(now)
	}

	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}

	if err := l.db.Create(&run).Error; err != nil {
		return FitRun{}, fmt.Errorf("%w: record: %v", ErrLedgerUnavailable, err)
	}

	return run, nil
}

/*****************************************************************************************************************/

// RecentRuns returns up to limit FitRun rows, most recent first.
func (l *Ledger) RecentRuns(limit int) ([]FitRun, error) {
	var runs []FitRun

	if err := l.db.Order("created_at desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("%w: recent runs: %v", ErrLedgerUnavailable, err)
	}

	return runs, nil
}

/*****************************************************************************************************************/

// Close releases the underlying database connection.
func (l *Ledger) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return fmt.Errorf("%w: close: %v", ErrLedgerUnavailable, err)
	}

	return sqlDB.Close()
}

/*****************************************************************************************************************/
