package casegraph

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Lakshya5071/criminal-record-service/pkg/logger"
)

// ErrCaseNotFound is returned when a referenced case id does not exist. It is
// distinct from validation and storage errors so callers can map it to a
// not-found response.
var ErrCaseNotFound = errors.New("case not found")

// CaseStore synchronizes nested case documents against the normalized
// relational schema and assembles them back. Every write operation runs in a
// single transaction; any failure rolls the whole operation back.
type CaseStore struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCaseStore(db *gorm.DB, baseLog *logger.Logger) *CaseStore {
	return &CaseStore{db: db, log: baseLog.With("component", "casegraph")}
}
