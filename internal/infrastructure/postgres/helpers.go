package postgres

import (
	"fmt"

	"github.com/truecost/mortgage-service/internal/domain/model"
)

// scannable is satisfied by pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// storageErr classifies a driver failure as model.ErrStorage while keeping
// the cause in the chain.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", model.ErrStorage, op, err)
}
