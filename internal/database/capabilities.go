package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Capabilities records which optional catalog relations exist in the
// connected schema. It is resolved once at startup so request handling
// never probes the schema; a missing table simply disables its relation
// instead of failing product fetches.
type Capabilities struct {
	Variants bool
	Images   bool
	Ratings  bool
	Reviews  bool
}

// DetectCapabilities probes information_schema for the optional tables.
func DetectCapabilities(ctx context.Context, db *sql.DB, logger *zap.Logger) (Capabilities, error) {
	caps := Capabilities{}

	probes := []struct {
		table string
		flag  *bool
	}{
		{"product_variants", &caps.Variants},
		{"product_images", &caps.Images},
		{"ratings", &caps.Ratings},
		{"reviews", &caps.Reviews},
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_name = $1
		)
	`

	for _, p := range probes {
		if err := db.QueryRowContext(ctx, query, p.table).Scan(p.flag); err != nil {
			return Capabilities{}, fmt.Errorf("failed to probe table %s: %w", p.table, err)
		}
		if !*p.flag {
			logger.Warn("Optional table missing, relation disabled", zap.String("table", p.table))
		}
	}

	return caps, nil
}
