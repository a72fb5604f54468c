package schema

import "context"

// StaticRepository reports a fixed table list. The in-memory store has no
// catalog, so it mirrors what the migrations create.
type StaticRepository struct {
	Tables []string
}

func (r *StaticRepository) ListTables(ctx context.Context) ([]string, error) {
	out := make([]string, len(r.Tables))
	copy(out, r.Tables)
	return out, nil
}
