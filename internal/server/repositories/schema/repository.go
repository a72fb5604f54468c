// Package schema introspects the connected database. It backs the
// collection listing used for operational checks.
package schema

import "context"

type Repository interface {
	ListTables(ctx context.Context) ([]string, error)
}
