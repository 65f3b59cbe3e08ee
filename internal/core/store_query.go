package core

import (
	"context"

	"github.com/JonMunkholm/roster/internal/logging"
)

// Query returns every record whose selected field contains keyword, in
// insertion order. No match is an empty slice, not an error.
func (s *Store) Query(ctx context.Context, keyword string, field QueryField) ([]Student, error) {
	if keyword == "" || !field.Valid() {
		return nil, newRecordError("query", "", ErrValidation, "搜索关键词和类型不能为空")
	}

	results := make([]Student, 0)
	for _, st := range s.students {
		if field.Matches(st, keyword) {
			results = append(results, st)
		}
	}

	logger := logging.FromContext(ctx)
	if len(results) == 0 {
		logger.Info("query found no matches", "field", field.Label(), "keyword", keyword)
	} else {
		logger.Debug("query matched", "field", field.Label(), "keyword", keyword, "count", len(results))
	}

	return results, nil
}
