package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	orderByCreated = "created_at"
	orderByUpdated = "updated_at"
	orderByValued  = "valued_at"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderByCreated: "created_at DESC",
	orderByUpdated: "updated_at DESC",
	orderByValued:  "valued_at DESC NULLS LAST",
}

const defaultOrderBy = "created_at DESC"

const baseAppraisalsSelect = `SELECT ` + appraisalColumns + `
FROM appraisals`

const countAppraisalsSelect = "SELECT COUNT(*) FROM appraisals"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for an appraisal
// query. It returns the data query, the count query, and the positional
// parameters shared by both.
func (q *AppraisalQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", paramIdx))
		args = append(args, *q.Status)
		paramIdx++
	}

	if q.Stale != nil {
		conditions = append(conditions, fmt.Sprintf("stale = $%d", paramIdx))
		args = append(args, *q.Stale)
		paramIdx++
	}

	if q.ClaimNumber != nil {
		conditions = append(conditions, fmt.Sprintf("claim_number = $%d", paramIdx))
		args = append(args, *q.ClaimNumber)
		paramIdx++
	}

	if q.Make != nil {
		conditions = append(conditions, fmt.Sprintf("lower(make) = lower($%d)", paramIdx))
		args = append(args, *q.Make)
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if q.OrderBy != "" {
		if col, ok := validOrderBy[q.OrderBy]; ok {
			orderClause = col
		}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseAppraisalsSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countAppraisalsSelect + whereClause

	return dataSQL, countSQL, args
}
