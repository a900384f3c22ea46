package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgconnTag(rows int64) pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("DELETE %d", rows))
}
