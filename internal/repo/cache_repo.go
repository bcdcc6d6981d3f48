package repo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/didi/gendry/builder"
)

// CacheRepo persists cache entries across process restarts. Validity is
// the caller's concern; the repo only stores payloads with their write
// timestamp.
type CacheRepo struct {
	db *sql.DB
}

func NewCacheRepo(db *sql.DB) *CacheRepo {
	return &CacheRepo{db: db}
}

func (r *CacheRepo) Get(ctx context.Context, key string) ([]byte, int64, bool, error) {
	where := map[string]interface{}{"cache_key": key}
	sqlStr, args, err := builder.BuildSelect("cache_entries", where, []string{"payload", "ts"})
	if err != nil {
		return nil, 0, false, err
	}
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	var payload []byte
	var ts int64
	if err := row.Scan(&payload, &ts); err != nil {
		if err == sql.ErrNoRows {
			return nil, 0, false, nil
		}
		return nil, 0, false, err
	}
	return payload, ts, true, nil
}

func (r *CacheRepo) Put(ctx context.Context, key string, payload []byte, ts int64) error {
	data := map[string]interface{}{
		"cache_key": key,
		"payload":   payload,
		"ts":        ts,
	}
	sqlStr, args, err := builder.BuildInsert("cache_entries", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr = strings.Replace(sqlStr, "INSERT INTO", "INSERT OR REPLACE INTO", 1)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *CacheRepo) Delete(ctx context.Context, key string) error {
	where := map[string]interface{}{"cache_key": key}
	sqlStr, args, err := builder.BuildDelete("cache_entries", where)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *CacheRepo) DeletePrefix(ctx context.Context, prefix string) error {
	// Keys are internal ("chunk:<id>", "search:..."), no LIKE wildcards
	// to escape.
	where := map[string]interface{}{"cache_key like": prefix + "%"}
	sqlStr, args, err := builder.BuildDelete("cache_entries", where)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *CacheRepo) DeleteBefore(ctx context.Context, cutoff int64) (int64, error) {
	where := map[string]interface{}{"ts <": cutoff}
	sqlStr, args, err := builder.BuildDelete("cache_entries", where)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *CacheRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cache_entries")
	return err
}
