package export

import (
	"context"
	"ezodus-market/internal/components/sqliteutil"
)

const sqliteSchema = `
create table if not exists auctions (
	idx integer not null primary key,
	name text not null,
	price integer not null,
	profession text not null,
	lvl integer not null,
	sword integer,
	axe integer,
	club integer,
	dist integer,
	magic integer,
	shielding integer
);
`

const insertAuction = `
insert into auctions (idx, name, price, profession, lvl, sword, axe, club, dist, magic, shielding)
values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// WriteSQLite replaces the contents of the auctions table in the database
// at path with records, idx keeps the listing order.
func WriteSQLite(ctx context.Context, path string, records []Record) error {
	db, err := sqliteutil.OpenDB(ctx, sqliteSchema, path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "delete from auctions")
	if err != nil {
		return err
	}
	for i, r := range records {
		args := append([]any{i}, r.Values()...)
		_, err = tx.ExecContext(ctx, insertAuction, args...)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
