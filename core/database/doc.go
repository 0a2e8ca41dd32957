// Package database opens relational connection pools for extraction.
//
// One gorm handle type serves every SQL backend; the dialector decides the
// wire driver:
//
//   - postgres: lib/pq (registered as "postgres")
//   - mysql:    go-sql-driver/mysql, mysql:// URLs converted to native DSNs
//   - sqlite:   modernc.org/sqlite (registered as "sqlite"), no cgo required
//
// Pool sizes and the connect timeout come from Config; the connection string
// itself is per extraction.
//
// # Usage
//
//	db, err := database.Connect(ctx, cfg.Database, database.DriverPostgres, url)
//	if err != nil {
//	    return err
//	}
//	defer database.Close(db)
//
//	columns, err := database.Columns(ctx, db, "users")
package database
