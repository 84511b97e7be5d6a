// Package fluentdb provides a fluent SQL builder that runs on a single
// database connection.
//
// go-fluent-db turns method chains into SQL templates, resolves the
// placeholder tokens in them through a pluggable backend and reshapes the
// result rows into the structure the caller asks for.
//
// # Quick Start
//
//	db, err := fluentdb.Connect("mysql", "user:pass@tcp(localhost:3306)/dbname")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
// Or from a YAML file:
//
//	cfg, err := fluentdb.LoadConfig("database.yaml")
//	db, err := fluentdb.Open(cfg, fluentdb.WithLogger(logger))
//
// # Select Queries
//
//	users, err := db.Select("id", "name", "email").
//	    From("users u").
//	    LeftJoin("roles r", "r.id = u.role_id").
//	    WhereEquals("u.status", "active").
//	    WhereCompare("u.age", ">=", 18).
//	    OrderBy("u.created_at", "DESC").
//	    Limit(10, 0).
//	    FetchArray(ctx)
//
// Results can be shaped on the way out:
//
//	byID, err := q.FetchArrayByKey(ctx, "id")     // map[id]Row
//	names, err := q.FetchKeyValue(ctx)            // first column -> second column
//	groups, err := q.FetchByGroup(ctx, "country") // map[country][]Row
//	total, err := q.FetchValue(ctx)               // first column of first row
//
// # Raw Queries
//
// Tokens in a raw template are chosen by the caller:
//
//	row, err := db.Query("SELECT * FROM users WHERE id = :id").
//	    With(":id", 5).
//	    FetchFirst(ctx)
//
// One-shot parameters passed to Fetch*/Execute are merged for that call only:
//
//	q := db.Query("SELECT * FROM logs WHERE level = :level")
//	errs, _ := q.FetchArray(ctx, fluentdb.Params{":level": "error"})
//	warns, _ := q.FetchArray(ctx, fluentdb.Params{":level": "warn"})
//
// # Insert, Update, Delete
//
//	id, err := db.Insert(map[string]any{"name": "Ada"}).Into("users").ExecuteAndGetInsertedID(ctx)
//
//	_, err = db.Update("users").
//	    Set(map[string]any{"status": "inactive"}).
//	    WhereEquals("id", id).
//	    Execute(ctx)
//
//	_, err = db.Delete().From("sessions").WhereCompare("expires_at", "<", time.Now()).Execute(ctx)
//
// A DELETE without conditions refuses to execute unless AllRows is called.
//
// # Transactions
//
//	err := db.InTransaction(ctx, func(tx *fluentdb.Transaction) error {
//	    if _, err := tx.Update("accounts").SetRaw("balance", "balance - 10").WhereEquals("id", 1).Execute(ctx); err != nil {
//	        return err
//	    }
//	    _, err := tx.Update("accounts").SetRaw("balance", "balance + 10").WhereEquals("id", 2).Execute(ctx)
//	    return err
//	})
//
// # Backends
//
// BackendBound (default) sends values as driver bind parameters and only
// accepts ":name" tokens. BackendLiteral substitutes dialect-escaped literals
// into the statement text and accepts any token.
//
// # Thread Safety
//
// Builders are NOT thread-safe. A DB serializes connection acquisition and
// transaction state, but all builders share its one connection.
//
// # Supported Databases
//
//   - MySQL / MariaDB
//   - PostgreSQL (pgx or lib/pq)
//   - SQLite
package fluentdb
