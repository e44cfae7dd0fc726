package output

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/CTAG07/ryazon/pkg/markov"
)

// Sink is a destination for generation results. A Write call receives every
// result of one run, in iteration order.
type Sink interface {
	Write(ctx context.Context, results []markov.Result) error
}

// DBOpener opens a database connection for a data source. It lets callers
// choose the SQLite driver.
type DBOpener func(dataSource string) (*sql.DB, error)

// sqliteExtensions are the destination suffixes routed to the SQLite sink.
var sqliteExtensions = map[string]struct{}{
	".db":      {},
	".sqlite":  {},
	".sqlite3": {},
}

// IsSQLite reports whether dest would be opened as a SQLite results log.
func IsSQLite(dest string) bool {
	_, ok := sqliteExtensions[strings.ToLower(filepath.Ext(dest))]
	return ok
}

// Open returns the sink for dest. An empty dest writes text to stdout;
// SQLite file extensions open a results log with openDB; anything else is a
// JSON file. The returned close function releases the sink's resources and
// is never nil.
func Open(dest string, stdout io.Writer, openDB DBOpener) (Sink, func() error, error) {
	noop := func() error { return nil }

	switch {
	case dest == "":
		return NewTextSink(stdout), noop, nil

	case IsSQLite(dest):
		db, err := openDB(dest)
		if err != nil {
			return nil, noop, markov.NewIOError(fmt.Errorf("could not open results database: %w", err))
		}
		if err = SetupSchema(db); err != nil {
			_ = db.Close()
			return nil, noop, markov.NewIOError(err)
		}
		return NewSQLiteSink(db), db.Close, nil

	default:
		return NewJSONSink(dest), noop, nil
	}
}
