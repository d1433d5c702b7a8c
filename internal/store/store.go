package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

const defaultChunkSize = 1000

// Store persists pipeline output to MySQL. Each run fully replaces the table
// contents: truncate, then chunked append.
type Store struct {
	db        *sql.DB
	chunkSize int
	logger    *logrus.Logger
}

// Open accepts either a native driver DSN or a mysql:// / mariadb:// URL and
// returns a connected store.
func Open(dsn string, logger *logrus.Logger) (*Store, error) {
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Store{db: db, chunkSize: defaultChunkSize, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func toMySQLDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "mysql://") && !strings.HasPrefix(dsn, "mariadb://") {
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	user := ""
	pass := ""
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	host := u.Host
	db := strings.TrimPrefix(u.Path, "/")
	if user == "" || host == "" || db == "" {
		return "", fmt.Errorf("dsn must carry user, host and database")
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
		user, pass, host, db), nil
}

// CreateTables creates the two output tables if absent. Safe to run on every
// start.
func (s *Store) CreateTables(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sales_data (
			InvoiceNo      VARCHAR(20),
			StockCode      VARCHAR(50),
			Description    TEXT,
			Quantity       INTEGER,
			InvoiceDate    DATETIME,
			UnitPrice      DECIMAL(10,2),
			CustomerID     VARCHAR(20),
			Country        VARCHAR(100),
			Class          VARCHAR(10),
			Sale_Qty       INTEGER,
			Return_Qty     INTEGER,
			Total_Items    INTEGER,
			Revenue        DECIMAL(12,2),
			Net_Revenue    DECIMAL(12,2),
			Run_ID         VARCHAR(36)
		)`,
		`CREATE TABLE IF NOT EXISTS customer_summary (
			CustomerID         VARCHAR(20) PRIMARY KEY,
			Gross_Revenue      DECIMAL(12,2),
			Return_Amount      DECIMAL(12,2),
			Net_Revenue        DECIMAL(12,2),
			Return_Rate        DECIMAL(10,6),
			Transactions       INTEGER,
			Invoices           INTEGER,
			First_Purchase     DATETIME,
			Last_Purchase      DATETIME,
			RecencyDays        INTEGER,
			Purchase_Frequency DECIMAL(10,4),
			Recency_Score      INTEGER,
			Frequency_Score    INTEGER,
			Monetary_Score     INTEGER,
			Composite_Score    DECIMAL(4,2),
			Segment            VARCHAR(20),
			Run_ID             VARCHAR(36)
		)`,
	}

	for _, statement := range statements {
		if _, err := s.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// Truncate clears a table while keeping its structure.
func (s *Store) Truncate(ctx context.Context, table string) error {
	if table != "sales_data" && table != "customer_summary" {
		return fmt.Errorf("unknown table %q", table)
	}
	if _, err := s.db.ExecContext(ctx, "TRUNCATE TABLE "+table); err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}
	s.logger.WithField("table", table).Info("table cleared")
	return nil
}

// buildInsert renders a multi-row INSERT statement for one chunk.
func buildInsert(table string, columns []string, rowCount int) string {
	placeholder := "(" + strings.Repeat("?,", len(columns)-1) + "?)"
	values := make([]string, rowCount)
	for i := range values {
		values[i] = placeholder
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(columns, ","), strings.Join(values, ","))
}

// insertChunked writes rows in chunkSize batches, reporting progress.
func (s *Store) insertChunked(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	bar := newProgress(int64(len(rows)), table)

	for start := 0; start < len(rows); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		args := make([]any, 0, len(chunk)*len(columns))
		for _, row := range chunk {
			args = append(args, row...)
		}
		if _, err := s.db.ExecContext(ctx, buildInsert(table, columns, len(chunk)), args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
		_ = bar.Add(len(chunk))
	}

	s.logger.WithFields(logrus.Fields{"table": table, "rows": len(rows)}).Info("table uploaded")
	return nil
}
