package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"bakery-production/internal/config"
)

type Storage struct {
	db *sql.DB
	// lockRows appends FOR UPDATE to the reads that guard a write transaction.
	lockRows bool
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.mysql.New"

	mc := mysql.NewConfig()
	mc.User = cfg.DB.User
	mc.Passwd = cfg.DB.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.DB.Host, strconv.Itoa(cfg.DB.Port))
	mc.DBName = cfg.DB.Name
	mc.ParseTime = true
	mc.Loc = time.Local

	db, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Storage{db: db, lockRows: true}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) forUpdate() string {
	if s.lockRows {
		return " FOR UPDATE"
	}
	return ""
}

// writeTxOptions is used by schedule writes. Their conflict queries are plain reads taken
// after the user and equipment row locks, so they must see rows committed by whoever held
// those locks. InnoDB's default REPEATABLE READ would answer them from the snapshot taken at
// the transaction's first plain read.
func (s *Storage) writeTxOptions() *sql.TxOptions {
	if s.lockRows {
		return &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimRight(strings.Repeat("?,", n), ",")
}

func toInterfaceSlice(ids []int64) []interface{} {
	res := make([]interface{}, len(ids))
	for i, id := range ids {
		res[i] = id
	}
	return res
}
