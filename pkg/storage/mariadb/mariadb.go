package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/c14220110/poliklinik-lab/config"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
)

var (
	db      *sql.DB
	connErr error
	once    sync.Once
)

// DSN menyusun data source name: username:password@tcp(host:port)/dbname?parseTime=true&loc=Asia%2FJakarta
func DSN(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Asia%%2FJakarta",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
}

// Connect membuka koneksi ke database MariaDB satu kali per proses.
func Connect(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	once.Do(func() {
		conn, err := sql.Open("mysql", DSN(cfg))
		if err != nil {
			connErr = fmt.Errorf("gagal membuka koneksi ke database: %w", err)
			return
		}
		conn.SetMaxOpenConns(20)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(30 * time.Minute)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := conn.PingContext(pingCtx); err != nil {
			conn.Close()
			connErr = fmt.Errorf("gagal melakukan ping ke database: %w", err)
			return
		}

		log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("connected to MariaDB")
		db = conn
	})
	return db, connErr
}
