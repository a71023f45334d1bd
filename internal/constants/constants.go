package constants

import "time"

const (
	RecognitionTimeout = 30 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 45 * time.Second
)

const (
	DBMaxOpenConns    = 16
	DBMaxIdleConns    = 4
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	HistoryListLimit = 20
	MaxImageBytes    = 10 << 20
	MaxBackupBytes   = 5 << 20
	MaxBulkNames     = 500
)
