package util

const (
	StorageLocal    = "local"
	StorageMinio    = "minio"
	StorageSupabase = "supabase"
	StorageOSS      = "oss"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

// ResourceBucket is the blob store bucket holding uploaded resources.
const ResourceBucket = "resources"

// MaxUploadSize caps resource uploads at 20MB.
const MaxUploadSize = 20 * 1024 * 1024
