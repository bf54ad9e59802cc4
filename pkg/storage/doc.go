// Package storage fetches attachment files from the local file system and from
// S3-compatible object storage.
//
// Every backend implements [Source]; a [Router] picks one by location scheme:
//
//	s3src, err := storage.NewS3(ctx, storage.Config{Region: "eu-west-1"})
//	if err != nil {
//		return err
//	}
//
//	src := storage.NewCached(
//		storage.NewRouter(storage.NewLocal("", 0)).Handle(storage.S3Scheme, s3src),
//		cache.WithMaxCost(64<<20),
//	)
//
//	obj, err := src.Get(ctx, "s3://invoices/2024/Ann.pdf")
//
// Plain paths and file:// locations are read from disk, s3://bucket/key from S3.
//
// # Content Types
//
// Files are typed by name with [ContentTypeByName]; an unknown extension is
// application/octet-stream. S3 objects use the stored content type when the key
// has no known extension, and the content's magic bytes when neither is set.
//
// # Error Handling
//
//   - [ErrNotFound]: no file at the location (directories included)
//   - [ErrAccessDenied]: the file exists but cannot be read
//   - [ErrTooLarge]: the file exceeds the configured size limit
//   - [ErrInvalidLocation], [ErrUnsupportedScheme]: malformed or unroutable location
//   - [ErrReadFailed]: any other read failure
//
// S3 errors are normalized to these sentinels; use errors.Is to check them.
package storage
