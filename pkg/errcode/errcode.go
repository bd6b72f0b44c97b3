package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Datasets manifest errors
	DatasetsReadError
	DatasetsParseError

	// Loader errors
	LoadFileNotFoundError
	LoadReadError
	LoadSchemaError

	// Enrichment errors
	EnrichInputMissingError
	EnrichSchemaError

	// Pipeline errors
	PipelinePartialFailureError
	PipelineAllTablesFailedError

	// Store errors
	StoreSaveError
	StoreLoadError
	StoreRemoveError
	StoreTableNotFoundError

	// Query errors
	QueryUnknownTableError
	QueryAggregationError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaMigrateError

	// Publish errors
	PublishCreateTableError
	PublishCopyError
	PublishRunRecordError

	// Images errors
	ImagesRequestError
	ImagesDecodeError

	// Metrics errors
	MetricsPushError
)
