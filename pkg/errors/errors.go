package errors

// Error message constants for the sort-imports application
const (
	// Sorting errors
	ErrMsgSortingImports      = "Error sorting imports"
	ErrMsgFailedToResolveConf = "failed to resolve sort config"
	ErrMsgUnknownParser       = "unknown parser"
	ErrMsgUnknownStyle        = "unknown style"
	ErrMsgNoParser            = "no parser configured for extension"
	ErrMsgUnparseableImport   = "unable to parse import statement"
	ErrMsgEnginePanic         = "sorting engine panicked"

	// Config resolution errors
	ErrMsgFailedToReadConfig  = "failed to read import sort config"
	ErrMsgInvalidImportConfig = "invalid import sort config"
	ErrMsgFailedToMergeConfig = "failed to merge import sort config"

	// File processing errors
	ErrMsgFailedToReadFile  = "failed to read file"
	ErrMsgFailedToWriteFile = "failed to write file"

	// Directory processing errors
	ErrMsgFailedToCheckPath        = "failed to check path"
	ErrMsgFailedToFindSourceFiles  = "failed to find source files in directory"
	ErrMsgFilesFailedToProcess     = "%d files failed to process"
	ErrMsgFailedToWatch            = "failed to watch directory"
	ErrMsgFailedToLoadSettings     = "failed to load settings"
	ErrMsgStdinRequiresFilePath    = "--stdin requires --file-path"
	ErrMsgFailedToReadStdin        = "failed to read stdin"
	ErrMsgFailedToInitializeLogger = "failed to initialize logger"
	ErrMsgUnknownCommand           = "unknown command"
	ErrMsgMalformedCommand         = "malformed command, expected \"<command> <path>\""

	// Info/warning messages
	WarnMsgProcessingDirWithoutInPlace = "Processing directory without --in-place flag. No files will be modified."
	InfoMsgNoSourceFilesFound          = "No source files found in directory"
	InfoMsgFoundSourceFiles            = "Found source files"
	InfoMsgSortedFile                  = "Sorted imports"
	InfoMsgUnchangedFile               = "Imports already sorted"
	InfoMsgWouldSortFile               = "Imports not sorted"
	InfoMsgSkippedFile                 = "Skipped file"
	InfoMsgErrorProcessing             = "Error processing file"
	InfoMsgProcessedCount              = "Processed files"
	InfoMsgWatching                    = "Watching for saves"
	InfoMsgSettingsChanged             = "Settings changed"
	InfoMsgSavedWithoutSorting         = "Saved without sorting"
)
