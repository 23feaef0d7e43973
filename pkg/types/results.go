package types

// Report describes the outcome of an ensure operation. EntryNames
// holds every managed entry name found in the table after the
// operation, in file order, duplicates included.
type Report struct {
	EntryNames []string
	Changed    bool
	CronFile   string
	Backup     string
}

// ListResult is the outcome of listing managed entries.
type ListResult struct {
	EntryNames []string
	CronFile   string
}

// GenConfigResult holds the generated configuration content and any
// files written by the gen-config command.
type GenConfigResult struct {
	ConfigContent string
	FilesWritten  []string
}
