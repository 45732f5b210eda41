package extract

// Family identifies which certificate template an extractor recognizes.
type Family string

const (
	FamilyConfinedSpace Family = "confined-space"
	FamilyHeights       Family = "heights"
	FamilyLifting       Family = "lifting"
	FamilyGeneric       Family = "generic"
)

// Status represents the outcome of extracting one document.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// FieldSet is the structured output of a successful extraction, before it
// is wrapped into a Record with a status.
type FieldSet struct {
	FullName   string `json:"full_name"`
	IDNumber   string `json:"id_number"`
	Family     Family `json:"certificate_family,omitempty"`
	Level      string `json:"level_or_role,omitempty"`
	Course     string `json:"course,omitempty"`
	Serial     string `json:"serial,omitempty"`
	IssueDate  string `json:"issue_date,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"`
}

// Empty reports whether no field was populated at all.
func (f FieldSet) Empty() bool {
	return f == FieldSet{}
}

// Complete reports whether the fields required for an OK record are present.
func (f FieldSet) Complete() bool {
	return f.FullName != "" && f.IDNumber != ""
}

// Record is the per-document result of a batch run. Records are immutable
// after creation; classification derives a destination from them but never
// writes back.
type Record struct {
	FieldSet
	Status     Status `json:"status"`
	FailReason string `json:"fail_reason,omitempty"`
	SourceFile string `json:"source_file"`
	NewName    string `json:"new_name,omitempty"`
}

// NewRecord wraps a field set into a record, enforcing the OK invariant:
// a record is OK only when both the full name and the ID number were
// extracted. Partial matches are discarded, not surfaced.
func NewRecord(sourceFile string, fs FieldSet) Record {
	if fs.Complete() {
		return Record{FieldSet: fs, Status: StatusOK, SourceFile: sourceFile}
	}
	reason := "patron no reconocido"
	if !fs.Empty() {
		reason = "extraccion incompleta"
	}
	return Record{
		Status:     StatusFailed,
		FailReason: reason,
		SourceFile: sourceFile,
	}
}

// FailedRecord builds a record for a document that could not be read at all.
func FailedRecord(sourceFile string, err error) Record {
	return Record{
		Status:     StatusFailed,
		FailReason: err.Error(),
		SourceFile: sourceFile,
	}
}
