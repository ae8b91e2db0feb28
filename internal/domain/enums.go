package domain

// FileKind classifies an input file by how its content reaches the model.
type FileKind string

const (
	FileKindText        FileKind = "text"
	FileKindCSV         FileKind = "csv"
	FileKindHTML        FileKind = "html"
	FileKindPDF         FileKind = "pdf"
	FileKindSpreadsheet FileKind = "spreadsheet"
	FileKindImage       FileKind = "image"
)

// AllowedExtensions maps file extensions (without dot) to FileKind.
var AllowedExtensions = map[string]FileKind{
	"txt":  FileKindText,
	"md":   FileKindText,
	"csv":  FileKindCSV,
	"htm":  FileKindHTML,
	"html": FileKindHTML,
	"pdf":  FileKindPDF,
	"xlsx": FileKindSpreadsheet,
	"xlsm": FileKindSpreadsheet,
	"jpg":  FileKindImage,
	"jpeg": FileKindImage,
	"png":  FileKindImage,
	"gif":  FileKindImage,
	"webp": FileKindImage,
}

// AllowedContentTypes maps sniffed MIME content types to FileKind. Spreadsheets
// sniff as zip archives and are resolved by extension instead.
var AllowedContentTypes = map[string]FileKind{
	"application/pdf": FileKindPDF,
	"image/jpeg":      FileKindImage,
	"image/png":       FileKindImage,
	"image/gif":       FileKindImage,
	"image/webp":      FileKindImage,
}

// Proficiency is the assessed level of a competency.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
	ProficiencyExpert       Proficiency = "Expert"
)

// RowField names an editable column of a FlattenedRow.
type RowField string

const (
	FieldName        RowField = "name"
	FieldDesignation RowField = "designation"
	FieldIdentifier  RowField = "identifier"
	FieldHighlight   RowField = "highlight"
)

// PersonField reports whether edits to f are shared by every row of a person.
func (f RowField) PersonField() bool {
	return f == FieldName || f == FieldDesignation || f == FieldIdentifier
}

// SendMode selects which rows a send covers.
type SendMode string

const (
	SendAll      SendMode = "all"
	SendSelected SendMode = "selected"
	SendRow      SendMode = "row"
)

// DefaultDesignation is used by attendance extraction when no role is stated.
const DefaultDesignation = "Member"
