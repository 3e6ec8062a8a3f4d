package ast

// FileType is the document type declared in the header.
type FileType string

const (
	FileTypeBoard   FileType = "BOARD_FILE"
	FileTypePanel   FileType = "PANEL_FILE"
	FileTypeLibrary FileType = "LIBRARY_FILE"
)

// OutlineKeyword returns the primary outline section keyword for board and
// panel documents, or "" for any other file type.
func (t FileType) OutlineKeyword() string {
	switch t {
	case FileTypeBoard:
		return string(SectionBoardOutline)
	case FileTypePanel:
		return string(SectionPanelOutline)
	default:
		return ""
	}
}

// Units is the measurement unit of a board or panel.
type Units string

const (
	UnitsThou Units = "THOU" // mils
	UnitsMM   Units = "MM"
)

// BoardPanelHeader is the header of a board or panel document.
type BoardPanelHeader struct {
	FileType    FileType `json:"file_type" yaml:"file_type"`
	Version     float32  `json:"version" yaml:"version"`
	SystemID    string   `json:"system_id" yaml:"system_id"`
	Date        string   `json:"date" yaml:"date"`
	FileVersion uint32   `json:"file_version" yaml:"file_version"`
	BoardName   string   `json:"board_name" yaml:"board_name"`
	Units       Units    `json:"units" yaml:"units"`
}

// IsPanel returns true if the header declares a panel document.
func (h BoardPanelHeader) IsPanel() bool {
	return h.FileType == FileTypePanel
}

// LibraryHeader is the header of a component library document.
type LibraryHeader struct {
	Version     float32 `json:"version" yaml:"version"`
	SystemID    string  `json:"system_id" yaml:"system_id"`
	Date        string  `json:"date" yaml:"date"`
	FileVersion uint32  `json:"file_version" yaml:"file_version"`
}
