package domain

// LabFormat identifies the laboratory whose report layout a document
// follows. Detection is keyword based and ordered: Invitro markers are
// checked first, then Olymp, then InVivo. Documents that match none of
// the markers are parsed with the Invitro-style pattern set, which is
// the most permissive.
type LabFormat string

const (
	LabInvitro LabFormat = "invitro"
	LabOlymp   LabFormat = "olymp"
	LabInVivo  LabFormat = "invivo"
	LabUnknown LabFormat = "unknown"
)

// IsValid reports whether the format is a known laboratory layout.
func (lf LabFormat) IsValid() bool {
	switch lf {
	case LabInvitro, LabOlymp, LabInVivo, LabUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the lab format.
func (lf LabFormat) String() string {
	return string(lf)
}

// DisplayName returns a human-readable laboratory name for reports.
func (lf LabFormat) DisplayName() string {
	switch lf {
	case LabInvitro:
		return "Invitro"
	case LabOlymp:
		return "Olymp"
	case LabInVivo:
		return "InVivo"
	default:
		return "Unknown laboratory"
	}
}
