package document

import "fmt"

// BadPositionError reports that a Position fell outside the document's
// content, or outside its currently accessible (narrowed) region.
type BadPositionError struct {
	Position Position
}

func (e *BadPositionError) Error() string {
	return fmt.Sprintf("document: position %d:%d is not valid here", e.Position.Line, e.Position.OffsetInLine)
}

// BadRegionError reports that a Region's endpoints could not both be
// satisfied (e.g. one endpoint lies outside the document's content).
type BadRegionError struct {
	Region Region
}

func (e *BadRegionError) Error() string {
	return fmt.Sprintf("document: region %v is not valid here", e.Region)
}

// ReadOnlyDocumentError is returned by any mutating operation on a
// Document that has SetReadOnly(true) in effect.
type ReadOnlyDocumentError struct{}

func (e *ReadOnlyDocumentError) Error() string { return "document: document is read-only" }

// DocumentAccessViolationError is returned when a Replace's erased region
// reaches outside the document's currently accessible (narrowed) region.
type DocumentAccessViolationError struct {
	Region Region
}

func (e *DocumentAccessViolationError) Error() string {
	return fmt.Sprintf("document: change touches region %v outside the accessible region", e.Region)
}

// ChangeRejectedError wraps a caller-supplied veto of a pending change,
// surfaced from a listener's AboutToChange hook that returned false or
// from a DocumentInput whose IsChangeable returned false.
type ChangeRejectedError struct {
	Reason string
}

func (e *ChangeRejectedError) Error() string {
	if e.Reason == "" {
		return "document: change rejected by a listener"
	}
	return "document: change rejected: " + e.Reason
}

// IllegalStateError reports an operation invoked while the document is in
// a state that does not support it (e.g. EndCompoundChange with no matching
// BeginCompoundChange).
type IllegalStateError struct {
	Message string
}

func (e *IllegalStateError) Error() string { return "document: " + e.Message }
