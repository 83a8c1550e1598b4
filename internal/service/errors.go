package service

import (
	"errors"
	"fmt"
	"strings"

	"dubss/internal/model"
	"dubss/internal/workflow"
)

var (
	// ErrNotFound means the referenced trámite/beca/postulación/documento does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a concurrent write won the race; the caller should
	// re-read current state and retry the whole operation.
	ErrConflict = errors.New("concurrent conflict, retry")

	// ErrAlreadyExists means a uniqueness invariant blocked the creation
	// (one postulación per estudiante and beca).
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidTransition means the requested edge is not in the legal state
	// graph. Typed details travel in InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrIncompleteDocuments means the mandatory document set is not complete.
	// Typed details travel in IncompleteDocumentsError.
	ErrIncompleteDocuments = errors.New("incomplete documents")

	// ErrMissingObservacion means a rejection was attempted without a reason.
	ErrMissingObservacion = errors.New("observacion is required")

	// ErrDocumentsNotValidated means a presented document is still marked
	// invalid, blocking the validation approval.
	ErrDocumentsNotValidated = errors.New("presented documents not all validated")

	// ErrNoArtifacts means digitization cannot start before the first artifact
	// is registered.
	ErrNoArtifacts = errors.New("no document artifacts registered")

	// ErrInvalidConfiguration means a beca carries a non-positive seat count.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrRankingPending means classification cannot complete before the
	// ranking of the owning beca has been computed.
	ErrRankingPending = errors.New("ranking not yet computed")

	// ErrOutcomeMismatch means the requested final outcome contradicts the
	// computed posicion_ranking versus the beca's seat count.
	ErrOutcomeMismatch = errors.New("outcome does not match ranking position")

	// ErrInvalidState means the operation is not allowed in the trámite's
	// current state (e.g. registering documents outside digitization).
	ErrInvalidState = errors.New("operation not allowed in current state")

	// ErrInvalidTipoDocumento means the document type is not in the catalog.
	ErrInvalidTipoDocumento = errors.New("unknown tipo de documento")
)

// InvalidTransitionError reports an illegal edge request. It matches
// ErrInvalidTransition under errors.Is.
type InvalidTransitionError struct {
	From workflow.Estado
	To   workflow.Estado
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// IncompleteDocumentsError names the mandatory document types still missing.
// It matches ErrIncompleteDocuments under errors.Is.
type IncompleteDocumentsError struct {
	Missing []model.TipoDocumento
}

func (e *IncompleteDocumentsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, t := range e.Missing {
		names[i] = string(t)
	}
	return "incomplete documents, missing: " + strings.Join(names, ", ")
}

func (e *IncompleteDocumentsError) Is(target error) bool {
	return target == ErrIncompleteDocuments
}
