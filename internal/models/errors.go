package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across packages.
var (
	ErrNoActiveAccount  = errors.New("no active account connected")
	ErrTransferInFlight = errors.New("a transfer is already in flight")
	ErrAssetNotHeld     = errors.New("asset not held by sender")
)

// ValidationError reports bad user input. It is raised before any network
// call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// IndexingServiceError reports a failure talking to the indexer.
type IndexingServiceError struct {
	Op  string
	Err error
}

func (e *IndexingServiceError) Error() string {
	return fmt.Sprintf("indexing service: %s: %v", e.Op, e.Err)
}

func (e *IndexingServiceError) Unwrap() error { return e.Err }

// AssetLookupError reports a failed per-asset parameter lookup, typically an
// asset id that no longer exists on-chain.
type AssetLookupError struct {
	AssetID uint64
	Err     error
}

func (e *AssetLookupError) Error() string {
	return fmt.Sprintf("asset %d lookup: %v", e.AssetID, e.Err)
}

func (e *AssetLookupError) Unwrap() error { return e.Err }

// PlanningError reports a failed or malformed routing simulation. The
// transfer is aborted before any funds move; no partial state is kept.
type PlanningError struct {
	Stage string
	Err   error
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("planning: %s: %v", e.Stage, e.Err)
}

func (e *PlanningError) Unwrap() error { return e.Err }

// SubmissionError reports a declined signature or a rejected group. The
// group is atomic, so a submission failure guarantees nothing landed
// on-chain. The caller must restart from planning.
type SubmissionError struct {
	Stage string
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission: %s: %v", e.Stage, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
