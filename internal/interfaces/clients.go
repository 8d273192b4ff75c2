// Package interfaces defines the contracts between FundTrack components
package interfaces

import (
	"context"

	"github.com/priyanshps/fundtrack/internal/models"
)

// NAVFeedClient fetches latest net-asset-value prices from the external
// mutual-fund NAV service.
type NAVFeedClient interface {
	// LatestNAV issues one batched request for the given scheme codes and
	// returns the prices found. A transport failure or a malformed
	// (non-array) payload fails the whole batch; there is no partial result.
	LatestNAV(ctx context.Context, schemeCodes []string) ([]models.NAVRecord, error)

	// ListOpenSchemes returns the full open-scheme NAV list.
	ListOpenSchemes(ctx context.Context) ([]models.NAVRecord, error)
}
