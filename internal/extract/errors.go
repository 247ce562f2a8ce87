package extract

import (
	"fmt"

	"github.com/tradewatch/disclosures/internal/model"
)

// AdaptationError marks one unusable fragment. Row-scoped: callers log it,
// bump a skip counter, and continue with the rest of the page.
type AdaptationError struct {
	Format model.SourceFormat
	Reason string
}

func (e *AdaptationError) Error() string {
	return fmt.Sprintf("adapt %s: %s", e.Format, e.Reason)
}

// ShapeDriftError means a payload matched neither the primary nor the
// fallback structure for its format. Not retried; the source has likely
// changed its markup or schema.
type ShapeDriftError struct {
	Format model.SourceFormat
	Detail string
}

func (e *ShapeDriftError) Error() string {
	return fmt.Sprintf("shape drift in %s: %s", e.Format, e.Detail)
}
