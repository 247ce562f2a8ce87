// Package extract converts raw portal fragments into PartialFilings.
//
// One adapter exists per source shape:
//   - TabularRow: one row of the Senate portal's paginated JSON query API
//   - HTMLTable: a Senate filing detail page (static table or script-embedded
//     data array, depending on result-set size)
//   - Archive: the House clerk's yearly ZIP of the XML filing index
//   - DocumentTable: table regions extracted from a House filing document
//
// Dispatch is explicit on the fragment type. Bad rows are skipped and
// counted, never fatal to a page; a structurally unrecognizable payload is a
// ShapeDriftError and surfaces immediately.
package extract
