// Package domain models skyscraper records and the pure operations the
// dashboard renders from: filtering, column projection, summary statistics,
// city rankings, completion trends, and the 3D map payload.
//
// # Data Source
//
// Records originate from a skyscraper survey CSV with dotted column names
// (e.g. "location.city", "statistics.height", "status.completed.year").
// The file is read once at startup; the resulting Dataset is immutable for
// the lifetime of the process and every user interaction re-runs the
// filter/render pipeline against it.
//
// # Column Conventions
//
// Dots in column names are rewritten to underscores at load time; embedded
// spaces are preserved, so "location.country id" becomes
// "location_country id" and "purposes.air traffic control tower" becomes
// "purposes_air traffic control tower". The boolean "purposes_*" flag
// columns and administrative ID columns never reach the table view or the
// exports; see Project for the fixed exclusion list.
//
// # Missing Values
//
// The survey uses in-band sentinels that are converted to explicit optional
// fields during loading:
//
//	city:               empty → "Unknown" (kept as a real city value so the
//	                    records still group and filter)
//	completed year:     0 or unparsable → nil (year unknown)
//	latitude/longitude: empty or unparsable → nil
//
// A nil completed year never satisfies a year-range bound, so unknown-year
// records are excluded by any year filter, including the widest one. That is
// deliberate policy, not an accident of comparison, and the filter tests pin
// it down.
//
// # Display Rounding
//
// Heights are stored as read (fractional meters) and rounded to the nearest
// whole meter wherever they are displayed: the table view, map column
// elevations, exports, and the summary statistics all operate on the rounded
// display height. Records themselves are never mutated after load.
package domain
