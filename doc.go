// Package roseingrave builds and parses spreadsheet-based score-tracking
// workbooks for musical pieces. A piece's sheet lays out one column per
// contribution source and one row per bar; the master sheet aggregates every
// volunteer's submission with one column per volunteer per source plus a
// summary column. Sheets round-trip: a workbook built from piece data can be
// exported back into the same structured data.
package roseingrave
