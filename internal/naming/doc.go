// Package naming recognizes GoPro 360 segment filenames and derives the
// names of the per-group artifacts (concat list, temp output, merged file).
//
// A segment is named <2 letters><2-digit chapter><4-digit key>.<ext>, for
// example GS010042.360 and GS020042.360 are chapters 01 and 02 of recording
// session 0042. The key is the 4 characters at offsets 4..8.
package naming
