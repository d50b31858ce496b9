// Package todo holds the in-memory task list and its .todo file codec.
//
// The task file is strictly line oriented. Each task occupies three lines:
//
//	t                  done flag, "t" or "f"
//	Buy milk           name, raw text
//	2024-03-01         due date, yyyy-MM-dd
//
// Groups follow each other without a blank separator and the final date line
// has no trailing newline. An empty list is an empty file.
//
// # Parsing
//
// Decoding is all or nothing. End of input inside a group, a flag line other
// than "t" or "f", or a date that is not a zero-padded real calendar date
// fails the whole file with ErrFormat. The failing line is not reported.
//
// Names are not escaped. A name containing a newline produces a file that
// will not load back.
//
// # File Names
//
// Save appends the ".todo" extension when the target name does not already
// end in it (compared case-insensitively).
package todo
