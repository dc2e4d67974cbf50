// Package organizer sorts the regular files of one directory into
// per-category subdirectories.
//
// Routing is split in two. Route is a pure function from a file name and the
// evidence gathered about it (guessed media type, sniffed image format) to a
// Decision. Organizer.Run does the I/O around it: listing the source
// directory, guessing and sniffing, creating destinations and moving files.
// Every file is handled independently; a failure is recorded in the Report
// and the batch continues.
package organizer
