// Package main provides findexdbtool, a maintenance utility for index
// database files.
//
// The tool operates directly on a database file without the server running:
//
//	findexdbtool vacuum      # reclaim space after large re-indexes
//	findexdbtool status      # print record count and last index run
//	findexdbtool meta <key>  # print one metadata value
//	findexdbtool get <path>  # print the indexed record for one path
//
// The database is located via the DATABASE_DIR environment variable
// (default /data), where every *.findex.db file is considered. A single
// file can be targeted with the -db flag.
package main
