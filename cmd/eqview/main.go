// Command eqview is the command-line client for an equipview server.
//
// Usage:
//
//	eqview history [-favorites]       Upload history, newest first
//	eqview fav <id>                   Star or unstar a history item
//	eqview show <id> [filters]        Summary and filtered records of an upload
//	eqview report <id> [flags]        Sample-records table with column/type selection
//	eqview compare a.csv b.csv        Compare two local files
//	eqview compare -stored <a> <b>    Compare two history items
//	eqview upload <file.csv>          Upload a file
package main

import (
	"fmt"
	"os"
)

const usage = `eqview - equipment telemetry viewer

Usage:
  eqview <command> [flags]

Commands:
  history    Upload history, newest first (-favorites for starred only)
  fav        Star or unstar a history item
  show       Summary and filtered records of an upload
  report     Sample-records table with column and type selection
  compare    Compare two CSV files, or two history items with -stored
  upload     Upload a CSV file

Environment:
  EQVIEW_SERVER_URL   Server base URL (default: http://localhost:8080)
  EQVIEW_API_KEY      API key sent as X-API-Key
  EQVIEW_DATA_DIR     Local data directory for favorites (default: ~/.equipview)
  EQVIEW_TIMEOUT      Request timeout (default: 30s)

Run 'eqview <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	os.Args = os.Args[1:]

	switch cmd {
	case "history":
		runHistory()
	case "fav":
		runFav()
	case "show":
		runShow()
	case "report":
		runReport()
	case "compare":
		runCompare()
	case "upload":
		runUpload()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "eqview: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
