// Command cqlcli connects to a CQL-compatible backend, performs the STARTUP handshake, and issues one query,
// printing the resulting rows to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"reflect"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nativecql/cql/client"
	"github.com/nativecql/cql/datacodec"
	"github.com/nativecql/cql/message"
	"github.com/nativecql/cql/primitive"
	"github.com/nativecql/cql/result"
)

func main() {
	address := flag.String("address", "127.0.0.1:9042", "contact point address")
	query := flag.String("query", "SELECT * FROM system.local", "CQL query to execute")
	username := flag.String("username", "", "username for PasswordAuthenticator (leave empty for no authentication)")
	password := flag.String("password", "", "password for PasswordAuthenticator")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: zerolog.TimeFormatUnix})

	var credentials *client.AuthCredentials
	if *username != "" {
		credentials = &client.AuthCredentials{Username: *username, Password: *password}
	}

	cqlClient := client.NewCqlClient(*address, credentials)
	session, err := client.Open(context.Background(), cqlClient)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open session")
	}
	defer func() { _ = session.Close() }()

	rows, err := session.Query(*query, &message.QueryOptions{Consistency: primitive.ConsistencyLevelOne})
	if err != nil {
		log.Fatal().Err(err).Msg("query failed")
	}
	if rows == nil {
		fmt.Println("query executed, no result set")
		return
	}
	printRows(rows)
}

// printRows renders every row of the result set to stdout, one line per row, columns separated by a pipe. Scalar
// columns are decoded through their preferred Go type; list, set, map, tuple and user-defined type columns are
// printed as their raw encoded bytes, since this CLI has no use for a richer rendering of nested values.
func printRows(rows *result.Rows) {
	columns := rows.Metadata().Columns
	for row := 0; row < rows.RowCount(); row++ {
		for i, col := range columns {
			if i > 0 {
				fmt.Print(" | ")
			}
			fmt.Print(renderColumn(rows, row, i, col))
		}
		fmt.Println()
	}
	if paging := rows.PagingState(); paging != nil {
		fmt.Fprintf(os.Stderr, "more pages available, paging state: %x\n", paging)
	}
}

func renderColumn(rows *result.Rows, row, index int, col *message.ColumnMetadata) string {
	goType, err := datacodec.PreferredGoType(col.Type)
	if err == nil {
		dest := reflect.New(goType)
		wasNull, scanErr := rows.Scan(row, index, dest.Interface())
		if scanErr == nil {
			if wasNull {
				return "null"
			}
			return fmt.Sprintf("%v", dest.Elem().Interface())
		}
		if _, ok := scanErr.(*result.InvalidProjection); !ok {
			return fmt.Sprintf("<error: %v>", scanErr)
		}
		// falls through to the Handle path below: col.Type is a list, set, map, tuple or UDT, which Scan always
		// rejects in favor of Handle even though PreferredGoType can name a generic Go type for it.
	}
	handle, err := rows.Handle(row, index)
	if err != nil {
		return fmt.Sprintf("<error: %v>", err)
	}
	if handle.IsNull() {
		return "null"
	}
	return fmt.Sprintf("%s(%x)", handle.DataType(), handle.Raw())
}
