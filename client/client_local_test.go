// Copyright 2020 DataStax
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client_test

import (
	"context"
	"fmt"
	"github.com/nativecql/cql/client"
	"github.com/nativecql/cql/frame"
	"github.com/nativecql/cql/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

func TestLocalServer(t *testing.T) {
	for genName, generator := range streamIdGenerators {
		t.Run(fmt.Sprintf("generator %v", genName), func(t *testing.T) {

			for _, compression := range compressions {
				t.Run(fmt.Sprintf("compression %v", compression), func(t *testing.T) {

					server := client.NewCqlServer(
						"127.0.0.1:9043",
						&client.AuthCredentials{
							Username: "cassandra",
							Password: "cassandra",
						},
					)

					clt := client.NewCqlClient(
						"127.0.0.1:9043",
						&client.AuthCredentials{
							Username: "cassandra",
							Password: "cassandra",
						},
					)
					clt.Compression = compression

					ctx, cancelFn := context.WithCancel(context.Background())

					err := server.Start(ctx)
					require.Nil(t, err)

					clientConn, serverConn, err := server.BindAndInit(clt, ctx, client.ManagedStreamId)
					require.Nil(t, err)

					playServer(serverConn, ctx)
					playClient(t, clientConn, generator)

					cancelFn()

					assert.Eventually(t, clientConn.IsClosed, time.Second*10, time.Millisecond*10)
					assert.Eventually(t, serverConn.IsClosed, time.Second*10, time.Millisecond*10)
					assert.Eventually(t, server.IsClosed, time.Second*10, time.Millisecond*10)

				})
			}
		})
	}
}

func playServer(
	serverConn *client.CqlServerConnection,
	ctx context.Context,
) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				incoming, err := serverConn.Receive()
				if err != nil {
					return
				}
				outgoing := frame.NewFrame(
					incoming.Header.StreamId,
					&message.RowsResult{
						Metadata: &message.RowsMetadata{ColumnCount: 1},
						Data: message.RowSet{
							message.Row{
								message.Column{0, 0, 0, 4, 1, 2, 3, 4},
							},
							message.Row{
								message.Column{0, 0, 0, 4, 5, 6, 7, 8},
							},
						},
					},
				)
				err = serverConn.Send(outgoing)
				if err != nil {
					return
				}
			}
		}
	}()
}

func playClient(
	t *testing.T,
	clientConn *client.CqlClientConnection,
	generateStreamId func(int) int16,
) {
	wg := &sync.WaitGroup{}
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 1; j <= 10; j++ {
				outgoing := frame.NewFrame(
					generateStreamId(i),
					&message.Query{
						Query:   "SELECT * FROM system.local",
						Options: &message.QueryOptions{},
					},
				)
				incoming, err := clientConn.SendAndReceive(outgoing)
				require.Nil(t, err)
				require.NotNil(t, incoming)
			}

		}(i)
	}
	wg.Wait()
}
