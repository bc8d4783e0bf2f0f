// Command jasmincd runs the compile daemon: internal/rpcserver's
// Compiler/Compile gRPC service bound to a TCP listener.
package main

import (
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/stackjvm/stackc/internal/rpcserver"
)

func main() {
	addr := ":7777"
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}

	srv, err := rpcserver.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "jasmincd: %v\n", err)
		os.Exit(1)
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jasmincd: listening on %s: %v\n", addr, err)
		os.Exit(1)
	}

	grpcServer := grpc.NewServer()
	srv.Register(grpcServer)

	fmt.Fprintf(os.Stderr, "jasmincd: serving on %s\n", addr)
	if err := grpcServer.Serve(lis); err != nil {
		fmt.Fprintf(os.Stderr, "jasmincd: %v\n", err)
		os.Exit(1)
	}
}
