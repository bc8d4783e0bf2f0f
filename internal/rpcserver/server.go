// Package rpcserver implements the compile daemon (spec.md's out-of-process
// orchestrator access path): a Compiler/Compile unary gRPC service whose
// schema is parsed at startup from an embedded .proto string via
// protoparse, with requests and responses handled as dynamic.Message
// values and no generated .pb.go stubs. Grounded on the teacher's
// builtins_grpc.go, which registers user scripts the same way.
package rpcserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"

	"github.com/stackjvm/stackc/internal/astjson"
	"github.com/stackjvm/stackc/internal/compiler"
	"github.com/stackjvm/stackc/internal/diagnostics"
)

var logger = log.New(os.Stderr, "[rpc] ", log.LstdFlags)

// Server is the compile daemon. It holds the parsed service descriptor for
// the embedded schema; nothing else is stateful, each call compiles
// independently.
type Server struct {
	sd *desc.ServiceDescriptor
}

// New parses the embedded schema and locates the Compiler service in it.
func New() (*Server, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{schemaFile: schemaSource}),
	}
	fds, err := parser.ParseFiles(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("rpcserver: parsing embedded schema: %w", err)
	}
	sd := fds[0].FindService("stackc.Compiler")
	if sd == nil {
		return nil, fmt.Errorf("rpcserver: service stackc.Compiler not found in embedded schema")
	}
	return &Server{sd: sd}, nil
}

// Register builds a grpc.ServiceDesc for the Compile method and registers
// it on srv.
func (s *Server) Register(srv *grpc.Server) {
	md := s.sd.FindMethodByName("Compile")
	sdesc := &grpc.ServiceDesc{
		ServiceName: s.sd.GetFullyQualifiedName(),
		HandlerType: (*interface{})(nil),
		Metadata:    s.sd.GetFile().GetName(),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "Compile",
				Handler: func(srvIface interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
					h := srvIface.(*Server)
					return h.handleCompile(ctx, md, dec)
				},
			},
		},
	}
	srv.RegisterService(sdesc, s)
}

func (s *Server) handleCompile(ctx context.Context, md *desc.MethodDescriptor, dec func(interface{}) error) (interface{}, error) {
	requestID := uuid.New()

	reqMsg := dynamic.NewMessage(md.GetInputType())
	if err := dec(reqMsg); err != nil {
		return nil, err
	}

	astJSON, _ := reqMsg.TryGetFieldByName("ast_json")
	source, _ := reqMsg.TryGetFieldByName("source")
	className, _ := reqMsg.TryGetFieldByName("class_name")
	extends, _ := reqMsg.TryGetFieldByName("extends")

	respMsg := dynamic.NewMessage(md.GetOutputType())

	nodes, err := astjson.Decode([]byte(asString(astJSON)))
	if err != nil {
		logger.Printf("request %s: decode error: %v", requestID, err)
		return s.failure(md, respMsg, "decode", err.Error(), "")
	}

	assembly, err := compiler.Compile(nodes, compiler.Options{
		Source:  asString(source),
		Class:   asString(className),
		Extends: asString(extends),
	})
	if err != nil {
		logger.Printf("request %s: compile error: %v", requestID, err)
		phase, loc := "compiler", ""
		var diagErr *diagnostics.Error
		if errors.As(err, &diagErr) {
			phase, loc = string(diagErr.Phase), diagErr.Loc.String()
		}
		return s.failure(md, respMsg, phase, err.Error(), loc)
	}

	logger.Printf("request %s: ok", requestID)
	respMsg.SetFieldByName("ok", true)
	respMsg.SetFieldByName("assembly", assembly)
	return respMsg, nil
}

func (s *Server) failure(md *desc.MethodDescriptor, respMsg *dynamic.Message, phase, message, location string) (interface{}, error) {
	diagField := md.GetOutputType().FindFieldByName("diagnostics")
	diagMsg := dynamic.NewMessage(diagField.GetMessageType())
	diagMsg.SetFieldByName("phase", phase)
	diagMsg.SetFieldByName("message", message)
	diagMsg.SetFieldByName("location", location)

	respMsg.SetFieldByName("ok", false)
	if err := respMsg.SetFieldByName("diagnostics", []interface{}{diagMsg}); err != nil {
		return nil, fmt.Errorf("rpcserver: building diagnostics field: %w", err)
	}
	return respMsg, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
