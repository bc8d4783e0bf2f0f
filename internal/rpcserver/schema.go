package rpcserver

// schemaSource is this daemon's wire schema, parsed at startup via
// protoparse instead of a checked-in generated .pb.go — the same
// runtime-descriptor technique the teacher's builtins_grpc.go uses for
// user-registered services.
const schemaSource = `syntax = "proto3";

package stackc;

message CompileRequest {
  string ast_json   = 1;
  string source     = 2;
  string class_name = 3;
  string extends    = 4;
}

message Diagnostic {
  string phase    = 1;
  string message  = 2;
  string location = 3;
}

message CompileResponse {
  bool ok = 1;
  string assembly = 2;
  repeated Diagnostic diagnostics = 3;
}

service Compiler {
  rpc Compile(CompileRequest) returns (CompileResponse);
}
`

const schemaFile = "compiler.proto"
