package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Generation
	FieldKind      = "kind"
	FieldCount     = "count"
	FieldNamespace = "namespace"
	FieldFormat    = "format"
	FieldKey       = "key"

	// Service
	FieldService = "service"

	// gRPC
	FieldGRPCMethod = "grpc_method"
	FieldGRPCCode   = "grpc_code"

	// Log type (for audit log)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
