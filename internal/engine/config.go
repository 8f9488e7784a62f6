package engine

// Config selects where ExecutionContext.Execute actually runs a physical
// plan, mirroring original_source/src/exec.rs's DFConfig::{Local,Remote}
// split. Remote is kept as a real variant - not deleted - because the
// spec calls for the shape to exist even though this core never
// implements distributed execution: Execute always returns
// ErrRemoteUnsupported for it.
type Config struct {
	// Remote, when true, routes Execute to the (unimplemented) remote
	// path; Endpoint names the worker coordinator address, unused beyond
	// being carried for a future implementation.
	Remote   bool
	Endpoint string
}

// Local is the zero-value, default configuration: execution happens
// in-process against locally registered tables.
func Local() Config { return Config{} }

// RemoteConfig builds a Config that targets a remote coordinator at
// endpoint. Execute against it always fails with ErrRemoteUnsupported.
func RemoteConfig(endpoint string) Config {
	return Config{Remote: true, Endpoint: endpoint}
}
