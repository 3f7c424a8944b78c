// Package types provides shared value types used across the harness: health
// status, credential lookup, runtime capability reporting, execution
// timeouts, and the provisioning-schema contract each driver kind declares.
//
// # Health Types
//
// Health types represent the operational status of a driver or model
// handler:
//
//	status := types.NewHealthyStatus("all systems operational")
//	if status.IsHealthy() {
//	    // Component is fully operational
//	}
//
//	degraded := types.NewDegradedStatus("high latency", map[string]any{
//	    "latency_ms": 500,
//	})
//
// # Target Schema
//
// TargetSchema gives each driver kind (desktop VM, container shell, chain
// validator, browser, message broker, long-context store, ...) a declared,
// JSON-Schema-validated set of provisioning parameters:
//
//	ts := types.TargetSchema{
//	    Type:        "chain_validator",
//	    Version:     "1.0",
//	    Description: "Local Solana/EVM validator connection",
//	    Schema: schema.Object(map[string]schema.JSON{
//	        "rpc_url": schema.StringWithDesc("validator RPC endpoint"),
//	    }, "rpc_url"),
//	}
//	if err := ts.ValidateConnection(connection); err != nil {
//	    log.Fatalf("invalid driver connection: %v", err)
//	}
//
// # Credentials
//
// EnvCredentialStore backs <PROVIDER>_API_KEY resolution: action and model
// handlers look credentials up by name and never accept raw secrets as
// parameters. Credential describes a stored credential record.
//
// # Capabilities
//
// Capabilities records runtime privileges (root, sudo, raw sockets),
// feature flags, blocked arguments and their alternatives. The pipeline
// does not read it.
//
// # JSON Serialization
//
// All types support JSON marshaling and unmarshaling:
//
//	data, err := json.Marshal(status)
//	if err != nil {
//	    log.Fatal(err)
//	}
package types
