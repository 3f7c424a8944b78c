package environment

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/agentbench/harness/scenario"
	"github.com/agentbench/harness/types"
)

// RemoteDriver reaches an out-of-process driver over gRPC. Benchmarks whose
// environment cannot live in the harness process (a real VM host, a
// dedicated validator node) implement a small gRPC service exposing
// start/observe/step/reset/teardown as generic struct-in/struct-out RPCs and
// register RemoteDriver instead of an in-process Driver.
//
// The wire contract intentionally avoids generated stubs: every RPC takes
// and returns a google.protobuf.Struct, keeping the remote side free to
// version its own scenario/observation shapes independently of the harness.
type RemoteDriver struct {
	conn         *grpc.ClientConn
	service      string
	capabilities Capabilities
	kindSchema   *types.TargetSchema
}

// RemoteDriverOption configures a RemoteDriver.
type RemoteDriverOption func(*RemoteDriver) error

// WithRemoteCapabilities sets the capability set the driver reports. The
// remote side is never queried for capabilities; without this option
// Capabilities returns a nil (empty) set.
func WithRemoteCapabilities(caps Capabilities) RemoteDriverOption {
	return func(d *RemoteDriver) error {
		d.capabilities = caps
		return nil
	}
}

// WithTargetSchema declares the provisioning schema for this driver kind
// (one per desktop VM / container shell / chain validator / browser / ...)
// and validates connection against it before the driver is allowed to dial.
// A scenario's required_capabilities are checked separately via
// Capabilities.Satisfies; this check instead guards the out-of-band
// connection parameters (host, namespace, validator RPC URL, ...) that
// never flow through the scenario file itself.
func WithTargetSchema(ts types.TargetSchema, connection map[string]any) RemoteDriverOption {
	return func(d *RemoteDriver) error {
		if err := ts.ValidateConnection(connection); err != nil {
			return fmt.Errorf("environment: target schema %s: %w", ts.Type, err)
		}
		d.kindSchema = &ts
		return nil
	}
}

// KindSchema returns the driver-kind provisioning schema configured via
// WithTargetSchema, or nil if none was set.
func (d *RemoteDriver) KindSchema() *types.TargetSchema { return d.kindSchema }

// NewRemoteDriver dials target and returns a Driver that forwards every
// lifecycle call to the gRPC service named fullServiceName
// (e.g. "agentbench.environment.Driver").
func NewRemoteDriver(target, fullServiceName string, opts ...RemoteDriverOption) (*RemoteDriver, error) {
	d := &RemoteDriver{service: fullServiceName}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("environment: dial %s: %w", target, err)
	}
	d.conn = conn
	return d, nil
}

// Close releases the underlying gRPC connection.
func (d *RemoteDriver) Close() error { return d.conn.Close() }

// Capabilities returns the set configured via WithRemoteCapabilities.
func (d *RemoteDriver) Capabilities() Capabilities { return d.capabilities }

// Start opens a remote environment instance for s and returns a handle that
// forwards Observe/Step/Reset/Teardown to the same RPC service.
func (d *RemoteDriver) Start(ctx context.Context, s scenario.Scenario) (Environment, error) {
	req, err := structpb.NewStruct(map[string]any{"scenario_id": s.ID, "level": float64(s.Level)})
	if err != nil {
		return nil, fmt.Errorf("environment: encode start request: %w", err)
	}
	handle, err := d.invoke(ctx, "Start", req)
	if err != nil {
		return nil, err
	}
	return &remoteEnvironment{driver: d, handle: handle}, nil
}

func (d *RemoteDriver) method(name string) string {
	return fmt.Sprintf("/%s/%s", d.service, name)
}

func (d *RemoteDriver) invoke(ctx context.Context, method string, req *structpb.Struct) (*structpb.Struct, error) {
	resp := &structpb.Struct{}
	if err := d.conn.Invoke(ctx, d.method(method), req, resp); err != nil {
		return nil, fmt.Errorf("environment: remote %s: %w", method, err)
	}
	return resp, nil
}

// remoteEnvironment is the per-scenario handle returned by RemoteDriver.Start.
type remoteEnvironment struct {
	driver *RemoteDriver
	handle *structpb.Struct
}

func (e *remoteEnvironment) Observe(ctx context.Context) (Observation, error) {
	resp, err := e.driver.invoke(ctx, "Observe", e.handle)
	if err != nil {
		return Observation{}, err
	}
	return observationFromStruct(resp), nil
}

func (e *remoteEnvironment) Step(ctx context.Context, action Action) (StepResult, error) {
	req, err := structpb.NewStruct(map[string]any{
		"handle":     e.handle.AsMap(),
		"action":     action.Name,
		"parameters": action.Parameters,
		"raw_code":   action.RawCode,
	})
	if err != nil {
		return StepResult{}, fmt.Errorf("environment: encode step request: %w", err)
	}
	resp, err := e.driver.invoke(ctx, "Step", req)
	if err != nil {
		return StepResult{}, err
	}
	m := resp.AsMap()
	result := StepResult{
		Observation: observationFromMap(asMap(m["observation"])),
		Done:        asBool(m["done"]),
		Info:        asMap(m["info"]),
	}
	if r, ok := m["reward"].(float64); ok {
		result.Reward = r
	}
	return result, nil
}

func (e *remoteEnvironment) Reset(ctx context.Context, withinScenario bool) (Observation, error) {
	req, err := structpb.NewStruct(map[string]any{
		"handle":          e.handle.AsMap(),
		"within_scenario": withinScenario,
	})
	if err != nil {
		return Observation{}, fmt.Errorf("environment: encode reset request: %w", err)
	}
	resp, err := e.driver.invoke(ctx, "Reset", req)
	if err != nil {
		return Observation{}, err
	}
	return observationFromStruct(resp), nil
}

func (e *remoteEnvironment) Teardown(ctx context.Context) error {
	_, err := e.driver.invoke(ctx, "Teardown", e.handle)
	return err
}

func observationFromStruct(s *structpb.Struct) Observation {
	return observationFromMap(s.AsMap())
}

func observationFromMap(m map[string]any) Observation {
	obs := Observation{}
	if v, ok := m["instruction"].(string); ok {
		obs.Instruction = v
	}
	if v, ok := m["step_index"].(float64); ok {
		obs.StepIndex = int(v)
	}
	if v, ok := m["max_steps"].(float64); ok {
		obs.MaxSteps = int(v)
	}
	obs.StructuredState = m["structured_state"]
	if v, ok := m["previous_actions"].([]any); ok {
		for _, pa := range v {
			if s, ok := pa.(string); ok {
				obs.PreviousActions = append(obs.PreviousActions, s)
			}
		}
	}
	return obs
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
