package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/custodia-labs/portalsync/internal/core/domain"
	"github.com/custodia-labs/portalsync/internal/core/ports/driving"
)

// --- Fake services for command tests ---

type fakeProvisioner struct {
	created   *domain.Connection
	createErr error

	conns   []domain.Connection
	listErr error

	status    *driving.ConnectionStatus
	statusErr error
}

var _ driving.Provisioner = (*fakeProvisioner)(nil)

func (f *fakeProvisioner) CreateConnection(_ context.Context) (*domain.Connection, error) {
	return f.created, f.createErr
}

func (f *fakeProvisioner) ListConnections(_ context.Context) ([]domain.Connection, error) {
	return f.conns, f.listErr
}

func (f *fakeProvisioner) Status(_ context.Context) (*driving.ConnectionStatus, error) {
	return f.status, f.statusErr
}

type fakeRegistrar struct {
	schema    *domain.Schema
	schemaErr error

	registered  *domain.Operation
	registerErr error

	outcome   driving.WaitOutcome
	waitErr   error
	waitCalls int

	statusOp    *domain.Operation
	statusOpErr error

	listedOps  []domain.Operation
	listOpsErr error
}

var _ driving.SchemaRegistrar = (*fakeRegistrar)(nil)

func (f *fakeRegistrar) CurrentSchema(_ context.Context) (*domain.Schema, error) {
	return f.schema, f.schemaErr
}

func (f *fakeRegistrar) Register(_ context.Context) (*domain.Operation, error) {
	return f.registered, f.registerErr
}

func (f *fakeRegistrar) WaitForCompletion(_ context.Context, _ string, _, _ time.Duration) (driving.WaitOutcome, error) {
	f.waitCalls++
	return f.outcome, f.waitErr
}

func (f *fakeRegistrar) OperationStatus(_ context.Context, _ string) (*domain.Operation, error) {
	return f.statusOp, f.statusOpErr
}

func (f *fakeRegistrar) Operations(_ context.Context) ([]domain.Operation, error) {
	return f.listedOps, f.listOpsErr
}

type fakeSync struct {
	report      *driving.SyncReport
	err         error
	allCalls    int
	sampleCalls int
}

var _ driving.SyncOrchestrator = (*fakeSync)(nil)

func (f *fakeSync) SyncAll(_ context.Context) (*driving.SyncReport, error) {
	f.allCalls++
	return f.report, f.err
}

func (f *fakeSync) SyncSamples(_ context.Context) (*driving.SyncReport, error) {
	f.sampleCalls++
	return f.report, f.err
}

// executeCommand runs the root command with the given arguments and
// returns the combined output. Service injections and flags are restored
// afterwards.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)

		provisioner = nil
		schemaRegistrar = nil
		syncOrchestrator = nil
		schemaForce = false
		schemaMaxWait = 0
		schemaPollInterval = 0
		syncTest = false
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
