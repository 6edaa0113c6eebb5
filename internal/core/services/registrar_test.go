package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/portalsync/internal/core/domain"
	"github.com/custodia-labs/portalsync/internal/core/ports/driving"
)

// newTestRegistrar wires a registrar with a simulated clock: sleeping
// advances the clock instead of blocking, so wall-clock budgets elapse
// instantly.
func newTestRegistrar(tokens *mockTokenProvider, store *mockItemStore) *SchemaRegistrar {
	reg := NewSchemaRegistrar(tokens, store, domain.DefaultSchema())

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }
	reg.sleep = func(_ context.Context, d time.Duration) error {
		now = now.Add(d)
		return nil
	}
	return reg
}

func TestRegister(t *testing.T) {
	t.Run("returns operation reference", func(t *testing.T) {
		store := &mockItemStore{registerRef: "op-123"}
		reg := newTestRegistrar(&mockTokenProvider{token: "tok"}, store)

		op, err := reg.Register(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "op-123", op.Ref)
		assert.Equal(t, domain.StatusNotStarted, op.Status)
	})

	t.Run("host rejection is fatal", func(t *testing.T) {
		store := &mockItemStore{registerErr: errors.New("schema invalid")}
		reg := newTestRegistrar(&mockTokenProvider{token: "tok"}, store)

		_, err := reg.Register(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema invalid")
	})

	t.Run("token failure is fatal", func(t *testing.T) {
		reg := newTestRegistrar(&mockTokenProvider{err: domain.ErrAuthFailed}, &mockItemStore{})

		_, err := reg.Register(context.Background())

		assert.ErrorIs(t, err, domain.ErrAuthFailed)
	})

	t.Run("malformed schema is rejected locally", func(t *testing.T) {
		tokens := &mockTokenProvider{token: "tok"}
		bad := domain.Schema{BaseType: domain.SchemaBaseType, Properties: []domain.Property{
			{Name: "title", Type: domain.PropertyType("Float")},
		}}
		reg := NewSchemaRegistrar(tokens, &mockItemStore{registerRef: "op-1"}, bad)

		_, err := reg.Register(context.Background())

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Zero(t, tokens.calls, "no token exchange for a schema the host would refuse")
	})

	t.Run("empty schema is rejected", func(t *testing.T) {
		reg := NewSchemaRegistrar(&mockTokenProvider{token: "tok"}, &mockItemStore{},
			domain.Schema{BaseType: domain.SchemaBaseType})

		_, err := reg.Register(context.Background())

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCurrentSchema(t *testing.T) {
	t.Run("absence is reported as sentinel, not failure", func(t *testing.T) {
		store := &mockItemStore{schemaErr: domain.ErrSchemaNotFound}
		reg := newTestRegistrar(&mockTokenProvider{token: "tok"}, store)

		_, err := reg.CurrentSchema(context.Background())

		assert.ErrorIs(t, err, domain.ErrSchemaNotFound)
	})

	t.Run("returns registered schema", func(t *testing.T) {
		schema := domain.DefaultSchema()
		store := &mockItemStore{schema: &schema}
		reg := newTestRegistrar(&mockTokenProvider{token: "tok"}, store)

		got, err := reg.CurrentSchema(context.Background())

		require.NoError(t, err)
		assert.Len(t, got.Properties, len(schema.Properties))
	})
}

func TestWaitForCompletion(t *testing.T) {
	t.Run("polls until completed", func(t *testing.T) {
		store := &mockItemStore{
			ops: []domain.Operation{
				{Status: domain.StatusNotStarted},
				{Status: domain.StatusInProgress},
				{Status: domain.StatusCompleted},
			},
		}
		reg := newTestRegistrar(&mockTokenProvider{token: "tok"}, store)

		outcome, err := reg.WaitForCompletion(context.Background(), "op-1", 10*time.Minute, 30*time.Second)

		require.NoError(t, err)
		assert.Equal(t, driving.WaitCompleted, outcome)
		assert.Equal(t, 3, store.opCalls)
	})

	t.Run("failure is terminal and short-circuits", func(t *testing.T) {
		store := &mockItemStore{
			ops: []domain.Operation{
				{Status: domain.StatusFailed, ErrorMessage: "property limit exceeded"},
				{Status: domain.StatusCompleted}, // must never be reached
			},
		}
		reg := newTestRegistrar(&mockTokenProvider{token: "tok"}, store)

		outcome, err := reg.WaitForCompletion(context.Background(), "op-1", 10*time.Minute, 30*time.Second)

		assert.Equal(t, driving.WaitFailed, outcome)
		assert.ErrorIs(t, err, domain.ErrSchemaBuildFailed)
		assert.Contains(t, err.Error(), "property limit exceeded")
		assert.Equal(t, 1, store.opCalls, "no polls after failure is observed")
	})

	t.Run("failure without host message", func(t *testing.T) {
		store := &mockItemStore{ops: []domain.Operation{{Status: domain.StatusFailed}}}
		reg := newTestRegistrar(&mockTokenProvider{token: "tok"}, store)

		outcome, err := reg.WaitForCompletion(context.Background(), "op-1", 10*time.Minute, 30*time.Second)

		assert.Equal(t, driving.WaitFailed, outcome)
		assert.ErrorIs(t, err, domain.ErrSchemaBuildFailed)
	})

	t.Run("wall-clock budget bounds the wait", func(t *testing.T) {
		store := &mockItemStore{ops: []domain.Operation{{Status: domain.StatusInProgress}}}
		reg := newTestRegistrar(&mockTokenProvider{token: "tok"}, store)

		outcome, err := reg.WaitForCompletion(context.Background(), "op-1", 2*time.Minute, 30*time.Second)

		assert.Equal(t, driving.WaitTimedOut, outcome)
		assert.ErrorIs(t, err, domain.ErrSchemaBuildTimedOut)
		assert.Equal(t, 4, store.opCalls, "polls every interval until the budget elapses")
	})

	t.Run("poll transport errors are soft", func(t *testing.T) {
		store := &mockItemStore{
			ops: []domain.Operation{
				{}, // served as an error below
				{Status: domain.StatusCompleted},
			},
			opErrs: []error{errors.New("connection reset")},
		}
		reg := newTestRegistrar(&mockTokenProvider{token: "tok"}, store)

		outcome, err := reg.WaitForCompletion(context.Background(), "op-1", 10*time.Minute, 30*time.Second)

		require.NoError(t, err)
		assert.Equal(t, driving.WaitCompleted, outcome, "a failed poll never aborts the wait")
	})

	t.Run("unknown status keeps polling", func(t *testing.T) {
		store := &mockItemStore{
			ops: []domain.Operation{
				{Status: domain.StatusUnknown},
				{Status: domain.StatusCompleted},
			},
		}
		reg := newTestRegistrar(&mockTokenProvider{token: "tok"}, store)

		outcome, err := reg.WaitForCompletion(context.Background(), "op-1", 10*time.Minute, 30*time.Second)

		require.NoError(t, err)
		assert.Equal(t, driving.WaitCompleted, outcome)
	})

	t.Run("cancelled context stops the wait", func(t *testing.T) {
		store := &mockItemStore{ops: []domain.Operation{{Status: domain.StatusInProgress}}}
		reg := NewSchemaRegistrar(&mockTokenProvider{token: "tok"}, store, domain.DefaultSchema())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		outcome, err := reg.WaitForCompletion(ctx, "op-1", 10*time.Minute, time.Millisecond)

		assert.Equal(t, driving.WaitTimedOut, outcome)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("token failure aborts before polling", func(t *testing.T) {
		store := &mockItemStore{ops: []domain.Operation{{Status: domain.StatusCompleted}}}
		reg := newTestRegistrar(&mockTokenProvider{err: domain.ErrAuthFailed}, store)

		_, err := reg.WaitForCompletion(context.Background(), "op-1", time.Minute, time.Second)

		assert.ErrorIs(t, err, domain.ErrAuthFailed)
		assert.Zero(t, store.opCalls)
	})
}

func TestOperationStatus(t *testing.T) {
	store := &mockItemStore{
		ops: []domain.Operation{{Ref: "op-9", Status: domain.StatusInProgress}},
	}
	reg := newTestRegistrar(&mockTokenProvider{token: "tok"}, store)

	op, err := reg.OperationStatus(context.Background(), "op-9")

	require.NoError(t, err)
	assert.Equal(t, "op-9", op.Ref)
	assert.Equal(t, domain.StatusInProgress, op.Status)
}

func TestOperations(t *testing.T) {
	t.Run("lists every recorded operation", func(t *testing.T) {
		store := &mockItemStore{
			listedOps: []domain.Operation{
				{Ref: "op-1", Status: domain.StatusCompleted},
				{Ref: "op-2", Status: domain.StatusFailed, ErrorMessage: "property limit exceeded"},
			},
		}
		reg := newTestRegistrar(&mockTokenProvider{token: "tok"}, store)

		ops, err := reg.Operations(context.Background())

		require.NoError(t, err)
		require.Len(t, ops, 2)
		assert.Equal(t, "op-1", ops[0].Ref)
		assert.Equal(t, domain.StatusFailed, ops[1].Status)
	})

	t.Run("token failure aborts the listing", func(t *testing.T) {
		tokens := &mockTokenProvider{err: domain.ErrAuthFailed}
		reg := newTestRegistrar(tokens, &mockItemStore{})

		_, err := reg.Operations(context.Background())

		assert.ErrorIs(t, err, domain.ErrAuthFailed)
	})
}
