package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/portalsync/internal/core/domain"
	"github.com/custodia-labs/portalsync/internal/core/ports/driving"
)

func TestSchemaRegisterCmd(t *testing.T) {
	t.Run("registers and waits to completion", func(t *testing.T) {
		schemaRegistrar = &fakeRegistrar{
			schemaErr:  domain.ErrSchemaNotFound,
			registered: &domain.Operation{Ref: "op-1", Status: domain.StatusNotStarted},
			outcome:    driving.WaitCompleted,
		}

		out, err := executeCommand(t, "schema", "register")

		require.NoError(t, err)
		assert.Contains(t, out, "Operation: op-1")
		assert.Contains(t, out, "Schema build completed")
	})

	t.Run("existing schema requires force", func(t *testing.T) {
		schema := domain.DefaultSchema()
		reg := &fakeRegistrar{schema: &schema}
		schemaRegistrar = reg

		out, err := executeCommand(t, "schema", "register")

		require.NoError(t, err)
		assert.Contains(t, out, "already registered")
		assert.Contains(t, out, "--force")
		assert.Zero(t, reg.waitCalls, "no registration without --force")
	})

	t.Run("force replaces an existing schema", func(t *testing.T) {
		schema := domain.DefaultSchema()
		schemaRegistrar = &fakeRegistrar{
			schema:     &schema,
			registered: &domain.Operation{Ref: "op-2"},
			outcome:    driving.WaitCompleted,
		}

		out, err := executeCommand(t, "schema", "register", "--force")

		require.NoError(t, err)
		assert.Contains(t, out, "Updating existing schema")
		assert.Contains(t, out, "Schema build completed")
	})

	t.Run("build failure is an error", func(t *testing.T) {
		schemaRegistrar = &fakeRegistrar{
			schemaErr:  domain.ErrSchemaNotFound,
			registered: &domain.Operation{Ref: "op-3"},
			outcome:    driving.WaitFailed,
			waitErr:    domain.ErrSchemaBuildFailed,
		}

		_, err := executeCommand(t, "schema", "register")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrSchemaBuildFailed)
	})

	t.Run("timeout is not an error and names the re-check command", func(t *testing.T) {
		schemaRegistrar = &fakeRegistrar{
			schemaErr:  domain.ErrSchemaNotFound,
			registered: &domain.Operation{Ref: "op-4"},
			outcome:    driving.WaitTimedOut,
			waitErr:    domain.ErrSchemaBuildTimedOut,
		}

		out, err := executeCommand(t, "schema", "register")

		require.NoError(t, err, "a timed-out build may still finish server-side")
		assert.Contains(t, out, "schema status op-4")
	})
}

func TestSchemaStatusCmd(t *testing.T) {
	t.Run("prints the operation state", func(t *testing.T) {
		schemaRegistrar = &fakeRegistrar{
			statusOp: &domain.Operation{Ref: "op-9", Status: domain.StatusInProgress},
		}

		out, err := executeCommand(t, "schema", "status", "op-9")

		require.NoError(t, err)
		assert.Contains(t, out, "op-9")
		assert.Contains(t, out, "inprogress")
	})

	t.Run("includes the host failure detail", func(t *testing.T) {
		schemaRegistrar = &fakeRegistrar{
			statusOp: &domain.Operation{Ref: "op-9", Status: domain.StatusFailed, ErrorMessage: "too many properties"},
		}

		out, err := executeCommand(t, "schema", "status", "op-9")

		require.NoError(t, err)
		assert.Contains(t, out, "too many properties")
	})

	t.Run("lists all operations without a reference", func(t *testing.T) {
		schemaRegistrar = &fakeRegistrar{
			listedOps: []domain.Operation{
				{Ref: "op-1", Status: domain.StatusCompleted},
				{Ref: "op-2", Status: domain.StatusFailed, ErrorMessage: "property limit exceeded"},
			},
		}

		out, err := executeCommand(t, "schema", "status")

		require.NoError(t, err)
		assert.Contains(t, out, "op-1  completed")
		assert.Contains(t, out, "op-2  failed  property limit exceeded")
	})

	t.Run("reports an empty operation list", func(t *testing.T) {
		schemaRegistrar = &fakeRegistrar{}

		out, err := executeCommand(t, "schema", "status")

		require.NoError(t, err)
		assert.Contains(t, out, "No operations found.")
	})

	t.Run("listing failure is surfaced", func(t *testing.T) {
		schemaRegistrar = &fakeRegistrar{listOpsErr: errors.New("boom")}

		_, err := executeCommand(t, "schema", "status")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "list operations")
	})
}
