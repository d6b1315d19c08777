package integration

import (
	"context"
	"testing"

	"github.com/squeedr/squeedr-api/internal/models"
	"github.com/squeedr/squeedr-api/internal/services"
	"github.com/squeedr/squeedr-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionRequestService_Integration_ApproveFlow(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewPermissionRequestService(tdb.DB)
	ctx := context.Background()

	requester := fixtures.CreateUser(t, testutil.WithRoles("expert"))
	responder := fixtures.CreateUser(t, testutil.WithRoles("owner"))

	request, err := svc.Create(ctx, requester.ID, []string{"sessions:cancel"}, "handling my own schedule")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Equal(t, requester.Name, request.RequesterName)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	resolved, err := svc.Resolve(ctx, request.ID, responder.ID, true, "approved for this quarter")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, resolved.Status)
	require.NotNil(t, resolved.ResponderID)
	assert.Equal(t, responder.ID, *resolved.ResponderID)
	require.NotNil(t, resolved.ResponseReason)
	assert.Equal(t, "approved for this quarter", *resolved.ResponseReason)

	// A resolved request cannot be resolved again
	_, err = svc.Resolve(ctx, request.ID, responder.ID, false, "changed my mind")
	assert.ErrorIs(t, err, services.ErrRequestResolved)

	pending, err = svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestPermissionRequestService_Integration_DenyKeepsHistory(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewPermissionRequestService(tdb.DB)
	ctx := context.Background()

	requester := fixtures.CreateUser(t, testutil.WithRoles("expert"))
	responder := fixtures.CreateUser(t, testutil.WithRoles("owner"))

	first := fixtures.CreatePermissionRequest(t, requester, []string{"users:manage"}, "covering for the owner")
	second := fixtures.CreatePermissionRequest(t, requester, []string{"workspaces:update"}, "adjusting room rates")

	_, err := svc.Resolve(ctx, first.ID, responder.ID, false, "too broad")
	require.NoError(t, err)

	mine, err := svc.ListForUser(ctx, requester.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	statuses := map[string]string{}
	for _, r := range mine {
		statuses[r.ID.String()] = r.Status
	}
	assert.Equal(t, models.RequestStatusDenied, statuses[first.ID.String()])
	assert.Equal(t, models.RequestStatusPending, statuses[second.ID.String()])
}
