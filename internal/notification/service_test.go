package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/splitledger/internal/database/databasetest"
	"github.com/fkhayef/splitledger/internal/notification"
	"github.com/fkhayef/splitledger/internal/user"
	"github.com/fkhayef/splitledger/pkg/money"
)

func newService(t *testing.T) (*notification.Service, uuid.UUID, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	db := databasetest.Open(t)

	users := user.NewRepository(db)
	ids := make([]uuid.UUID, 2)
	for i, name := range []string{"ana", "ben"} {
		u := &user.User{ID: uuid.New(), Name: name, Email: name + "@example.com", PasswordHash: "x", CreatedAt: time.Now().UTC()}
		require.NoError(t, users.Create(ctx, u))
		ids[i] = u.ID
	}

	return notification.NewService(notification.NewRepository(db)), ids[0], ids[1]
}

func TestService_NotifyHelpers(t *testing.T) {
	svc, ana, _ := newService(t)
	ctx := context.Background()
	groupID, expenseID := uuid.New(), uuid.New()

	require.NoError(t, svc.NotifyMemberAdded(ctx, ana, "Trip", groupID))
	require.NoError(t, svc.NotifyExpenseAdded(ctx, ana, "Dinner", money.MustParse("12.5"), expenseID))
	require.NoError(t, svc.NotifySettlementRecorded(ctx, ana, money.MustParse("20"), "Trip", expenseID))
	require.NoError(t, svc.NotifyGroupSettled(ctx, ana, "Trip", groupID))
	require.NoError(t, svc.NotifyMemberRemoved(ctx, ana, "Trip", groupID))

	list, total, err := svc.ListByRecipientID(ctx, ana, 1, 20, false)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, list, 5)

	messages := make([]string, len(list))
	for i, n := range list {
		messages[i] = n.Message
		require.NotNil(t, n.EntityType)
		require.NotNil(t, n.EntityID)
		assert.False(t, n.IsRead)
	}
	assert.ElementsMatch(t, []string{
		"You have been added to the group Trip",
		`You owe 12.50 for "Dinner"`,
		"You received a settlement of 20.00 in Trip",
		"Trip is fully settled",
		"You have been removed from the group Trip",
	}, messages)
}

func TestService_ReadState(t *testing.T) {
	svc, ana, ben := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, ana, "one", notification.EntityTypeGroup, uuid.New())
	require.NoError(t, err)
	_, err = svc.Create(ctx, ana, "two", notification.EntityTypeGroup, uuid.New())
	require.NoError(t, err)

	count, err := svc.GetUnreadCount(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.ErrorIs(t, svc.MarkAsRead(ctx, first.ID, ben), notification.ErrNotRecipient)
	assert.ErrorIs(t, svc.MarkAsRead(ctx, uuid.New(), ana), notification.ErrNotificationNotFound)
	require.NoError(t, svc.MarkAsRead(ctx, first.ID, ana))

	unread, total, err := svc.ListByRecipientID(ctx, ana, 1, 20, true)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, unread, 1)
	assert.Equal(t, "two", unread[0].Message)

	require.NoError(t, svc.MarkAllAsRead(ctx, ana))
	count, err = svc.GetUnreadCount(ctx, ana)
	require.NoError(t, err)
	assert.Zero(t, count)
}
