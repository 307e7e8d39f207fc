package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusfind/internal/domain/entity"
)

func submitTestClaim(t *testing.T, env *testEnv, claimantID, reportID string) *entity.Claim {
	t.Helper()
	claim, err := env.claimUC.SubmitClaim(context.Background(), claimantID, reportID, SubmitClaimInput{
		ContactInfo: claimantID + "@campus.edu",
		Proof:       "Distinctive scratch across the bottom corner",
	})
	require.NoError(t, err)
	return claim
}

func TestVerifyClaimResolvesReport(t *testing.T) {
	env := newTestEnv(testUser("finder", "Fiona"), testUser("claimant", "Carl"), testAdmin("admin", "Ada"))
	ctx := context.Background()

	report := env.mustSubmitReport(ctx, "finder", foundReportInput("Blue Backpack"))
	claim := submitTestClaim(t, env, "claimant", report.ID)

	resolved, err := env.adminUC.VerifyClaim(ctx, "admin", report.ID, claim.ID, "ID checked at the desk")
	require.NoError(t, err)
	assert.Equal(t, entity.CaseStatusVerified, resolved.Status)
	assert.Equal(t, "admin", resolved.ResolvedBy)
	assert.Equal(t, "ID checked at the desk", resolved.AdminNotes)
	require.NotNil(t, resolved.ResolvedAt)

	updated, err := env.reportUC.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusResolved, updated.Status)
	assert.Equal(t, claim.ID, updated.ResolvedClaimID)
	assert.Equal(t, "admin", updated.ResolvedBy)

	mirror := env.reports.mirror("finder", report.ID)
	require.NotNil(t, mirror)
	assert.Equal(t, entity.ReportStatusResolved, mirror.Status)
	assert.Equal(t, claim.ID, mirror.ResolvedClaimID)
}

func TestVerifyClaimTwiceConflicts(t *testing.T) {
	env := newTestEnv(testUser("finder", "Fiona"), testUser("claimant", "Carl"), testAdmin("admin", "Ada"))
	ctx := context.Background()

	report := env.mustSubmitReport(ctx, "finder", foundReportInput("Blue Backpack"))
	claim := submitTestClaim(t, env, "claimant", report.ID)

	_, err := env.adminUC.VerifyClaim(ctx, "admin", report.ID, claim.ID, "")
	require.NoError(t, err)

	_, err = env.adminUC.VerifyClaim(ctx, "admin", report.ID, claim.ID, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFLICT")
}

func TestRejectClaimLeavesReportUntouched(t *testing.T) {
	env := newTestEnv(testUser("finder", "Fiona"), testUser("claimant", "Carl"), testAdmin("admin", "Ada"))
	ctx := context.Background()

	report := env.mustSubmitReport(ctx, "finder", foundReportInput("Blue Backpack"))
	claim := submitTestClaim(t, env, "claimant", report.ID)

	before, err := env.reportUC.GetReport(ctx, report.ID)
	require.NoError(t, err)

	rejected, err := env.adminUC.RejectClaim(ctx, "admin", report.ID, claim.ID, "Proof did not match")
	require.NoError(t, err)
	assert.Equal(t, entity.CaseStatusRejected, rejected.Status)

	after, err := env.reportUC.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Status, after.Status, "rejection must not change the report status")
	assert.Empty(t, after.ResolvedClaimID)

	// The claimant learns why.
	notifs, _, _ := env.notifications.ListByUser(ctx, "claimant", 0, 0)
	var rejectedNotif *entity.Notification
	for _, n := range notifs {
		if n.Type == entity.NotificationClaimRejected {
			rejectedNotif = n
		}
	}
	require.NotNil(t, rejectedNotif)
	assert.Contains(t, rejectedNotif.Message, "Proof did not match")
}

func TestVerifyReturnMarksReportReturned(t *testing.T) {
	env := newTestEnv(testUser("owner", "Olivia"), testUser("returner", "Rita"), testAdmin("admin", "Ada"))
	ctx := context.Background()

	report := env.mustSubmitReport(ctx, "owner", lostReportInput("Laptop"))

	ret, err := env.claimUC.SubmitReturn(ctx, "returner", report.ID, SubmitReturnInput{
		ContactInfo: "returner@campus.edu",
		Description: "Found it under a cafeteria table",
	})
	require.NoError(t, err)

	resolved, err := env.adminUC.VerifyReturn(ctx, "admin", report.ID, ret.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.CaseStatusVerified, resolved.Status)

	updated, err := env.reportUC.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusReturned, updated.Status)
	assert.Equal(t, ret.ID, updated.ResolvedReturnID)
}

func TestRejectReturnLeavesReportUntouched(t *testing.T) {
	env := newTestEnv(testUser("owner", "Olivia"), testUser("returner", "Rita"), testAdmin("admin", "Ada"))
	ctx := context.Background()

	report := env.mustSubmitReport(ctx, "owner", lostReportInput("Laptop"))

	ret, err := env.claimUC.SubmitReturn(ctx, "returner", report.ID, SubmitReturnInput{
		ContactInfo: "returner@campus.edu",
		Description: "Might be the one from the notice board",
	})
	require.NoError(t, err)

	_, err = env.adminUC.RejectReturn(ctx, "admin", report.ID, ret.ID, "Wrong model")
	require.NoError(t, err)

	after, err := env.reportUC.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusReturnPending, after.Status)
	assert.Empty(t, after.ResolvedReturnID)
}

func TestJoinChatIdempotent(t *testing.T) {
	env := newTestEnv(testUser("finder", "Fiona"), testUser("claimant", "Carl"), testAdmin("admin", "Ada"))
	ctx := context.Background()

	report := env.mustSubmitReport(ctx, "finder", foundReportInput("Blue Backpack"))
	claim := submitTestClaim(t, env, "claimant", report.ID)

	chat, err := env.adminUC.JoinChat(ctx, "admin", claim.ChatID)
	require.NoError(t, err)
	assert.True(t, chat.AdminJoined)
	assert.Contains(t, chat.Participants, "admin")

	messagesAfterFirst, _, _ := env.chats.ListMessages(ctx, claim.ChatID, 0, 0)
	notifsAfterFirst, _, _ := env.notifications.ListByUser(ctx, "finder", 0, 0)

	_, err = env.adminUC.JoinChat(ctx, "admin", claim.ChatID)
	require.NoError(t, err)

	messagesAfterSecond, _, _ := env.chats.ListMessages(ctx, claim.ChatID, 0, 0)
	notifsAfterSecond, _, _ := env.notifications.ListByUser(ctx, "finder", 0, 0)

	assert.Len(t, messagesAfterSecond, len(messagesAfterFirst), "second join must not add messages")
	assert.Len(t, notifsAfterSecond, len(notifsAfterFirst), "second join must not notify again")
}

func TestConcurrentAdminJoinsAnnounceOnce(t *testing.T) {
	env := newTestEnv(testUser("finder", "Fiona"), testUser("claimant", "Carl"),
		testAdmin("admin", "Ada"), testAdmin("admin2", "Abe"))
	ctx := context.Background()

	report := env.mustSubmitReport(ctx, "finder", foundReportInput("Blue Backpack"))
	claim := submitTestClaim(t, env, "claimant", report.ID)

	messagesBefore, _, _ := env.chats.ListMessages(ctx, claim.ChatID, 0, 0)
	notifsBefore, _, _ := env.notifications.ListByUser(ctx, "finder", 0, 0)

	var wg sync.WaitGroup
	for _, adminID := range []string{"admin", "admin2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := env.adminUC.JoinChat(ctx, id, claim.ChatID)
			assert.NoError(t, err)
		}(adminID)
	}
	wg.Wait()

	messagesAfter, _, _ := env.chats.ListMessages(ctx, claim.ChatID, 0, 0)
	notifsAfter, _, _ := env.notifications.ListByUser(ctx, "finder", 0, 0)

	assert.Len(t, messagesAfter, len(messagesBefore)+1, "racing joins must announce exactly once")
	assert.Len(t, notifsAfter, len(notifsBefore)+1, "racing joins must notify each participant exactly once")
}

func TestListClaimsDefaultsToPending(t *testing.T) {
	env := newTestEnv(testUser("finder", "Fiona"), testUser("claimant", "Carl"), testAdmin("admin", "Ada"))
	ctx := context.Background()

	report := env.mustSubmitReport(ctx, "finder", foundReportInput("Blue Backpack"))
	claim := submitTestClaim(t, env, "claimant", report.ID)

	pending, total, err := env.adminUC.ListClaims(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	assert.Equal(t, claim.ID, pending[0].ID)

	_, err = env.adminUC.VerifyClaim(ctx, "admin", report.ID, claim.ID, "")
	require.NoError(t, err)

	pending, _, err = env.adminUC.ListClaims(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)

	verified, _, err := env.adminUC.ListClaims(ctx, entity.CaseStatusVerified, 0, 0)
	require.NoError(t, err)
	assert.Len(t, verified, 1)
}
