package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusfind/internal/domain/entity"
)

// Full found-item walkthrough: report, claim, chat, admin verification.
func TestFoundItemClaimWorkflow(t *testing.T) {
	env := newTestEnv(testUser("finder", "Fiona"), testUser("claimant", "Carl"), testAdmin("admin", "Ada"))
	ctx := context.Background()

	// Fiona reports a found backpack.
	report, err := env.reportUC.SubmitReport(ctx, "finder", foundReportInput("Blue Backpack"))
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusPending, report.Status)

	// Carl claims it.
	claim, err := env.claimUC.SubmitClaim(ctx, "claimant", report.ID, SubmitClaimInput{
		ContactInfo: "carl@campus.edu",
		Proof:       "Red keychain on the left strap, chemistry notes inside",
	})
	require.NoError(t, err)

	// A chat now exists between the two with the system opener and the
	// submission message, and the report is awaiting verification.
	messages, _, err := env.chatUC.ListMessages(ctx, "finder", claim.ChatID, 0, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, entity.MessageTypeSystem, messages[0].Type)
	assert.Equal(t, entity.MessageTypeSubmission, messages[1].Type)

	pending, err := env.reportUC.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusClaimPending, pending.Status)

	// Both parties got exactly one notification so far.
	finderNotifs, _, _ := env.notificationUC.List(ctx, "finder", 0, 0)
	claimantNotifs, _, _ := env.notificationUC.List(ctx, "claimant", 0, 0)
	assert.Len(t, finderNotifs, 1)
	assert.Len(t, claimantNotifs, 1)

	// They talk it over.
	_, err = env.chatUC.SendMessage(ctx, "finder", claim.ChatID, SendMessageInput{
		Content: "Can you describe what's inside?",
	})
	require.NoError(t, err)
	_, err = env.chatUC.SendMessage(ctx, "claimant", claim.ChatID, SendMessageInput{
		Content: "Chemistry notes and a blue water bottle",
	})
	require.NoError(t, err)

	// Ada verifies the claim.
	verified, err := env.adminUC.VerifyClaim(ctx, "admin", report.ID, claim.ID, "Description matched")
	require.NoError(t, err)
	assert.Equal(t, entity.CaseStatusVerified, verified.Status)

	// Report closed with the winning claim recorded, mirror in sync.
	resolved, err := env.reportUC.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusResolved, resolved.Status)
	assert.Equal(t, claim.ID, resolved.ResolvedClaimID)

	mirror := env.reports.mirror("finder", report.ID)
	require.NotNil(t, mirror)
	assert.Equal(t, entity.ReportStatusResolved, mirror.Status)

	// The verdict landed in the chat as a system message.
	messages, _, err = env.chatUC.ListMessages(ctx, "finder", claim.ChatID, 0, 0)
	require.NoError(t, err)
	last := messages[len(messages)-1]
	assert.Equal(t, entity.MessageTypeSystem, last.Type)
	assert.Contains(t, last.Content, "verified")

	// And both parties were notified about the verification.
	finderNotifs, _, _ = env.notificationUC.List(ctx, "finder", 0, 0)
	claimantNotifs, _, _ = env.notificationUC.List(ctx, "claimant", 0, 0)
	assert.Len(t, finderNotifs, 2)
	assert.Len(t, claimantNotifs, 2)

	var verdict *entity.Notification
	for _, n := range claimantNotifs {
		if n.Type == entity.NotificationClaimVerified {
			verdict = n
		}
	}
	require.NotNil(t, verdict)
	assert.Equal(t, claim.ID, verdict.ClaimID)
}
