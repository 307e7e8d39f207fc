package usecase

import (
	"context"

	"campusfind/internal/domain/entity"
	"campusfind/internal/infrastructure/ratelimit"
)

type testEnv struct {
	reports       *fakeReportRepo
	claims        *fakeClaimRepo
	returns       *fakeReturnRepo
	chats         *fakeChatRepo
	users         *fakeUserRepo
	notifications *fakeNotificationRepo
	events        *recordingPublisher

	reportUC       *ReportUseCase
	claimUC        *ClaimUseCase
	chatUC         *ChatUseCase
	adminUC        *AdminUseCase
	notificationUC *NotificationUseCase
}

func newTestEnv(users ...*entity.User) *testEnv {
	reports := newFakeReportRepo()
	claims := newFakeClaimRepo(reports)
	returns := newFakeReturnRepo(reports)
	chats := newFakeChatRepo()
	userRepo := newFakeUserRepo(users...)
	notifRepo := newFakeNotificationRepo(userRepo)
	events := newRecordingPublisher()
	limiter := ratelimit.NewRateLimiter()

	notificationUC := NewNotificationUseCase(notifRepo, userRepo, events)

	return &testEnv{
		reports:        reports,
		claims:         claims,
		returns:        returns,
		chats:          chats,
		users:          userRepo,
		notifications:  notifRepo,
		events:         events,
		reportUC:       NewReportUseCase(reports, userRepo, events, limiter),
		claimUC:        NewClaimUseCase(reports, claims, returns, chats, userRepo, notificationUC, events, limiter),
		chatUC:         NewChatUseCase(chats, reports, userRepo, events, limiter),
		adminUC:        NewAdminUseCase(reports, claims, returns, chats, userRepo, notificationUC, events),
		notificationUC: notificationUC,
	}
}

func testUser(id, name string) *entity.User {
	return &entity.User{
		ID:          id,
		Email:       id + "@campus.edu",
		DisplayName: name,
		Role:        entity.RoleUser,
	}
}

func testAdmin(id, name string) *entity.User {
	u := testUser(id, name)
	u.Role = entity.RoleAdmin
	return u
}

func (env *testEnv) mustSubmitReport(ctx context.Context, userID string, input SubmitReportInput) *entity.Report {
	report, err := env.reportUC.SubmitReport(ctx, userID, input)
	if err != nil {
		panic(err)
	}
	return report
}

func foundReportInput(itemName string) SubmitReportInput {
	return SubmitReportInput{
		Type:         entity.ReportTypeFound,
		Category:     "bags",
		ItemName:     itemName,
		Location:     "Library, 2nd floor",
		Date:         "2026-08-30",
		ContactEmail: "finder@campus.edu",
	}
}

func lostReportInput(itemName string) SubmitReportInput {
	return SubmitReportInput{
		Type:         entity.ReportTypeLost,
		Category:     "electronics",
		ItemName:     itemName,
		Location:     "Cafeteria",
		Date:         "2026-08-29",
		ContactEmail: "owner@campus.edu",
	}
}
