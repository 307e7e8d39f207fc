package usecase

import (
	"campusfind/internal/domain/entity"
)

// EventPublisher pushes realtime events out to connected clients. Delivery is
// best effort: offline recipients rely on the persisted notification inbox.
type EventPublisher interface {
	PublishMessage(chatID string, message *entity.Message)
	PublishChatUpdate(chat *entity.Chat)
	PublishNotification(userID string, notification *entity.Notification)
	PublishReportUpdate(report *entity.Report)
}

// NopEventPublisher drops every event. Used in tests and for tooling that runs
// without a websocket hub.
type NopEventPublisher struct{}

func (NopEventPublisher) PublishMessage(string, *entity.Message)           {}
func (NopEventPublisher) PublishChatUpdate(*entity.Chat)                   {}
func (NopEventPublisher) PublishNotification(string, *entity.Notification) {}
func (NopEventPublisher) PublishReportUpdate(*entity.Report)               {}
