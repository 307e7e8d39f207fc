package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"campusfind/internal/domain/entity"
	"campusfind/internal/domain/repository"
	"campusfind/pkg/errors"
)

// In-memory repositories mimicking the Firestore adapters closely enough to
// exercise the coordination logic: mirror copies, conditional resolve, unread
// counters.

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[string]*entity.Report
	mirrors map[string]map[string]*entity.Report // userID -> reportID -> copy
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{
		reports: make(map[string]*entity.Report),
		mirrors: make(map[string]map[string]*entity.Report),
	}
}

func copyReport(r *entity.Report) *entity.Report {
	cp := *r
	return &cp
}

func (f *fakeReportRepo) Create(ctx context.Context, report *entity.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt

	f.reports[report.ID] = copyReport(report)
	if f.mirrors[report.UserID] == nil {
		f.mirrors[report.UserID] = make(map[string]*entity.Report)
	}
	f.mirrors[report.UserID][report.ID] = copyReport(report)
	return nil
}

func (f *fakeReportRepo) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	report, ok := f.reports[id]
	if !ok {
		return nil, errors.NotFound("Report", nil)
	}
	return copyReport(report), nil
}

func (f *fakeReportRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Report, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Report
	for _, r := range f.reports {
		if t, ok := filter["type"]; ok && r.Type != t {
			continue
		}
		if cat, ok := filter["category"]; ok && r.Category != cat {
			continue
		}
		if s, ok := filter["status"]; ok && r.Status != s {
			continue
		}
		out = append(out, copyReport(r))
	}
	return out, int64(len(out)), nil
}

func (f *fakeReportRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Report, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Report
	for _, r := range f.reports {
		if r.UserID == userID {
			out = append(out, copyReport(r))
		}
	}
	return out, int64(len(out)), nil
}

func applyReportFields(r *entity.Report, fields map[string]interface{}) {
	for key, value := range fields {
		switch key {
		case "status":
			r.Status = value.(string)
		case "chatId":
			r.ChatID = value.(string)
		case "category":
			r.Category = value.(string)
		case "itemName":
			r.ItemName = value.(string)
		case "location":
			r.Location = value.(string)
		case "date":
			r.Date = value.(string)
		case "description":
			r.Description = value.(string)
		case "contactEmail":
			r.ContactEmail = value.(string)
		case "contactNumber":
			r.ContactNumber = value.(string)
		case "idTag":
			r.IDTag = value.(string)
		case "ownerTag":
			r.OwnerTag = value.(string)
		case "imageBase64":
			r.ImageBase64 = value.(string)
		case "resolvedBy":
			r.ResolvedBy = value.(string)
		case "resolvedClaimId":
			r.ResolvedClaimID = value.(string)
		case "resolvedReturnId":
			r.ResolvedReturnID = value.(string)
		case "resolvedAt":
			at := value.(time.Time)
			r.ResolvedAt = &at
		case "updatedAt":
			r.UpdatedAt = value.(time.Time)
		}
	}
}

func (f *fakeReportRepo) Patch(ctx context.Context, id string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	report, ok := f.reports[id]
	if !ok {
		return errors.NotFound("Report", nil)
	}
	applyReportFields(report, fields)
	return nil
}

func (f *fakeReportRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.reports[id]; !ok {
		return errors.NotFound("Report", nil)
	}
	delete(f.reports, id)
	return nil
}

func (f *fakeReportRepo) PatchMirror(ctx context.Context, userID, reportID string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	mirror, ok := f.mirrors[userID][reportID]
	if !ok {
		return errors.NotFound("Report mirror", nil)
	}
	applyReportFields(mirror, fields)
	return nil
}

func (f *fakeReportRepo) DeleteMirror(ctx context.Context, userID, reportID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.mirrors[userID], reportID)
	return nil
}

func (f *fakeReportRepo) mirror(userID, reportID string) *entity.Report {
	f.mu.Lock()
	defer f.mu.Unlock()

	mirror, ok := f.mirrors[userID][reportID]
	if !ok {
		return nil
	}
	return copyReport(mirror)
}

type fakeClaimRepo struct {
	mu             sync.Mutex
	reports        *fakeReportRepo
	claims         map[string]map[string]*entity.Claim // reportID -> claimID
	ownerMirrors   map[string]map[string]*entity.Claim // ownerID -> claimID
	claimerMirrors map[string]map[string]*entity.Claim // claimantID -> claimID
}

func newFakeClaimRepo(reports *fakeReportRepo) *fakeClaimRepo {
	return &fakeClaimRepo{
		reports:        reports,
		claims:         make(map[string]map[string]*entity.Claim),
		ownerMirrors:   make(map[string]map[string]*entity.Claim),
		claimerMirrors: make(map[string]map[string]*entity.Claim),
	}
}

func copyClaim(c *entity.Claim) *entity.Claim {
	cp := *c
	return &cp
}

func (f *fakeClaimRepo) Create(ctx context.Context, claim *entity.Claim) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	claim.CreatedAt = time.Now()
	if f.claims[claim.ReportID] == nil {
		f.claims[claim.ReportID] = make(map[string]*entity.Claim)
	}
	f.claims[claim.ReportID][claim.ID] = copyClaim(claim)
	return nil
}

func (f *fakeClaimRepo) GetByID(ctx context.Context, reportID, claimID string) (*entity.Claim, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	claim, ok := f.claims[reportID][claimID]
	if !ok {
		return nil, errors.NotFound("Claim", nil)
	}
	return copyClaim(claim), nil
}

func (f *fakeClaimRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Claim, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Claim
	for _, byID := range f.claims {
		for _, c := range byID {
			if c.Status == status {
				out = append(out, copyClaim(c))
			}
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeClaimRepo) Resolve(ctx context.Context, res repository.CaseResolution) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	claim, ok := f.claims[res.ReportID][res.CaseID]
	if !ok {
		return errors.NotFound("Claim", nil)
	}
	if claim.Status != entity.CaseStatusPending {
		return errors.Conflict("Claim has already been resolved")
	}

	claim.Status = res.Status
	claim.AdminNotes = res.AdminNotes
	claim.ResolvedBy = res.ResolvedBy
	resolvedAt := res.ResolvedAt
	claim.ResolvedAt = &resolvedAt

	if res.Status == entity.CaseStatusVerified {
		return f.reports.Patch(ctx, res.ReportID, map[string]interface{}{
			"status":          entity.ReportStatusResolved,
			"resolvedAt":      res.ResolvedAt,
			"resolvedBy":      res.ResolvedBy,
			"resolvedClaimId": res.CaseID,
			"updatedAt":       res.ResolvedAt,
		})
	}
	return nil
}

func (f *fakeClaimRepo) CreateOwnerMirror(ctx context.Context, ownerID string, claim *entity.Claim) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ownerMirrors[ownerID] == nil {
		f.ownerMirrors[ownerID] = make(map[string]*entity.Claim)
	}
	f.ownerMirrors[ownerID][claim.ID] = copyClaim(claim)
	return nil
}

func applyClaimFields(c *entity.Claim, fields map[string]interface{}) {
	for key, value := range fields {
		switch key {
		case "status":
			c.Status = value.(string)
		case "adminNotes":
			c.AdminNotes = value.(string)
		case "resolvedBy":
			c.ResolvedBy = value.(string)
		case "resolvedAt":
			at := value.(time.Time)
			c.ResolvedAt = &at
		}
	}
}

func (f *fakeClaimRepo) PatchOwnerMirror(ctx context.Context, ownerID, reportID, claimID string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	mirror, ok := f.ownerMirrors[ownerID][claimID]
	if !ok {
		return errors.NotFound("Claim mirror", nil)
	}
	applyClaimFields(mirror, fields)
	return nil
}

func (f *fakeClaimRepo) UpsertClaimantMirror(ctx context.Context, claimantID string, claim *entity.Claim, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.claimerMirrors[claimantID] == nil {
		f.claimerMirrors[claimantID] = make(map[string]*entity.Claim)
	}
	if fields == nil {
		f.claimerMirrors[claimantID][claim.ID] = copyClaim(claim)
		return nil
	}
	mirror, ok := f.claimerMirrors[claimantID][claim.ID]
	if !ok {
		mirror = copyClaim(claim)
		f.claimerMirrors[claimantID][claim.ID] = mirror
	}
	applyClaimFields(mirror, fields)
	return nil
}

type fakeReturnRepo struct {
	mu              sync.Mutex
	reports         *fakeReportRepo
	returns         map[string]map[string]*entity.Return
	ownerMirrors    map[string]map[string]*entity.Return
	returnerMirrors map[string]map[string]*entity.Return
}

func newFakeReturnRepo(reports *fakeReportRepo) *fakeReturnRepo {
	return &fakeReturnRepo{
		reports:         reports,
		returns:         make(map[string]map[string]*entity.Return),
		ownerMirrors:    make(map[string]map[string]*entity.Return),
		returnerMirrors: make(map[string]map[string]*entity.Return),
	}
}

func copyReturn(r *entity.Return) *entity.Return {
	cp := *r
	return &cp
}

func (f *fakeReturnRepo) Create(ctx context.Context, ret *entity.Return) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ret.ID == "" {
		ret.ID = uuid.New().String()
	}
	ret.CreatedAt = time.Now()
	if f.returns[ret.ReportID] == nil {
		f.returns[ret.ReportID] = make(map[string]*entity.Return)
	}
	f.returns[ret.ReportID][ret.ID] = copyReturn(ret)
	return nil
}

func (f *fakeReturnRepo) GetByID(ctx context.Context, reportID, returnID string) (*entity.Return, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ret, ok := f.returns[reportID][returnID]
	if !ok {
		return nil, errors.NotFound("Return", nil)
	}
	return copyReturn(ret), nil
}

func (f *fakeReturnRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Return, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Return
	for _, byID := range f.returns {
		for _, r := range byID {
			if r.Status == status {
				out = append(out, copyReturn(r))
			}
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReturnRepo) Resolve(ctx context.Context, res repository.CaseResolution) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ret, ok := f.returns[res.ReportID][res.CaseID]
	if !ok {
		return errors.NotFound("Return", nil)
	}
	if ret.Status != entity.CaseStatusPending {
		return errors.Conflict("Return has already been resolved")
	}

	ret.Status = res.Status
	ret.AdminNotes = res.AdminNotes
	ret.ResolvedBy = res.ResolvedBy
	resolvedAt := res.ResolvedAt
	ret.ResolvedAt = &resolvedAt

	if res.Status == entity.CaseStatusVerified {
		return f.reports.Patch(ctx, res.ReportID, map[string]interface{}{
			"status":           entity.ReportStatusReturned,
			"resolvedAt":       res.ResolvedAt,
			"resolvedBy":       res.ResolvedBy,
			"resolvedReturnId": res.CaseID,
			"updatedAt":        res.ResolvedAt,
		})
	}
	return nil
}

func (f *fakeReturnRepo) CreateOwnerMirror(ctx context.Context, ownerID string, ret *entity.Return) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ownerMirrors[ownerID] == nil {
		f.ownerMirrors[ownerID] = make(map[string]*entity.Return)
	}
	f.ownerMirrors[ownerID][ret.ID] = copyReturn(ret)
	return nil
}

func applyReturnFields(r *entity.Return, fields map[string]interface{}) {
	for key, value := range fields {
		switch key {
		case "status":
			r.Status = value.(string)
		case "adminNotes":
			r.AdminNotes = value.(string)
		case "resolvedBy":
			r.ResolvedBy = value.(string)
		case "resolvedAt":
			at := value.(time.Time)
			r.ResolvedAt = &at
		}
	}
}

func (f *fakeReturnRepo) PatchOwnerMirror(ctx context.Context, ownerID, reportID, returnID string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	mirror, ok := f.ownerMirrors[ownerID][returnID]
	if !ok {
		return errors.NotFound("Return mirror", nil)
	}
	applyReturnFields(mirror, fields)
	return nil
}

func (f *fakeReturnRepo) UpsertReturnerMirror(ctx context.Context, returnerID string, ret *entity.Return, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.returnerMirrors[returnerID] == nil {
		f.returnerMirrors[returnerID] = make(map[string]*entity.Return)
	}
	if fields == nil {
		f.returnerMirrors[returnerID][ret.ID] = copyReturn(ret)
		return nil
	}
	mirror, ok := f.returnerMirrors[returnerID][ret.ID]
	if !ok {
		mirror = copyReturn(ret)
		f.returnerMirrors[returnerID][ret.ID] = mirror
	}
	applyReturnFields(mirror, fields)
	return nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
	}
}

func copyChat(c *entity.Chat) *entity.Chat {
	cp := *c
	cp.Participants = append([]string(nil), c.Participants...)
	cp.UnreadCount = make(map[string]int, len(c.UnreadCount))
	for k, v := range c.UnreadCount {
		cp.UnreadCount[k] = v
	}
	return &cp
}

func (f *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	chat.CreatedAt = time.Now()
	chat.LastUpdated = chat.CreatedAt
	if chat.UnreadCount == nil {
		chat.UnreadCount = make(map[string]int)
	}
	f.chats[chat.ID] = copyChat(chat)
	return nil
}

func (f *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	chat, ok := f.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	return copyChat(chat), nil
}

func (f *fakeChatRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Chat
	for _, chat := range f.chats {
		for _, p := range chat.Participants {
			if p == userID {
				out = append(out, copyChat(chat))
				break
			}
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}
	cp := *message
	f.messages[message.ChatID] = append(f.messages[message.ChatID], &cp)
	return nil
}

func (f *fakeChatRepo) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	msgs := f.messages[chatID]
	out := make([]*entity.Message, 0, len(msgs))
	for _, m := range msgs {
		cp := *m
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeChatRepo) SetLastMessage(ctx context.Context, chatID, content string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	chat, ok := f.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.LastMessage = content
	chat.LastUpdated = at
	return nil
}

func (f *fakeChatRepo) IncrementUnread(ctx context.Context, chatID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	chat, ok := f.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.UnreadCount[userID]++
	return nil
}

func (f *fakeChatRepo) ResetUnread(ctx context.Context, chatID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	chat, ok := f.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.UnreadCount[userID] = 0
	return nil
}

func (f *fakeChatRepo) AddAdminParticipant(ctx context.Context, chatID, adminID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	chat, ok := f.chats[chatID]
	if !ok {
		return false, errors.NotFound("Chat", nil)
	}
	if chat.AdminJoined {
		return false, nil
	}
	chat.Participants = append(chat.Participants, adminID)
	chat.AdminJoined = true
	chat.UnreadCount[adminID] = 0
	return true, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	f.users[user.ID] = user
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	users         *fakeUserRepo
	notifications map[string][]*entity.Notification
	unread        map[string][]string
}

func newFakeNotificationRepo(users *fakeUserRepo) *fakeNotificationRepo {
	return &fakeNotificationRepo{
		users:         users,
		notifications: make(map[string][]*entity.Notification),
		unread:        make(map[string][]string),
	}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, userID string, notification *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()
	cp := *notification
	f.notifications[userID] = append(f.notifications[userID], &cp)
	f.unread[userID] = append(f.unread[userID], notification.ID)
	f.syncUserAggregate(userID)
	return nil
}

// syncUserAggregate mirrors the ArrayUnion write the Firestore repo performs
// on the user document's unread list. Callers hold f.mu.
func (f *fakeNotificationRepo) syncUserAggregate(userID string) {
	f.users.mu.Lock()
	defer f.users.mu.Unlock()

	if user, ok := f.users.users[userID]; ok {
		user.UnreadNotifications = append([]string(nil), f.unread[userID]...)
	}
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*entity.Notification, 0, len(f.notifications[userID]))
	for _, n := range f.notifications[userID] {
		cp := *n
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, n := range f.notifications[userID] {
		n.Read = true
	}
	f.unread[userID] = nil
	f.syncUserAggregate(userID)
	return nil
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu            sync.Mutex
	messages      map[string][]*entity.Message
	notifications map[string][]*entity.Notification
	reportUpdates []*entity.Report
	chatUpdates   []*entity.Chat
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{
		messages:      make(map[string][]*entity.Message),
		notifications: make(map[string][]*entity.Notification),
	}
}

func (p *recordingPublisher) PublishMessage(chatID string, message *entity.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages[chatID] = append(p.messages[chatID], message)
}

func (p *recordingPublisher) PublishChatUpdate(chat *entity.Chat) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chatUpdates = append(p.chatUpdates, chat)
}

func (p *recordingPublisher) PublishNotification(userID string, notification *entity.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications[userID] = append(p.notifications[userID], notification)
}

func (p *recordingPublisher) PublishReportUpdate(report *entity.Report) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reportUpdates = append(p.reportUpdates, report)
}
