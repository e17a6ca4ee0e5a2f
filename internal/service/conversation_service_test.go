package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/repository"
)

// recordingPusher captures push calls for assertions
type recordingPusher struct {
	messages      []*domain.MessageResponse
	conversations []uint
	recipients    [][2]uint
	notified      []uint
}

func (p *recordingPusher) MessageCreated(participants [2]uint, msg *domain.MessageResponse) {
	p.recipients = append(p.recipients, participants)
	p.messages = append(p.messages, msg)
}

func (p *recordingPusher) MessageNotification(memberID uint, msg *domain.MessageResponse) {
	p.notified = append(p.notified, memberID)
}

func (p *recordingPusher) ConversationUpdated(participants [2]uint, conversationID uint) {
	p.conversations = append(p.conversations, conversationID)
}

func setupMessagingDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Member{},
		&domain.Conversation{},
		&domain.Message{},
		&domain.NotificationPreferences{},
	))
	return db
}

func newMessagingService(t *testing.T, db *gorm.DB, pusher MessagePusher) ConversationService {
	t.Helper()
	return NewConversationService(
		repository.NewConversationRepository(db),
		repository.NewMessageRepository(db),
		repository.NewMemberRepository(db),
		repository.NewPreferencesRepository(db),
		pusher,
	)
}

func seedMember(t *testing.T, db *gorm.DB, email, first, last string) *domain.Member {
	t.Helper()
	m := &domain.Member{Email: email, FirstName: first, LastName: last, IsPublic: true}
	require.NoError(t, db.Create(m).Error)
	return m
}

func TestCreateOrGetConversation_PairSymmetry(t *testing.T) {
	db := setupMessagingDB(t)
	svc := newMessagingService(t, db, nil)
	alice := seedMember(t, db, "alice@example.com", "Alice", "Ng")
	bob := seedMember(t, db, "bob@example.com", "Bob", "Reyes")

	first, err := svc.CreateOrGetConversation(alice.ID, bob.ID)
	require.NoError(t, err)

	// The reverse direction resolves to the same conversation
	second, err := svc.CreateOrGetConversation(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&domain.Conversation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateOrGetConversation_Validation(t *testing.T) {
	db := setupMessagingDB(t)
	svc := newMessagingService(t, db, nil)
	alice := seedMember(t, db, "alice@example.com", "Alice", "Ng")

	_, err := svc.CreateOrGetConversation(alice.ID, alice.ID)
	assert.ErrorIs(t, err, common.ErrSelfConversation)

	_, err = svc.CreateOrGetConversation(alice.ID, 9999)
	assert.ErrorIs(t, err, common.ErrMemberNotFound)
}

func TestSendMessage_RejectsWhitespace(t *testing.T) {
	db := setupMessagingDB(t)
	svc := newMessagingService(t, db, nil)
	alice := seedMember(t, db, "alice@example.com", "Alice", "Ng")
	bob := seedMember(t, db, "bob@example.com", "Bob", "Reyes")

	conv, err := svc.CreateOrGetConversation(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(conv.ID, alice.ID, "   \n\t  ")
	assert.ErrorIs(t, err, common.ErrEmptyMessage)

	var count int64
	db.Model(&domain.Message{}).Count(&count)
	assert.Equal(t, int64(0), count, "nothing should be stored for a blank send")
}

func TestSendMessage_PushesToBothParticipants(t *testing.T) {
	db := setupMessagingDB(t)
	pusher := &recordingPusher{}
	svc := newMessagingService(t, db, pusher)
	alice := seedMember(t, db, "alice@example.com", "Alice", "Ng")
	bob := seedMember(t, db, "bob@example.com", "Bob", "Reyes")

	conv, err := svc.CreateOrGetConversation(alice.ID, bob.ID)
	require.NoError(t, err)

	msg, err := svc.SendMessage(conv.ID, alice.ID, "hello bob")
	require.NoError(t, err)
	assert.Equal(t, "hello bob", msg.Content)
	require.NotNil(t, msg.Sender)
	assert.Equal(t, alice.ID, msg.Sender.ID)

	// The push addresses both participants, sender included
	require.Len(t, pusher.messages, 1)
	assert.Equal(t, msg.ID, pusher.messages[0].ID)
	assert.ElementsMatch(t, []uint{alice.ID, bob.ID}, pusher.recipients[0][:])

	// Conversation list refresh for the new message
	assert.Contains(t, pusher.conversations, conv.ID)
}

func TestSendMessage_NonParticipant(t *testing.T) {
	db := setupMessagingDB(t)
	svc := newMessagingService(t, db, nil)
	alice := seedMember(t, db, "alice@example.com", "Alice", "Ng")
	bob := seedMember(t, db, "bob@example.com", "Bob", "Reyes")
	eve := seedMember(t, db, "eve@example.com", "Eve", "Stone")

	conv, err := svc.CreateOrGetConversation(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(conv.ID, eve.ID, "let me in")
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, err = svc.ListMessages(conv.ID, eve.ID, 50)
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, err = svc.SendMessage(9999, alice.ID, "anyone there?")
	assert.ErrorIs(t, err, common.ErrConversationNotFound)
}

func TestListMessages_AscendingOrder(t *testing.T) {
	db := setupMessagingDB(t)
	svc := newMessagingService(t, db, nil)
	alice := seedMember(t, db, "alice@example.com", "Alice", "Ng")
	bob := seedMember(t, db, "bob@example.com", "Bob", "Reyes")

	conv, err := svc.CreateOrGetConversation(alice.ID, bob.ID)
	require.NoError(t, err)

	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.SendMessage(conv.ID, alice.ID, text)
		require.NoError(t, err)
	}
	_, err = svc.SendMessage(conv.ID, bob.ID, "four")
	require.NoError(t, err)

	messages, err := svc.ListMessages(conv.ID, bob.ID, 50)
	require.NoError(t, err)
	require.Len(t, messages, 4)
	assert.Equal(t, "one", messages[0].Content)
	assert.Equal(t, "four", messages[3].Content)
	assert.Equal(t, alice.ID, messages[0].Sender.ID)
	assert.Equal(t, bob.ID, messages[3].Sender.ID)
}

func TestMarkRead_CounterpartMessagesOnly(t *testing.T) {
	db := setupMessagingDB(t)
	svc := newMessagingService(t, db, nil)
	alice := seedMember(t, db, "alice@example.com", "Alice", "Ng")
	bob := seedMember(t, db, "bob@example.com", "Bob", "Reyes")

	conv, err := svc.CreateOrGetConversation(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(conv.ID, alice.ID, "from alice 1")
	require.NoError(t, err)
	_, err = svc.SendMessage(conv.ID, alice.ID, "from alice 2")
	require.NoError(t, err)
	_, err = svc.SendMessage(conv.ID, bob.ID, "from bob")
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(conv.ID, bob.ID))

	// Bob read Alice's messages; Bob's own message stays unread for Alice
	var unreadForBob, unreadForAlice int64
	db.Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND `read` = ?", conv.ID, bob.ID, false).
		Count(&unreadForBob)
	db.Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND `read` = ?", conv.ID, alice.ID, false).
		Count(&unreadForAlice)
	assert.Equal(t, int64(0), unreadForBob)
	assert.Equal(t, int64(1), unreadForAlice)

	// Idempotent
	require.NoError(t, svc.MarkRead(conv.ID, bob.ID))
}

func TestListConversations_PreviewAndUnread(t *testing.T) {
	db := setupMessagingDB(t)
	svc := newMessagingService(t, db, nil)
	alice := seedMember(t, db, "alice@example.com", "Alice", "Ng")
	bob := seedMember(t, db, "bob@example.com", "Bob", "Reyes")
	carol := seedMember(t, db, "carol@example.com", "Carol", "Dyer")

	withBob, err := svc.CreateOrGetConversation(alice.ID, bob.ID)
	require.NoError(t, err)
	withCarol, err := svc.CreateOrGetConversation(alice.ID, carol.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(withCarol.ID, carol.ID, "hi alice")
	require.NoError(t, err)
	_, err = svc.SendMessage(withCarol.ID, carol.ID, "are you there?")
	require.NoError(t, err)
	_, err = svc.SendMessage(withBob.ID, alice.ID, "hey bob")
	require.NoError(t, err)

	list, err := svc.ListConversations(alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Most recently active first
	assert.Equal(t, withBob.ID, list[0].ID)
	require.NotNil(t, list[0].OtherParticipant)
	assert.Equal(t, bob.ID, list[0].OtherParticipant.ID)
	require.NotNil(t, list[0].LastMessage)
	assert.Equal(t, "hey bob", list[0].LastMessage.Content)
	assert.Equal(t, int64(0), list[0].UnreadCount, "own sends are never unread")

	assert.Equal(t, withCarol.ID, list[1].ID)
	assert.Equal(t, carol.ID, list[1].OtherParticipant.ID)
	assert.Equal(t, "are you there?", list[1].LastMessage.Content)
	assert.Equal(t, int64(2), list[1].UnreadCount)

	// The same conversation shows up on Bob's side with the same preview
	bobList, err := svc.ListConversations(bob.ID)
	require.NoError(t, err)
	require.Len(t, bobList, 1)
	assert.Equal(t, withBob.ID, bobList[0].ID)
	require.NotNil(t, bobList[0].OtherParticipant)
	assert.Equal(t, alice.ID, bobList[0].OtherParticipant.ID)
	require.NotNil(t, bobList[0].LastMessage)
	assert.Equal(t, "hey bob", bobList[0].LastMessage.Content)
	assert.Equal(t, int64(1), bobList[0].UnreadCount, "alice's send is unread for bob")
}

func TestSendMessage_NotificationFollowsPreference(t *testing.T) {
	db := setupMessagingDB(t)
	pusher := &recordingPusher{}
	svc := newMessagingService(t, db, pusher)

	alice := seedMember(t, db, "alice@example.com", "Alice", "Ames")
	bob := seedMember(t, db, "bob@example.com", "Bob", "Berg")
	conv, err := svc.CreateOrGetConversation(alice.ID, bob.ID)
	require.NoError(t, err)

	// no preferences row = notifications on
	_, err = svc.SendMessage(conv.ID, alice.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, []uint{bob.ID}, pusher.notified)

	prefs := domain.DefaultPreferences(bob.ID)
	prefs.MessageNotifications = false
	require.NoError(t, repository.NewPreferencesRepository(db).Upsert(prefs))

	_, err = svc.SendMessage(conv.ID, alice.ID, "hello again")
	require.NoError(t, err)

	// no new notification, but the subscription push still happened
	assert.Equal(t, []uint{bob.ID}, pusher.notified)
	assert.Len(t, pusher.messages, 2)
}
