package service

import (
	"errors"
	"strings"
	"time"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/repository"
	"gorm.io/gorm"
)

// MessagePusher delivers real-time events to portal clients. Implemented
// by the ws hub; nil-safe via the noopPusher for tests and degraded runs.
type MessagePusher interface {
	MessageCreated(participants [2]uint, msg *domain.MessageResponse)
	MessageNotification(memberID uint, msg *domain.MessageResponse)
	ConversationUpdated(participants [2]uint, conversationID uint)
}

type noopPusher struct{}

func (noopPusher) MessageCreated([2]uint, *domain.MessageResponse)   {}
func (noopPusher) MessageNotification(uint, *domain.MessageResponse) {}
func (noopPusher) ConversationUpdated([2]uint, uint)                 {}

// ConversationService business logic for member-to-member messaging.
//
// Send contract: the value returned by SendMessage is informational
// only. Clients render sends exclusively from the push stream. The
// stored message is echoed back through the sender's own subscription,
// so a send is never appended twice.
type ConversationService interface {
	ListConversations(memberID uint) ([]*domain.ConversationResponse, error)
	ListMessages(conversationID, memberID uint, limit int) ([]*domain.MessageResponse, error)
	SendMessage(conversationID, senderID uint, content string) (*domain.MessageResponse, error)
	MarkRead(conversationID, memberID uint) error
	CreateOrGetConversation(memberID, otherID uint) (*domain.Conversation, error)
}

type conversationService struct {
	convRepo   repository.ConversationRepository
	msgRepo    repository.MessageRepository
	memberRepo repository.MemberRepository
	prefsRepo  repository.PreferencesRepository
	pusher     MessagePusher
}

// NewConversationService creates a new ConversationService
func NewConversationService(
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	memberRepo repository.MemberRepository,
	prefsRepo repository.PreferencesRepository,
	pusher MessagePusher,
) ConversationService {
	if pusher == nil {
		pusher = noopPusher{}
	}
	return &conversationService{
		convRepo:   convRepo,
		msgRepo:    msgRepo,
		memberRepo: memberRepo,
		prefsRepo:  prefsRepo,
		pusher:     pusher,
	}
}

// ListConversations returns the member's conversations ordered by last
// activity, each annotated with the counterpart profile, the most
// recent message and the unread count
func (s *conversationService) ListConversations(memberID uint) ([]*domain.ConversationResponse, error) {
	convs, err := s.convRepo.FindByParticipant(memberID)
	if err != nil {
		return nil, err
	}

	// Resolve counterpart profiles in one query
	otherIDs := make([]uint, 0, len(convs))
	for _, c := range convs {
		otherIDs = append(otherIDs, c.OtherParticipant(memberID))
	}
	profiles, err := s.profilesByID(otherIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.ConversationResponse, 0, len(convs))
	for _, c := range convs {
		resp := &domain.ConversationResponse{
			ID:               c.ID,
			OtherParticipant: profiles[c.OtherParticipant(memberID)],
			UpdatedAt:        c.UpdatedAt.Format(time.RFC3339),
		}

		if last, err := s.msgRepo.LastInConversation(c.ID); err == nil {
			resp.LastMessage = last.ToResponse(s.senderSummary(last.SenderID, profiles))
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		unread, err := s.msgRepo.CountUnread(c.ID, memberID)
		if err != nil {
			return nil, err
		}
		resp.UnreadCount = unread

		responses = append(responses, resp)
	}

	return responses, nil
}

// ListMessages returns up to limit messages ascending by creation time.
// It never marks anything read; MarkRead is an explicit separate call.
func (s *conversationService) ListMessages(conversationID, memberID uint, limit int) ([]*domain.MessageResponse, error) {
	conv, err := s.authorizedConversation(conversationID, memberID)
	if err != nil {
		return nil, err
	}

	if limit < 1 || limit > 200 {
		limit = 50
	}

	messages, err := s.msgRepo.FindByConversation(conversationID, limit)
	if err != nil {
		return nil, err
	}

	profiles, err := s.profilesByID([]uint{conv.Participant1, conv.Participant2})
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = m.ToResponse(profiles[m.SenderID])
	}
	return responses, nil
}

// SendMessage persists a message, bumps the conversation's last-activity
// timestamp and pushes the stored message to both participants' live
// subscriptions. Whitespace-only content is rejected before any write.
func (s *conversationService) SendMessage(conversationID, senderID uint, content string) (*domain.MessageResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.ErrEmptyMessage
	}

	conv, err := s.authorizedConversation(conversationID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.msgRepo.Create(msg); err != nil {
		return nil, err
	}

	if err := s.convRepo.Touch(conversationID, time.Now()); err != nil {
		return nil, err
	}

	sender, err := s.memberRepo.FindByID(senderID)
	if err != nil {
		return nil, err
	}
	resp := msg.ToResponse(sender.ToSummary())

	participants := [2]uint{conv.Participant1, conv.Participant2}
	s.pusher.MessageCreated(participants, resp)
	s.pusher.ConversationUpdated(participants, conv.ID)

	recipient := conv.Participant1
	if recipient == senderID {
		recipient = conv.Participant2
	}
	if s.notificationsEnabled(recipient) {
		s.pusher.MessageNotification(recipient, resp)
	}

	return resp, nil
}

// notificationsEnabled checks the recipient's message notification
// preference, defaulting to enabled when no row exists or the lookup
// fails. The live conversation subscription is never gated by this.
func (s *conversationService) notificationsEnabled(memberID uint) bool {
	prefs, err := s.prefsRepo.FindByMember(memberID)
	if err != nil {
		return true
	}
	return prefs.MessageNotifications
}

// MarkRead flips the read flag on every unread message from the
// counterpart. Idempotent; called when a conversation becomes active.
func (s *conversationService) MarkRead(conversationID, memberID uint) error {
	if _, err := s.authorizedConversation(conversationID, memberID); err != nil {
		return err
	}
	return s.msgRepo.MarkConversationRead(conversationID, memberID)
}

// CreateOrGetConversation returns the conversation for the unordered
// member pair, creating it on first contact. The normalized pair key is
// unique at the store level, so a create racing another create loses
// with a duplicate-key error and re-fetches the winner.
func (s *conversationService) CreateOrGetConversation(memberID, otherID uint) (*domain.Conversation, error) {
	if memberID == otherID {
		return nil, common.ErrSelfConversation
	}
	if _, err := s.memberRepo.FindByID(otherID); err != nil {
		return nil, common.ErrMemberNotFound
	}

	pairKey := domain.PairKeyFor(memberID, otherID)

	conv, err := s.convRepo.FindByPairKey(pairKey)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = &domain.Conversation{
		Participant1: memberID,
		Participant2: otherID,
		PairKey:      pairKey,
	}
	if err := s.convRepo.Create(conv); err != nil {
		// Lost the race: the pair key now exists, return the winner
		if existing, ferr := s.convRepo.FindByPairKey(pairKey); ferr == nil {
			return existing, nil
		}
		return nil, err
	}

	s.pusher.ConversationUpdated([2]uint{memberID, otherID}, conv.ID)
	return conv, nil
}

// authorizedConversation loads the conversation and verifies membership
func (s *conversationService) authorizedConversation(conversationID, memberID uint) (*domain.Conversation, error) {
	conv, err := s.convRepo.FindByID(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrConversationNotFound
		}
		return nil, err
	}
	if !conv.HasParticipant(memberID) {
		return nil, common.ErrForbidden
	}
	return conv, nil
}

func (s *conversationService) profilesByID(ids []uint) (map[uint]*domain.ProfileSummary, error) {
	members, err := s.memberRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	profiles := make(map[uint]*domain.ProfileSummary, len(members))
	for _, m := range members {
		profiles[m.ID] = m.ToSummary()
	}
	return profiles, nil
}

// senderSummary resolves the sender of a last-message preview: the
// counterpart's profile is already loaded, the viewer's own is not
func (s *conversationService) senderSummary(senderID uint, loaded map[uint]*domain.ProfileSummary) *domain.ProfileSummary {
	if p, ok := loaded[senderID]; ok {
		return p
	}
	if m, err := s.memberRepo.FindByID(senderID); err == nil {
		return m.ToSummary()
	}
	return &domain.ProfileSummary{ID: senderID}
}
