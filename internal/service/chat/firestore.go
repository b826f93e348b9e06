package chat

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/coudpouss/coudpouss-api/internal/platform/logging"
)

const (
	chatsCollection    = "chats"
	messagesCollection = "messages"
	usersCollection    = "users"
)

type firestoreChat struct {
	Participants  []string  `firestore:"participants"`
	LastMessage   string    `firestore:"last_message"`
	LastSenderID  string    `firestore:"last_sender_id"`
	LastMessageAt time.Time `firestore:"last_message_at"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

type firestoreMessage struct {
	SenderID  string    `firestore:"sender_id"`
	Text      string    `firestore:"text"`
	CreatedAt time.Time `firestore:"created_at"`
}

func chatFromSnapshot(snap *firestore.DocumentSnapshot) (*Chat, error) {
	var fc firestoreChat
	if err := snap.DataTo(&fc); err != nil {
		return nil, err
	}
	return &Chat{
		ID:            snap.Ref.ID,
		Participants:  fc.Participants,
		LastMessage:   fc.LastMessage,
		LastSenderID:  fc.LastSenderID,
		LastMessageAt: fc.LastMessageAt,
		CreatedAt:     fc.CreatedAt,
		UpdatedAt:     fc.UpdatedAt,
	}, nil
}

func messageFromSnapshot(chatID string, snap *firestore.DocumentSnapshot) (Message, error) {
	var fm firestoreMessage
	if err := snap.DataTo(&fm); err != nil {
		return Message{}, err
	}
	return Message{
		ID:        snap.Ref.ID,
		ChatID:    chatID,
		SenderID:  fm.SenderID,
		Text:      fm.Text,
		CreatedAt: fm.CreatedAt,
	}, nil
}

// FirestoreStore implements Service on the chats collection.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore returns a Firestore-backed chat service.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) chatRef(chatID string) *firestore.DocumentRef {
	return s.client.Collection(chatsCollection).Doc(chatID)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// participantChat loads chatID and checks that uid takes part in it.
func (s *FirestoreStore) participantChat(ctx context.Context, chatID, uid string) (*Chat, error) {
	snap, err := s.chatRef(chatID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c, err := chatFromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	if !c.HasParticipant(uid) {
		return nil, ErrForbidden
	}
	return c, nil
}

// OpenChat returns the chat between uid and peerUID, creating it on first
// use. The peer must have a profile.
func (s *FirestoreStore) OpenChat(ctx context.Context, uid, peerUID string) (*Chat, error) {
	chatID := ChatID(uid, peerUID)
	ev := logging.AuditEvent{Action: "open", UserID: uid, Resource: "chat", ResourceID: chatID}
	if err := checkPeer(uid, peerUID); err != nil {
		return nil, logging.AuditOutcome(ctx, ev, err, categorizeError)
	}

	ref := s.chatRef(chatID)
	peerRef := s.client.Collection(usersCollection).Doc(peerUID)
	created := false
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		created = false
		if _, err := tx.Get(peerRef); err != nil {
			if isNotFound(err) {
				return ErrPeerNotFound
			}
			return err
		}
		snap, err := tx.Get(ref)
		if err == nil && snap.Exists() {
			return nil
		}
		if err != nil && !isNotFound(err) {
			return err
		}
		created = true
		return tx.Create(ref, map[string]any{
			"participants": participants(uid, peerUID),
			"created_at":   firestore.ServerTimestamp,
			"updated_at":   firestore.ServerTimestamp,
		})
	})
	if err != nil {
		return nil, logging.AuditOutcome(ctx, ev, err, categorizeError)
	}

	c, err := s.participantChat(ctx, chatID, uid)
	if created {
		ev.Details = map[string]any{"created": true}
	}
	return c, logging.AuditOutcome(ctx, ev, err, categorizeError)
}

// GetChat returns chatID when uid is one of its participants.
func (s *FirestoreStore) GetChat(ctx context.Context, chatID, uid string) (*Chat, error) {
	return s.participantChat(ctx, chatID, uid)
}

// ListChats returns the chats of uid by most recent activity.
func (s *FirestoreStore) ListChats(ctx context.Context, uid string, limit int, afterID string) ([]Chat, error) {
	q := s.client.Collection(chatsCollection).
		Where("participants", "array-contains", uid).
		OrderBy("updated_at", firestore.Desc).
		Limit(limit)
	if afterID != "" {
		snap, err := s.chatRef(afterID).Get(ctx)
		if err != nil {
			if isNotFound(err) {
				return nil, ErrCursorNotFound
			}
			return nil, err
		}
		q = q.StartAfter(snap)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()
	chats := []Chat{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return chats, nil
		}
		if err != nil {
			return nil, err
		}
		c, err := chatFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		chats = append(chats, *c)
	}
}

// SendMessage stores a message and updates the chat summary in one
// transaction. Both timestamps are assigned by the server.
func (s *FirestoreStore) SendMessage(ctx context.Context, chatID, senderUID, text string) (*Message, error) {
	ev := logging.AuditEvent{Action: "send", UserID: senderUID, Resource: "message"}
	text, err := messageText(text)
	if err != nil {
		return nil, logging.AuditOutcome(ctx, ev, err, categorizeError)
	}

	ref := s.chatRef(chatID)
	msgRef := ref.Collection(messagesCollection).NewDoc()
	ev.ResourceID = msgRef.ID
	ev.Details = map[string]any{"chat_id": chatID}

	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		c, err := chatFromSnapshot(snap)
		if err != nil {
			return err
		}
		if !c.HasParticipant(senderUID) {
			return ErrForbidden
		}
		if err := tx.Create(msgRef, map[string]any{
			"sender_id":  senderUID,
			"text":       text,
			"created_at": firestore.ServerTimestamp,
		}); err != nil {
			return err
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "last_message", Value: text},
			{Path: "last_sender_id", Value: senderUID},
			{Path: "last_message_at", Value: firestore.ServerTimestamp},
			{Path: "updated_at", Value: firestore.ServerTimestamp},
		})
	})
	if err != nil {
		return nil, logging.AuditOutcome(ctx, ev, err, categorizeError)
	}

	snap, err := msgRef.Get(ctx)
	if err != nil {
		return nil, logging.AuditOutcome(ctx, ev, err, categorizeError)
	}
	m, err := messageFromSnapshot(chatID, snap)
	if err != nil {
		return nil, logging.AuditOutcome(ctx, ev, err, categorizeError)
	}
	return &m, logging.AuditOutcome(ctx, ev, nil, categorizeError)
}

// ListMessages returns messages of chatID, newest first.
func (s *FirestoreStore) ListMessages(ctx context.Context, chatID, uid string, limit int, afterID string) ([]Message, error) {
	if _, err := s.participantChat(ctx, chatID, uid); err != nil {
		return nil, err
	}

	col := s.chatRef(chatID).Collection(messagesCollection)
	q := col.OrderBy("created_at", firestore.Desc).Limit(limit)
	if afterID != "" {
		snap, err := col.Doc(afterID).Get(ctx)
		if err != nil {
			if isNotFound(err) {
				return nil, ErrCursorNotFound
			}
			return nil, err
		}
		q = q.StartAfter(snap)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()
	msgs := []Message{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return msgs, nil
		}
		if err != nil {
			return nil, err
		}
		m, err := messageFromSnapshot(chatID, snap)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
}

// SubscribeMessages listens to the messages subcollection. The initial
// snapshot only establishes the baseline and is not delivered.
func (s *FirestoreStore) SubscribeMessages(ctx context.Context, chatID, uid string) (<-chan MessageEvent, error) {
	if _, err := s.participantChat(ctx, chatID, uid); err != nil {
		return nil, err
	}

	it := s.chatRef(chatID).Collection(messagesCollection).
		OrderBy("created_at", firestore.Asc).
		Snapshots(ctx)
	out := make(chan MessageEvent, 16)

	go func() {
		defer close(out)
		defer it.Stop()

		baseline := true
		for {
			qs, err := it.Next()
			if err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					logging.LogError(ctx, "message listener failed", err, zap.String("chatId", chatID))
				}
				return
			}
			if baseline {
				baseline = false
				continue
			}
			for _, ch := range qs.Changes {
				m, err := messageFromSnapshot(chatID, ch.Doc)
				if err != nil {
					logging.LogWarn(ctx, "skipping undecodable message",
						zap.String("chatId", chatID), zap.String("messageId", ch.Doc.Ref.ID), zap.Error(err))
					continue
				}
				select {
				case out <- MessageEvent{Kind: eventKind(ch.Kind), Message: m}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func eventKind(k firestore.DocumentChangeKind) EventKind {
	switch k {
	case firestore.DocumentRemoved:
		return EventRemoved
	case firestore.DocumentModified:
		return EventModified
	default:
		return EventAdded
	}
}

var _ Service = (*FirestoreStore)(nil)
