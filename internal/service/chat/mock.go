package chat

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// MockChatService implements Service in memory. Known users must be
// registered with AddUser before they can be chat peers.
type MockChatService struct {
	mu       sync.Mutex
	users    map[string]struct{}
	chats    map[string]*Chat
	messages map[string][]Message // oldest first
	subs     map[string]map[chan MessageEvent]struct{}
	seq      int
	now      func() time.Time
}

// NewMockChatService returns an empty mock.
func NewMockChatService() *MockChatService {
	return &MockChatService{
		users:    make(map[string]struct{}),
		chats:    make(map[string]*Chat),
		messages: make(map[string][]Message),
		subs:     make(map[string]map[chan MessageEvent]struct{}),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AddUser registers uids as existing users.
func (m *MockChatService) AddUser(uids ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, uid := range uids {
		m.users[uid] = struct{}{}
	}
}

// tick returns a strictly increasing timestamp so ordering is deterministic.
func (m *MockChatService) tick() time.Time {
	m.seq++
	return m.now().Add(time.Duration(m.seq) * time.Microsecond)
}

func (m *MockChatService) OpenChat(_ context.Context, uid, peerUID string) (*Chat, error) {
	if err := checkPeer(uid, peerUID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[peerUID]; !ok {
		return nil, ErrPeerNotFound
	}
	id := ChatID(uid, peerUID)
	c, ok := m.chats[id]
	if !ok {
		now := m.tick()
		c = &Chat{ID: id, Participants: participants(uid, peerUID), CreatedAt: now, UpdatedAt: now}
		m.chats[id] = c
	}
	return cloneChat(c), nil
}

func (m *MockChatService) GetChat(_ context.Context, chatID, uid string) (*Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.participantChat(chatID, uid)
	if err != nil {
		return nil, err
	}
	return cloneChat(c), nil
}

func (m *MockChatService) ListChats(_ context.Context, uid string, limit int, afterID string) ([]Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []Chat
	for _, c := range m.chats {
		if c.HasParticipant(uid) {
			all = append(all, *cloneChat(c))
		}
	}
	slices.SortFunc(all, func(a, b Chat) int {
		return cmp.Or(b.UpdatedAt.Compare(a.UpdatedAt), cmp.Compare(a.ID, b.ID))
	})
	return page(all, limit, afterID, func(c Chat) string { return c.ID })
}

func (m *MockChatService) SendMessage(_ context.Context, chatID, senderUID, text string) (*Message, error) {
	text, err := messageText(text)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.participantChat(chatID, senderUID)
	if err != nil {
		return nil, err
	}
	now := m.tick()
	msg := Message{
		ID:        fmt.Sprintf("msg-%06d", m.seq),
		ChatID:    chatID,
		SenderID:  senderUID,
		Text:      text,
		CreatedAt: now,
	}
	m.messages[chatID] = append(m.messages[chatID], msg)
	c.LastMessage, c.LastSenderID, c.LastMessageAt, c.UpdatedAt = text, senderUID, now, now

	for sub := range m.subs[chatID] {
		select {
		case sub <- MessageEvent{Kind: EventAdded, Message: msg}:
		default:
		}
	}
	return &msg, nil
}

func (m *MockChatService) ListMessages(_ context.Context, chatID, uid string, limit int, afterID string) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.participantChat(chatID, uid); err != nil {
		return nil, err
	}
	stored := m.messages[chatID]
	newest := make([]Message, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		newest = append(newest, stored[i])
	}
	return page(newest, limit, afterID, func(msg Message) string { return msg.ID })
}

// SubscribeMessages registers a buffered subscriber. Events are dropped for
// subscribers that do not keep up.
func (m *MockChatService) SubscribeMessages(ctx context.Context, chatID, uid string) (<-chan MessageEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.participantChat(chatID, uid); err != nil {
		return nil, err
	}
	ch := make(chan MessageEvent, 16)
	if m.subs[chatID] == nil {
		m.subs[chatID] = make(map[chan MessageEvent]struct{})
	}
	m.subs[chatID][ch] = struct{}{}

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.subs[chatID], ch)
		m.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}

func (m *MockChatService) participantChat(chatID, uid string) (*Chat, error) {
	c, ok := m.chats[chatID]
	if !ok {
		return nil, ErrNotFound
	}
	if !c.HasParticipant(uid) {
		return nil, ErrForbidden
	}
	return c, nil
}

func cloneChat(c *Chat) *Chat {
	out := *c
	out.Participants = slices.Clone(c.Participants)
	return &out
}

// page returns up to limit items following the item with ID afterID.
func page[T any](items []T, limit int, afterID string, id func(T) string) ([]T, error) {
	start := 0
	if afterID != "" {
		i := slices.IndexFunc(items, func(it T) bool { return id(it) == afterID })
		if i < 0 {
			return nil, ErrCursorNotFound
		}
		start = i + 1
	}
	end := min(start+limit, len(items))
	if limit <= 0 {
		end = len(items)
	}
	out := make([]T, 0, end-start)
	return append(out, items[start:end]...), nil
}

var _ Service = (*MockChatService)(nil)
