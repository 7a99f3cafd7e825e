package notify

import "sync"

// Screen is what the viewer is currently looking at.
type Screen string

const (
	ScreenOther            Screen = "other"
	ScreenConversationList Screen = "conversations"
	ScreenConversation     Screen = "conversation"
	ScreenProposals        Screen = "proposals"
)

// ParseScreen maps unknown values to ScreenOther.
func ParseScreen(s string) Screen {
	switch Screen(s) {
	case ScreenConversationList, ScreenConversation, ScreenProposals:
		return Screen(s)
	}
	return ScreenOther
}

// Focus tracks the viewer's current screen. Safe for concurrent use.
type Focus struct {
	mu             sync.RWMutex
	screen         Screen
	conversationID string
}

func NewFocus() *Focus {
	return &Focus{screen: ScreenOther}
}

// Set records the screen; conversationID only matters on ScreenConversation.
func (f *Focus) Set(screen Screen, conversationID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screen = screen
	if screen != ScreenConversation {
		conversationID = ""
	}
	f.conversationID = conversationID
}

func (f *Focus) Current() (Screen, string) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.screen, f.conversationID
}

func (f *Focus) viewingConversation(id string) bool {
	screen, current := f.Current()
	return screen == ScreenConversation && id != "" && current == id
}

// Messages is the focus predicate of the message watcher: the conversation
// list or the item's thread.
func (f *Focus) Messages(it Item) bool {
	screen, _ := f.Current()
	return screen == ScreenConversationList || f.viewingConversation(it.Target.ConversationID)
}

// Offers is the focus predicate of the hire offer watcher: the proposals
// screen or the offer's conversation.
func (f *Focus) Offers(it Item) bool {
	screen, _ := f.Current()
	return screen == ScreenProposals || f.viewingConversation(it.Target.ConversationID)
}
