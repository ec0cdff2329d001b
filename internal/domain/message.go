package domain

type MessageStatus string

const (
	MessageStatusPending  MessageStatus = "PENDING"
	MessageStatusAccepted MessageStatus = "ACCEPTED"
	MessageStatusDeclined MessageStatus = "DECLINED"
	// Completed is the neutral status plain chat messages carry from
	// creation; it never participates in the negotiation lifecycle.
	MessageStatusCompleted MessageStatus = "COMPLETED"
)

type MessageKind string

const (
	MessageKindChat     MessageKind = "CHAT"
	MessageKindExchange MessageKind = "EXCHANGE_PROPOSAL"
	MessageKindSystem   MessageKind = "SYSTEM"
)

// SkillRef is a snapshot of a skill taken when a proposal is created, so a
// later edit to the skill cannot change what acceptance settles.
type SkillRef struct {
	SkillID int32  `json:"skill_id"`
	Name    string `json:"name"`
	Rate    int32  `json:"rate"`
}

// ExchangeProposal is the structured payload of an EXCHANGE_PROPOSAL message.
// SkillRequested is a skill the recipient offers; SkillOffered is a skill the
// sender offers in return.
type ExchangeProposal struct {
	SkillRequested SkillRef `json:"skill_requested"`
	SkillOffered   SkillRef `json:"skill_offered"`
	Note           string   `json:"note,omitempty"`
}

// Message is both a chat line and a negotiable exchange offer. Kind selects
// the content variant: Body for CHAT and SYSTEM, Proposal for
// EXCHANGE_PROPOSAL.
type Message struct {
	ID              int32             `json:"id"`
	SenderID        int32             `json:"sender_id"`
	RecipientID     int32             `json:"recipient_id"`
	ConversationKey string            `json:"conversation_key"`
	Kind            MessageKind       `json:"kind"`
	Body            string            `json:"body,omitempty"`
	Proposal        *ExchangeProposal `json:"proposal,omitempty"`
	Status          MessageStatus     `json:"status"`
	IsRead          bool              `json:"is_read"`
	CreatedOn       string            `json:"created_on"`
	UpdatedOn       string            `json:"updated_on"`
}

func (m *Message) IsProposal() bool {
	return m.Kind == MessageKindExchange && m.Proposal != nil
}

// Conversation is one entry in a user's chat list.
type Conversation struct {
	Partner     *User    `json:"partner"`
	LastMessage *Message `json:"last_message"`
	UnreadCount int32    `json:"unread_count"`
}
