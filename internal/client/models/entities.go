package models

import "time"

type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "PENDING"
	MembershipApproved MembershipStatus = "APPROVED"
	MembershipRejected MembershipStatus = "REJECTED"
)

type Association struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	AdminID   string    `json:"adminId"`
}

type NewAssociation struct {
	Name     string `json:"name" validate:"required"`
	City     string `json:"city" validate:"required"`
	Category string `json:"category" validate:"required"`
}

type Membership struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	AssociationID string           `json:"associationId"`
	Status        MembershipStatus `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
}

type Post struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	AuthorID      string    `json:"authorId"`
	AssociationID string    `json:"associationId"`
	CreatedAt     time.Time `json:"createdAt"`
	Images        []string  `json:"images"`
}

type NewPost struct {
	Content string   `json:"content" validate:"required"`
	Images  []string `json:"images,omitempty" validate:"omitempty,dive,url"`
}

type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Poll struct {
	ID            string       `json:"id"`
	Question      string       `json:"question"`
	AssociationID string       `json:"associationId"`
	CreatedAt     time.Time    `json:"createdAt"`
	ExpiresAt     time.Time    `json:"expiresAt"`
	CreatedBy     string       `json:"createdBy"`
	Options       []PollOption `json:"options"`
}

type PollOption struct {
	ID         string `json:"id"`
	PollID     string `json:"pollId"`
	OptionText string `json:"optionText"`
}

type NewPoll struct {
	Question  string    `json:"question" validate:"required"`
	Options   []string  `json:"options" validate:"min=2,dive,required"`
	ExpiresAt time.Time `json:"expiresAt" validate:"required"`
}

type Vote struct {
	ID        string    `json:"id"`
	PollID    string    `json:"pollId"`
	UserID    string    `json:"userId"`
	OptionID  string    `json:"optionId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date"`
	Location        string    `json:"location"`
	MaxParticipants int       `json:"maxParticipants"`
	AssociationID   string    `json:"associationId"`
	CreatedBy       string    `json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
}

type NewEvent struct {
	Title           string    `json:"title" validate:"required"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date" validate:"required"`
	Location        string    `json:"location" validate:"required"`
	MaxParticipants int       `json:"maxParticipants" validate:"gte=0"`
}

type EventParticipant struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Message struct {
	ID         string     `json:"id"`
	SenderID   string     `json:"senderId"`
	ReceiverID string     `json:"receiverId"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"createdAt"`
	ReadAt     *time.Time `json:"readAt"`
}
