package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "pengguna"
	RoleAssistant Role = "asisten"
)

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"peran"`
	Content   string    `json:"konten"`
	Timestamp time.Time `json:"waktu"`
}

func NewChatMessage(role Role, content string, now time.Time) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: now,
	}
}

// ChatRequest is the body of a chat question.
type ChatRequest struct {
	Text string `json:"text" validate:"required,max=2000" example:"ada solusi organik?"`
}
